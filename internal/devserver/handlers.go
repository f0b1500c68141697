package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/logging"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	store *Store
}

func (h *handlers) summaryBooks(c *gin.Context) {
	books, err := h.store.SummaryBooks(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *handlers) records(c *gin.Context) {
	q := catalog.Query{
		Page: queryInt(c, "page", 0),
		Size: queryInt(c, "size", defaultPageSize),
		Q:    c.Query("q"),
	}
	page, err := h.store.Records(c.Request.Context(), userID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) searchBooks(c *gin.Context) {
	books, err := h.store.SearchBooks(c.Request.Context(), c.Query("title"), c.Query("author"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *handlers) link(c *gin.Context) {
	id, ok := recordParam(c)
	if !ok {
		return
	}
	var book catalog.BookCandidate
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book payload"})
		return
	}
	if err := h.store.Link(c.Request.Context(), userID(c), id, book); err != nil {
		linkOps.WithLabelValues("link", "error").Inc()
		h.fail(c, err)
		return
	}
	linkOps.WithLabelValues("link", "ok").Inc()
	c.Status(http.StatusNoContent)
}

func (h *handlers) unlink(c *gin.Context) {
	id, ok := recordParam(c)
	if !ok {
		return
	}
	if err := h.store.Unlink(c.Request.Context(), userID(c), id); err != nil {
		linkOps.WithLabelValues("unlink", "error").Inc()
		h.fail(c, err)
		return
	}
	linkOps.WithLabelValues("unlink", "ok").Inc()
	c.Status(http.StatusNoContent)
}

// fail maps store errors onto status codes.
func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.For(c.Request.Context()).WithError(err).Error("devserver: request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func recordParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter. Missing or malformed values
// fall back to def; ClampQuery bounds the rest.
func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
