package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blackwell-systems/shelflog/internal/catalog"
)

// FetchMyRecords returns one page of the current user's reading records.
func (c *Client) FetchMyRecords(ctx context.Context, q catalog.Query) (catalog.Page[catalog.Record], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Q != "" {
		v.Set("q", q.Q)
	}

	var page catalog.Page[catalog.Record]
	if err := c.doJSON(ctx, http.MethodGet, c.url("api/me/records", v), nil, &page); err != nil {
		return catalog.Page[catalog.Record]{}, fmt.Errorf("fetching records: %w", err)
	}
	if page.Items == nil {
		page.Items = []catalog.Record{}
	}
	return page, nil
}

// LinkRecord points a record at the chosen catalog book.
func (c *Client) LinkRecord(ctx context.Context, recordID int64, book catalog.BookCandidate) error {
	path := "api/me/records/" + strconv.FormatInt(recordID, 10) + "/book"
	if err := c.doJSON(ctx, http.MethodPut, c.url(path, nil), book, nil); err != nil {
		return fmt.Errorf("linking record %d: %w", recordID, err)
	}
	return nil
}

// RemoveMatch clears a record's link to its catalog book.
func (c *Client) RemoveMatch(ctx context.Context, recordID int64) error {
	path := "api/me/records/" + strconv.FormatInt(recordID, 10) + "/book"
	if err := c.doJSON(ctx, http.MethodDelete, c.url(path, nil), nil, nil); err != nil {
		return fmt.Errorf("unlinking record %d: %w", recordID, err)
	}
	return nil
}
