package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blackwell-systems/shelflog/internal/api"
	"github.com/blackwell-systems/shelflog/internal/catalog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New("tok", srv.URL+"/", api.Options{})
}

func TestFetchMyRecords_QueryAndHeaders(t *testing.T) {
	var gotReq *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		_, _ = io.WriteString(w, `{"items":[{"id":7,"title":"Dune","author":"Herbert","bookId":3,"coverUrl":"http://c/3.jpg","recordedAt":"2026-01-02T03:04:05Z"}],"page":1,"totalPages":4,"hasPrev":true,"hasNext":true}`)
	})

	page, err := c.FetchMyRecords(context.Background(), catalog.Query{Page: 1, Size: 10, Q: "dune"})
	if err != nil {
		t.Fatalf("FetchMyRecords: %v", err)
	}

	if gotReq.URL.Path != "/api/me/records" {
		t.Errorf("path = %q", gotReq.URL.Path)
	}
	q := gotReq.URL.Query()
	if q.Get("page") != "1" || q.Get("size") != "10" || q.Get("q") != "dune" {
		t.Errorf("query = %v", q)
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization = %q", got)
	}
	if gotReq.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	if len(page.Items) != 1 || page.Items[0].Title != "Dune" {
		t.Fatalf("items = %+v", page.Items)
	}
	if !page.Items[0].Linked() || *page.Items[0].BookID != 3 {
		t.Errorf("record should be linked to book 3")
	}
	if page.Page != 1 || page.TotalPages != 4 || !page.HasPrev || !page.HasNext {
		t.Errorf("paging = %+v", page)
	}
}

func TestFetchMyRecords_OmitsEmptyQ(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["q"]; ok {
			t.Error("empty q should not be sent")
		}
		_, _ = io.WriteString(w, `{"items":null,"page":0,"totalPages":0}`)
	})
	page, err := c.FetchMyRecords(context.Background(), catalog.Query{Size: 6})
	if err != nil {
		t.Fatalf("FetchMyRecords: %v", err)
	}
	if page.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}

func TestFetchCandidates_SendsBothFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("title") != "" || q.Get("author") != "Tolstoy" {
			t.Errorf("query = %v", q)
		}
		if _, ok := q["title"]; !ok {
			t.Error("title should be sent even when empty")
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"War and Peace","author":"Tolstoy"}]`)
	})
	got, err := c.FetchCandidates(context.Background(), "", "Tolstoy")
	if err != nil {
		t.Fatalf("FetchCandidates: %v", err)
	}
	if len(got) != 1 || got[0].Title != "War and Peace" {
		t.Errorf("candidates = %+v", got)
	}
}

func TestLinkRecord_PutsCandidate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/me/records/42/book" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var body catalog.BookCandidate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Title != "Dune" || body.ISBN != "978-0441013593" {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	err := c.LinkRecord(context.Background(), 42, catalog.BookCandidate{Title: "Dune", ISBN: "978-0441013593"})
	if err != nil {
		t.Fatalf("LinkRecord: %v", err)
	}
}

func TestRemoveMatch_Deletes(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.RemoveMatch(context.Background(), 9); err != nil {
		t.Fatalf("RemoveMatch: %v", err)
	}
	if method != http.MethodDelete || path != "/api/me/records/9/book" {
		t.Errorf("got %s %s", method, path)
	}
}

func TestFetchMySummaryBooks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me/books/summary" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"Dune","author":"Herbert","coverUrl":"http://c/1.jpg"}]`)
	})
	books, err := c.FetchMySummaryBooks(context.Background())
	if err != nil {
		t.Fatalf("FetchMySummaryBooks: %v", err)
	}
	if len(books) != 1 || books[0].CoverURL != "http://c/1.jpg" {
		t.Errorf("books = %+v", books)
	}
}

func TestFetchCover_NoAuthHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cover download should not hit the API base")
	})
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("cover download should not send credentials")
		}
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer cdn.Close()

	data, err := c.FetchCover(context.Background(), cdn.URL+"/covers/1.jpg")
	if err != nil {
		t.Fatalf("FetchCover: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("len(data) = %d, want 3", len(data))
	}
}

func TestFetchCover_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.FetchCover(context.Background(), c.BaseURL()+"/missing.jpg"); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, api.ErrUnauthorized},
		{http.StatusForbidden, api.ErrForbidden},
		{http.StatusNotFound, api.ErrNotFound},
		{http.StatusConflict, api.ErrConflict},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		err := c.RemoveMatch(context.Background(), 1)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestErrorMapping_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := c.FetchMySummaryBooks(context.Background())
	var se *api.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusInternalServerError || !strings.Contains(se.Body, "boom") {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})
	if _, err := c.FetchMySummaryBooks(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchMySummaryBooks(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
