package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/blackwell-systems/shelflog/internal/catalog"
)

// maxCoverBytes bounds a single cover download.
const maxCoverBytes = 8 << 20

// FetchMySummaryBooks returns the books on the current user's shelf.
func (c *Client) FetchMySummaryBooks(ctx context.Context) ([]catalog.SummaryBook, error) {
	var books []catalog.SummaryBook
	if err := c.doJSON(ctx, http.MethodGet, c.url("api/me/books/summary", nil), nil, &books); err != nil {
		return nil, fmt.Errorf("fetching shelf: %w", err)
	}
	if books == nil {
		books = []catalog.SummaryBook{}
	}
	return books, nil
}

// FetchCandidates searches the catalog by title and/or author.
func (c *Client) FetchCandidates(ctx context.Context, title, author string) ([]catalog.BookCandidate, error) {
	v := url.Values{}
	v.Set("title", title)
	v.Set("author", author)

	var out []catalog.BookCandidate
	if err := c.doJSON(ctx, http.MethodGet, c.url("api/books/search", v), nil, &out); err != nil {
		return nil, fmt.Errorf("searching candidates: %w", err)
	}
	if out == nil {
		out = []catalog.BookCandidate{}
	}
	return out, nil
}

// FetchCover downloads a cover image. Cover URLs usually point at a CDN, so
// no credentials are sent.
func (c *Client) FetchCover(ctx context.Context, coverURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")
	resp, err := c.do(ctx, req, false)
	if err != nil {
		return nil, fmt.Errorf("fetching cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetching cover: %w", err)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("reading cover: %w", err)
	}
	return data, nil
}
