package catalog

import "time"

// Page sizes offered by the records list.
const (
	SizeCompact = 6
	SizeWide    = 10
)

// SummaryBook is the read-only projection shown on the shelf.
type SummaryBook struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"coverUrl"`
}

// Record is one reading-log entry. It is linked to a catalog book when
// BookID is non-nil.
type Record struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Sentence   string    `json:"sentence"`
	Comment    string    `json:"comment"`
	RecordedAt time.Time `json:"recordedAt"`
	BookID     *int64    `json:"bookId"`
	CoverURL   *string   `json:"coverUrl"`
}

// Linked reports whether the record points at a catalog book.
func (r Record) Linked() bool {
	return r.BookID != nil
}

// BookCandidate is a catalog search hit offered for linking.
type BookCandidate struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	CoverURL  string `json:"coverUrl,omitempty"`
}

// Page is one fetched page of T. Pages are replaced wholesale, never merged.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

// Query is the paging/search state that drives a records fetch.
type Query struct {
	Page int
	Size int
	Q    string
}

// ValidSize reports whether n is one of the offered page sizes.
func ValidSize(n int) bool {
	return n == SizeCompact || n == SizeWide
}

// SortKey selects which field a candidate search matches on.
type SortKey string

const (
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
)

// Toggle returns the other sort key.
func (k SortKey) Toggle() SortKey {
	if k == SortTitle {
		return SortAuthor
	}
	return SortTitle
}
