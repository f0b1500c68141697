package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery trims s and puts it in NFC so composed and decomposed
// input search the same.
func NormalizeQuery(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SeedFromRecord picks the initial candidate search for a record: its title
// when present, otherwise its author.
func SeedFromRecord(r Record) (SortKey, string) {
	if strings.TrimSpace(r.Title) != "" {
		return SortTitle, r.Title
	}
	return SortAuthor, r.Author
}

// CandidateSearch maps a sort key and keyword to the (title, author) pair
// sent to the candidate search. Only the active field is filled.
func CandidateSearch(key SortKey, keyword string) (title, author string) {
	keyword = strings.TrimSpace(keyword)
	if key == SortAuthor {
		return "", keyword
	}
	return keyword, ""
}

// RecordByID returns the record with the given ID from the page, or nil.
func RecordByID(p Page[Record], id int64) *Record {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// ClearLink returns a copy of p with the link of record id removed.
// Other items and the paging fields are left as they are.
func ClearLink(p Page[Record], id int64) Page[Record] {
	out := p
	out.Items = make([]Record, len(p.Items))
	copy(out.Items, p.Items)
	for i := range out.Items {
		if out.Items[i].ID == id {
			out.Items[i].BookID = nil
			out.Items[i].CoverURL = nil
		}
	}
	return out
}
