package records

import "github.com/blackwell-systems/shelflog/internal/catalog"

// PageLoadedMsg carries the result of a records fetch issued under ticket.
type PageLoadedMsg struct {
	ticket int
	query  catalog.Query
	page   catalog.Page[catalog.Record]
	err    error
}

// CandidatesLoadedMsg carries a candidate search result.
type CandidatesLoadedMsg struct {
	candidates []catalog.BookCandidate
	err        error
}

// LinkDoneMsg reports a link followed by the refetch of query.
type LinkDoneMsg struct {
	recordID int64
	query    catalog.Query
	page     catalog.Page[catalog.Record]
	err      error
}

// UnlinkDoneMsg reports the result of a remove-match call.
type UnlinkDoneMsg struct {
	recordID int64
	err      error
}
