// Package records holds the state machine behind the records view: paging,
// search, the candidate selection flow and unlinking. It renders nothing;
// internal/unified draws it.
package records

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Service is the slice of the reading-log API the records view needs.
type Service interface {
	FetchMyRecords(ctx context.Context, q catalog.Query) (catalog.Page[catalog.Record], error)
	FetchCandidates(ctx context.Context, title, author string) ([]catalog.BookCandidate, error)
	LinkRecord(ctx context.Context, recordID int64, book catalog.BookCandidate) error
	RemoveMatch(ctx context.Context, recordID int64) error
}

// Status is the list fetch state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusFailed
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusReady:
		return "ready"
	default:
		return "idle"
	}
}

// Selection is the candidate modal state.
type Selection struct {
	Open       bool
	Loading    bool
	RecordID   int64
	SortKey    catalog.SortKey
	Keyword    string
	Candidates []catalog.BookCandidate
}

// Model is the records controller.
//
// Every list fetch is issued under a ticket. Only a result whose ticket is
// still the live one is applied; anything older is dropped when it arrives.
// The request itself is left to finish.
type Model struct {
	svc    Service
	policy SizePolicy

	query  catalog.Query
	status Status
	err    error
	page   catalog.Page[catalog.Record]
	ticket int

	sel   Selection
	alert string
}

// New creates a controller starting at page 0 with the wide page size.
// Init issues the first fetch.
func New(svc Service, policy SizePolicy) Model {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return Model{
		svc:    svc,
		policy: policy,
		query:  catalog.Query{Page: 0, Size: catalog.SizeWide},
		status: StatusLoading,
		ticket: 1,
	}
}

// Init issues the fetch for the initial query.
func (m Model) Init() tea.Cmd {
	return m.load(m.ticket, m.query)
}

// Query returns the current paging/search state.
func (m Model) Query() catalog.Query { return m.query }

// Status returns the list fetch state.
func (m Model) Status() Status { return m.status }

// Err returns the last list fetch error while Status is StatusFailed.
func (m Model) Err() error { return m.err }

// Page returns the last applied page.
func (m Model) Page() catalog.Page[catalog.Record] { return m.page }

// Selection returns the candidate modal state.
func (m Model) Selection() Selection { return m.sel }

// Alert returns the pending blocking alert, or "".
func (m Model) Alert() string { return m.alert }

// Update applies async results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.ticket != m.ticket {
			logrus.WithFields(logrus.Fields{
				"ticket": msg.ticket,
				"live":   m.ticket,
			}).Debug("records: dropping stale page")
			return m, nil
		}
		if msg.err != nil {
			m.status = StatusFailed
			m.err = msg.err
			logrus.WithError(msg.err).Warn("records: fetch failed")
			return m, nil
		}
		m.status = StatusReady
		m.err = nil
		m.page = msg.page
		return m, nil

	case CandidatesLoadedMsg:
		m.sel.Loading = false
		if msg.err != nil {
			logrus.WithError(msg.err).Warn("records: candidate search failed")
			m.sel.Candidates = nil
			return m, nil
		}
		m.sel.Candidates = msg.candidates
		return m, nil

	case LinkDoneMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).WithField("record", msg.recordID).Error("records: link failed")
			m.alert = fmt.Sprintf("Could not link the record: %v", msg.err)
			return m, nil
		}
		m.sel = Selection{}
		// The refetched page is server truth for its query. If the user moved
		// on meanwhile, the fetch for the new query decides instead.
		if msg.query == m.query {
			m.ticket++
			m.status = StatusReady
			m.err = nil
			m.page = msg.page
		}
		return m, nil

	case UnlinkDoneMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).WithField("record", msg.recordID).Warn("records: unlink failed")
			return m, nil
		}
		m.page = catalog.ClearLink(m.page, msg.recordID)
		return m, nil
	}
	return m, nil
}

// setQuery moves to q and fetches it. Setting the current query is a no-op.
func (m Model) setQuery(q catalog.Query) (Model, tea.Cmd) {
	if q == m.query {
		return m, nil
	}
	m.query = q
	return m.refetch()
}

// refetch supersedes any in-flight fetch and loads the current query.
func (m Model) refetch() (Model, tea.Cmd) {
	m.ticket++
	m.status = StatusLoading
	m.err = nil
	return m, m.load(m.ticket, m.query)
}

func (m Model) load(ticket int, q catalog.Query) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		page, err := svc.FetchMyRecords(context.Background(), q)
		return PageLoadedMsg{ticket: ticket, query: q, page: page, err: err}
	}
}

// Resize applies the page size the policy picks for widthPx. The page resets
// to 0 only when the size actually changes.
func (m Model) Resize(widthPx int) (Model, tea.Cmd) {
	size := m.policy.PageSize(widthPx)
	if size == m.query.Size {
		return m, nil
	}
	return m.setQuery(catalog.Query{Page: 0, Size: size, Q: m.query.Q})
}

// SetPageSize switches between the offered sizes and resets the page to 0.
func (m Model) SetPageSize(size int) (Model, tea.Cmd) {
	if !catalog.ValidSize(size) {
		return m, nil
	}
	return m.setQuery(catalog.Query{Page: 0, Size: size, Q: m.query.Q})
}

// SetPage moves to page p, bounded by the last fetched page count.
func (m Model) SetPage(p int) (Model, tea.Cmd) {
	last := m.page.TotalPages - 1
	if p > last {
		p = last
	}
	if p < 0 {
		p = 0
	}
	q := m.query
	q.Page = p
	return m.setQuery(q)
}

// CommitSearch sets the query text from the search box and resets the page.
func (m Model) CommitSearch(input string) (Model, tea.Cmd) {
	return m.setQuery(catalog.Query{Page: 0, Size: m.query.Size, Q: catalog.NormalizeQuery(input)})
}

// Reload refetches the current query.
func (m Model) Reload() (Model, tea.Cmd) {
	return m.refetch()
}

// OpenSelect opens the candidate modal for rec in the loading state and
// searches by the record's title and author.
func (m Model) OpenSelect(rec catalog.Record) (Model, tea.Cmd) {
	key, kw := catalog.SeedFromRecord(rec)
	m.sel = Selection{
		Open:     true,
		Loading:  true,
		RecordID: rec.ID,
		SortKey:  key,
		Keyword:  kw,
	}
	return m, m.loadCandidates(rec.Title, rec.Author)
}

// CloseSelect closes the modal without changing anything.
func (m Model) CloseSelect() Model {
	m.sel = Selection{}
	return m
}

// SetKeyword edits the modal keyword. No search is issued.
func (m Model) SetKeyword(kw string) Model {
	m.sel.Keyword = kw
	return m
}

// SetSortKey changes the field the modal search matches on.
func (m Model) SetSortKey(k catalog.SortKey) Model {
	m.sel.SortKey = k
	return m
}

// SubmitModalSearch searches candidates by the active field only.
func (m Model) SubmitModalSearch() (Model, tea.Cmd) {
	if !m.sel.Open {
		return m, nil
	}
	title, author := catalog.CandidateSearch(m.sel.SortKey, m.sel.Keyword)
	m.sel.Loading = true
	return m, m.loadCandidates(title, author)
}

func (m Model) loadCandidates(title, author string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		c, err := svc.FetchCandidates(context.Background(), title, author)
		return CandidatesLoadedMsg{candidates: c, err: err}
	}
}

// SelectCandidate links the open record to c, then refetches the current
// query. The modal closes only once both succeed.
func (m Model) SelectCandidate(c catalog.BookCandidate) (Model, tea.Cmd) {
	if !m.sel.Open {
		return m, nil
	}
	svc := m.svc
	id := m.sel.RecordID
	q := m.query
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := svc.LinkRecord(ctx, id, c); err != nil {
			return LinkDoneMsg{recordID: id, query: q, err: err}
		}
		page, err := svc.FetchMyRecords(ctx, q)
		return LinkDoneMsg{recordID: id, query: q, page: page, err: err}
	}
}

// DismissAlert clears the blocking alert.
func (m Model) DismissAlert() Model {
	m.alert = ""
	return m
}

// RemoveMatch unlinks a record. The page is patched only after the server
// confirms.
func (m Model) RemoveMatch(recordID int64) (Model, tea.Cmd) {
	svc := m.svc
	return m, func() tea.Msg {
		err := svc.RemoveMatch(context.Background(), recordID)
		return UnlinkDoneMsg{recordID: recordID, err: err}
	}
}
