// Package shelf holds the state behind the shelf strip: a single fetch of
// the user's summary books and a bounded horizontal scroll offset.
package shelf

import (
	"context"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// ScrollStep is how many cards one nudge moves the strip.
const ScrollStep = 3

// Source fetches the shelf contents.
type Source interface {
	FetchMySummaryBooks(ctx context.Context) ([]catalog.SummaryBook, error)
}

// Status is the shelf fetch state.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

// LoadedMsg carries the shelf fetch result.
type LoadedMsg struct {
	books []catalog.SummaryBook
	err   error
}

// Model is the shelf controller. A failed fetch stays failed until the
// model is rebuilt; there is no retry.
type Model struct {
	src     Source
	status  Status
	err     error
	books   []catalog.SummaryBook
	offset  int
	visible int
}

// New creates a shelf in the loading state.
func New(src Source) Model {
	return Model{src: src, status: StatusLoading, visible: 1}
}

// Init issues the single shelf fetch.
func (m Model) Init() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		books, err := src.FetchMySummaryBooks(context.Background())
		return LoadedMsg{books: books, err: err}
	}
}

// Update applies the fetch result.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(LoadedMsg); ok {
		if msg.err != nil {
			logrus.WithError(msg.err).Warn("shelf: fetch failed")
			m.status = StatusFailed
			m.err = msg.err
			return m, nil
		}
		m.status = StatusReady
		m.books = msg.books
		m.offset = m.clamp(m.offset)
	}
	return m, nil
}

func (m Model) Status() Status               { return m.status }
func (m Model) Err() error                   { return m.err }
func (m Model) Books() []catalog.SummaryBook { return m.books }
func (m Model) Offset() int                  { return m.offset }
func (m Model) Visible() int                 { return m.visible }

// VisibleBooks returns the books currently inside the viewport.
func (m Model) VisibleBooks() []catalog.SummaryBook {
	end := m.offset + m.visible
	if end > len(m.books) {
		end = len(m.books)
	}
	if m.offset >= end {
		return nil
	}
	return m.books[m.offset:end]
}

// CanScrollLeft reports whether cards are hidden on the left.
func (m Model) CanScrollLeft() bool { return m.offset > 0 }

// CanScrollRight reports whether cards are hidden on the right.
func (m Model) CanScrollRight() bool { return m.offset+m.visible < len(m.books) }

// SetVisible sets how many cards fit in the viewport.
func (m Model) SetVisible(n int) Model {
	if n < 1 {
		n = 1
	}
	m.visible = n
	m.offset = m.clamp(m.offset)
	return m
}

// ScrollLeft nudges the viewport left by ScrollStep cards.
func (m Model) ScrollLeft() Model {
	m.offset = m.clamp(m.offset - ScrollStep)
	return m
}

// ScrollRight nudges the viewport right by ScrollStep cards.
func (m Model) ScrollRight() Model {
	m.offset = m.clamp(m.offset + ScrollStep)
	return m
}

// clamp bounds an offset to [0, len-visible]. No wraparound.
func (m Model) clamp(off int) int {
	max := len(m.books) - m.visible
	if off > max {
		off = max
	}
	if off < 0 {
		off = 0
	}
	return off
}
