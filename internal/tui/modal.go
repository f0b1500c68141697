package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Messages emitted by CandidateModal. The owner decides what they mean.
type (
	CandidateSelectMsg struct{ Candidate catalog.BookCandidate }
	ModalCloseMsg      struct{}
	SortKeyChangeMsg   struct{ Key catalog.SortKey }
	SubmitSearchMsg    struct{ Keyword string }
)

// CandidateItem wraps a candidate for the bubbles list.
type CandidateItem struct {
	Candidate catalog.BookCandidate
}

// FilterValue implements list.Item
func (c CandidateItem) FilterValue() string {
	return c.Candidate.Title + " " + c.Candidate.Author
}

func renderCandidate(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(CandidateItem)
	if !ok {
		return
	}
	c := ci.Candidate
	width := m.Width() - 2
	if width < 10 {
		width = 10
	}

	title := xansi.Truncate(c.Title, width, "…")
	meta := c.Author
	if c.Publisher != "" {
		meta += " · " + c.Publisher
	}
	if c.ISBN != "" {
		meta += " · " + c.ISBN
	}
	meta = xansi.Truncate(meta, width, "…")

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+title)+"\n  "+StyleAuthor.Render(meta))
		return
	}
	_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(title)+"\n  "+StyleHelp.Render(meta))
}

// CandidateModal is the book selection overlay: a keyword input, a
// title/author toggle and the candidate list.
//
// The owner reads Keyword after each Update to track edits.
type CandidateModal struct {
	Open    bool
	Loading bool
	SortKey catalog.SortKey

	input     textinput.Model
	list      list.Model
	spin      spinner.Model
	focusList bool
	keys      ModalKeys
	width     int
	height    int
}

// NewCandidateModal creates a closed modal.
func NewCandidateModal() CandidateModal {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 200

	l := list.New(nil, delegate.NewWithHeight(renderCandidate, 2, 1), 40, 12)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return CandidateModal{
		SortKey: catalog.SortTitle,
		input:   in,
		list:    l,
		spin:    sp,
		keys:    NewModalKeys(),
		width:   60,
		height:  20,
	}
}

// Show opens the modal in the loading state with the input seeded.
func (m CandidateModal) Show(keyword string, sortKey catalog.SortKey) (CandidateModal, tea.Cmd) {
	m.Open = true
	m.Loading = true
	m.SortKey = sortKey
	m.focusList = false
	m.input.SetValue(keyword)
	m.input.CursorEnd()
	m.list.SetItems(nil)
	focus := m.input.Focus()
	return m, tea.Batch(focus, m.spin.Tick)
}

// Hide closes the modal.
func (m CandidateModal) Hide() CandidateModal {
	m.Open = false
	m.Loading = false
	m.input.Blur()
	return m
}

// SetCandidates replaces the list contents.
func (m CandidateModal) SetCandidates(cs []catalog.BookCandidate, loading bool) CandidateModal {
	items := make([]list.Item, len(cs))
	for i, c := range cs {
		items[i] = CandidateItem{Candidate: c}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
	m.Loading = loading
	return m
}

// SetLoading marks a search in flight.
func (m CandidateModal) SetLoading(loading bool) (CandidateModal, tea.Cmd) {
	m.Loading = loading
	if loading {
		return m, m.spin.Tick
	}
	return m, nil
}

// SetSize fits the modal into a w x h terminal.
func (m CandidateModal) SetSize(w, h int) CandidateModal {
	m.width = w * 2 / 3
	if m.width < 40 {
		m.width = w
	}
	m.height = h * 2 / 3
	if m.height < 12 {
		m.height = h
	}
	m.input.Width = m.width - 8
	// border, padding, header, input and blank lines
	m.list.SetSize(m.width-4, m.height-8)
	return m
}

// Keyword returns the current input text.
func (m CandidateModal) Keyword() string { return m.input.Value() }

// Len returns the number of candidates shown.
func (m CandidateModal) Len() int { return len(m.list.Items()) }

// Selected returns the highlighted candidate.
func (m CandidateModal) Selected() (catalog.BookCandidate, bool) {
	ci, ok := m.list.SelectedItem().(CandidateItem)
	if !ok {
		return catalog.BookCandidate{}, false
	}
	return ci.Candidate, true
}

// FocusList reports whether key input goes to the list rather than the input.
func (m CandidateModal) FocusList() bool { return m.focusList }

func (m CandidateModal) Update(msg tea.Msg) (CandidateModal, tea.Cmd) {
	if !m.Open {
		return m, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return ModalCloseMsg{} }

		case key.Matches(msg, m.keys.Sort):
			m.SortKey = m.SortKey.Toggle()
			k := m.SortKey
			return m, func() tea.Msg { return SortKeyChangeMsg{Key: k} }

		case key.Matches(msg, m.keys.Focus):
			return m.setFocus(!m.focusList)

		case key.Matches(msg, m.keys.Select):
			if !m.focusList {
				kw := m.input.Value()
				return m, func() tea.Msg { return SubmitSearchMsg{Keyword: kw} }
			}
			c, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return CandidateSelectMsg{Candidate: c} }

		case !m.focusList && key.Matches(msg, m.keys.Down):
			if m.Len() > 0 {
				return m.setFocus(true)
			}
			return m, nil

		case m.focusList && key.Matches(msg, m.keys.Up) && m.list.Index() == 0:
			return m.setFocus(false)
		}

		var cmd tea.Cmd
		if m.focusList {
			m.list, cmd = m.list.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CandidateModal) setFocus(toList bool) (CandidateModal, tea.Cmd) {
	m.focusList = toList
	if toList {
		m.input.Blur()
		return m, nil
	}
	cmd := m.input.Focus()
	return m, cmd
}

// View renders the bordered overlay. It is empty while closed.
func (m CandidateModal) View() string {
	if !m.Open {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("Link a book"))
	b.WriteString("  ")
	for _, k := range []catalog.SortKey{catalog.SortTitle, catalog.SortAuthor} {
		if k == m.SortKey {
			b.WriteString(StyleTabActive.Render(string(k)))
		} else {
			b.WriteString(StyleTabInactive.Render(string(k)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.Loading:
		b.WriteString(m.spin.View() + " " + StyleHelp.Render("Searching…"))
	case m.Len() == 0:
		b.WriteString(StyleHelp.Render("No matching books."))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Label: "enter search/link"},
		{Label: "tab input/list"},
		{Label: "ctrl+t title/author"},
		{Label: "esc close"},
	}, ""))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorOrange).
		Padding(0, 1).
		Width(m.width).
		Render(b.String())
}
