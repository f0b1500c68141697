// Package unified is the root TUI model. It owns the shelf and records views,
// switches between them and renders the tab header.
package unified

import (
	"github.com/blackwell-systems/shelflog/internal/cache"
	"github.com/blackwell-systems/shelflog/internal/config"
	"github.com/blackwell-systems/shelflog/internal/records"
	"github.com/blackwell-systems/shelflog/internal/shelf"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// View represents the current active view
type View string

const (
	ViewShelf   View = "shelf"
	ViewRecords View = "records"
)

var viewOrder = []View{ViewShelf, ViewRecords}

// Deps are the collaborators the views need.
type Deps struct {
	Shelf   shelf.Source
	Records records.Service
	Policy  records.SizePolicy
	UI      config.UIConfig

	// Covers and Fetcher enable inline covers on the shelf. Either may be nil.
	Covers   *cache.Manager
	Fetcher  cache.CoverFetcher
	Protocol tui.TerminalImageProtocol
}

// Model is the unified TUI orchestrator that manages view switching.
//
// Views are mounted lazily. Switching to a view always mounts it afresh, so
// a failed fetch is retried by leaving and re-entering the view.
type Model struct {
	deps        Deps
	currentView View
	mount       int
	width       int
	height      int
	keys        tui.AppKeys

	shelf   ShelfView
	records RecordsView
}

// New creates the unified model with start mounted.
func New(deps Deps, start View) Model {
	if start != ViewRecords {
		start = ViewShelf
	}
	m := Model{deps: deps, keys: tui.NewAppKeys()}
	m, _ = m.mountView(start)
	return m
}

// WithSize remounts the start view for a known terminal size, so the first
// records fetch already uses the right page size.
func (m Model) WithSize(width, height int) Model {
	m.width = width
	m.height = height
	m, _ = m.mountView(m.currentView)
	return m
}

// Current returns the active view.
func (m Model) Current() View { return m.currentView }

func (m Model) Init() tea.Cmd {
	return m.initCurrent()
}

func (m Model) initCurrent() tea.Cmd {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewShelf:
		cmd = m.shelf.Init()
	case ViewRecords:
		cmd = m.records.Init()
	}
	return wrap(m.mount, cmd)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateCurrentView(msg)

	case NavigateMsg:
		return m.mountView(msg.Target)

	case QuitAppMsg:
		return m, tea.Quit

	case mountedMsg:
		if msg.mount != m.mount {
			logrus.WithField("mount", msg.mount).Debug("unified: dropping result from unmounted view")
			return m, nil
		}
		return m.updateCurrentView(msg.msg)

	case tea.KeyMsg:
		if !m.capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, func() tea.Msg { return QuitAppMsg{} }
			case key.Matches(msg, m.keys.NextTab):
				return m.mountView(m.nextView())
			case key.Matches(msg, m.keys.Shelf):
				return m.mountView(ViewShelf)
			case key.Matches(msg, m.keys.Records):
				return m.mountView(ViewRecords)
			}
		}
		if msg.Type == tea.KeyCtrlC {
			return m, func() tea.Msg { return QuitAppMsg{} }
		}
	}
	return m.updateCurrentView(msg)
}

// capturing reports whether the active view wants every key, such as while
// a text input or modal has focus.
func (m Model) capturing() bool {
	return m.currentView == ViewRecords && m.records.Capturing()
}

func (m Model) nextView() View {
	for i, v := range viewOrder {
		if v == m.currentView {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return ViewShelf
}

func (m Model) mountView(v View) (Model, tea.Cmd) {
	m.mount++
	m.currentView = v
	switch v {
	case ViewShelf:
		m.shelf = NewShelfView(m.deps, m.width, m.height-headerHeight)
		m.records = RecordsView{}
	case ViewRecords:
		m.records = NewRecordsView(m.deps, m.width, m.height-headerHeight)
		m.shelf = ShelfView{}
	default:
		logrus.WithField("target", v).Warn("unified: unknown view")
		m.currentView = ViewShelf
		m.shelf = NewShelfView(m.deps, m.width, m.height-headerHeight)
	}
	return m, m.initCurrent()
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		ws.Height -= headerHeight
		msg = ws
	}
	var cmd tea.Cmd
	switch m.currentView {
	case ViewShelf:
		m.shelf, cmd = m.shelf.Update(msg)
	case ViewRecords:
		m.records, cmd = m.records.Update(msg)
	}
	return m, wrap(m.mount, cmd)
}

const headerHeight = 2

func (m Model) View() string {
	var body string
	switch m.currentView {
	case ViewShelf:
		body = m.shelf.View()
	case ViewRecords:
		body = m.records.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body)
}

func (m Model) renderTabs() string {
	labels := map[View]string{ViewShelf: "1 Shelf", ViewRecords: "2 Records"}
	tabs := make([]string, 0, len(viewOrder))
	for _, v := range viewOrder {
		if v == m.currentView {
			tabs = append(tabs, tui.StyleTabActive.Render(labels[v]))
		} else {
			tabs = append(tabs, tui.StyleTabInactive.Render(labels[v]))
		}
	}
	title := tui.StyleHeader.Render("shelflog")
	return lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title, "  "}, tabs...)...) + "\n"
}

// wrap tags every message cmd produces with mount. Batches are unpacked so
// the runtime still runs their members concurrently.
func wrap(mount int, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				out[i] = wrap(mount, c)
			}
			return out
		case NavigateMsg, QuitAppMsg:
			return msg
		default:
			return mountedMsg{mount: mount, msg: msg}
		}
	}
}
