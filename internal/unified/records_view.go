package unified

import (
	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/config"
	"github.com/blackwell-systems/shelflog/internal/records"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RecordsView wires the records controller to its widgets: the search box,
// the list, the pagination strip, the candidate modal and the alert box.
type RecordsView struct {
	rec       records.Model
	search    textinput.Model
	searching bool
	pager     tui.Pagination
	modal     tui.CandidateModal
	keys      tui.RecordsKeys
	ui        config.UIConfig
	cursor    int
	activeCmd string
	width     int
	height    int
}

// NewRecordsView creates the records view for a width x height area. When
// the width is known the page size is picked before the first fetch.
func NewRecordsView(deps Deps, width, height int) RecordsView {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search title, author, sentence or comment"
	in.CharLimit = 200

	v := RecordsView{
		rec:    records.New(deps.Records, deps.Policy),
		search: in,
		pager:  tui.NewPagination(deps.UI.EffectivePaginationWindow()),
		modal:  tui.NewCandidateModal(),
		keys:   tui.NewRecordsKeys(),
		ui:     deps.UI,
	}
	if width > 0 {
		// Init fetches whatever query Resize settles on.
		v.rec, _ = v.rec.Resize(deps.UI.WidthPx(width))
	}
	v = v.setSize(width, height)
	return v.sync()
}

func (v RecordsView) Init() tea.Cmd {
	return v.rec.Init()
}

// Records exposes the underlying controller.
func (v RecordsView) Records() records.Model { return v.rec }

// Capturing reports whether keys belong to an input, the modal or an alert.
func (v RecordsView) Capturing() bool {
	return v.searching || v.modal.Open || v.rec.Alert() != ""
}

func (v RecordsView) setSize(width, height int) RecordsView {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	v.width, v.height = width, height
	v.search.Width = width - 4
	v.modal = v.modal.SetSize(width, height)
	return v
}

// sync copies controller state into the widgets after every change.
func (v RecordsView) sync() RecordsView {
	page := v.rec.Page()
	v.pager = v.pager.SetPage(page, v.rec.Query().Size)
	v.pager.Disabled = v.rec.Status() != records.StatusReady

	if n := len(page.Items); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}

	sel := v.rec.Selection()
	if !sel.Open && v.modal.Open {
		v.modal = v.modal.Hide()
	}
	return v
}

func (v RecordsView) Update(msg tea.Msg) (RecordsView, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v = v.setSize(msg.Width, msg.Height)
		v.rec, cmd = v.rec.Resize(v.ui.WidthPx(msg.Width))
		return v.sync(), cmd

	case records.PageLoadedMsg, records.LinkDoneMsg, records.UnlinkDoneMsg:
		v.rec, cmd = v.rec.Update(msg)
		return v.sync(), cmd

	case records.CandidatesLoadedMsg:
		v.rec, cmd = v.rec.Update(msg)
		sel := v.rec.Selection()
		if sel.Open {
			v.modal = v.modal.SetCandidates(sel.Candidates, sel.Loading)
		}
		return v.sync(), cmd

	case tui.PageChangeMsg:
		v.rec, cmd = v.rec.SetPage(msg.Page)
		return v.sync(), cmd

	case tui.PageSizeChangeMsg:
		v.rec, cmd = v.rec.SetPageSize(msg.Size)
		return v.sync(), cmd

	case tui.ModalCloseMsg:
		v.rec = v.rec.CloseSelect()
		return v.sync(), nil

	case tui.SortKeyChangeMsg:
		v.rec = v.rec.SetSortKey(msg.Key)
		return v, nil

	case tui.SubmitSearchMsg:
		v.rec = v.rec.SetKeyword(msg.Keyword)
		v.rec, cmd = v.rec.SubmitModalSearch()
		var spin tea.Cmd
		v.modal, spin = v.modal.SetLoading(true)
		return v, tea.Batch(cmd, spin)

	case tui.CandidateSelectMsg:
		v.rec, cmd = v.rec.SelectCandidate(msg.Candidate)
		return v, cmd

	case tui.AlertDismissMsg:
		v.rec = v.rec.DismissAlert()
		return v, nil

	case tui.ClearActiveCmdMsg:
		v.activeCmd = ""
		return v, nil

	case spinner.TickMsg:
		v.modal, cmd = v.modal.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.searching {
		v.search, cmd = v.search.Update(msg)
	}
	return v, cmd
}

func (v RecordsView) handleKey(msg tea.KeyMsg) (RecordsView, tea.Cmd) {
	var cmd tea.Cmd

	if v.rec.Alert() != "" {
		return v, tui.AlertKey(msg)
	}

	if v.modal.Open {
		v.modal, cmd = v.modal.Update(msg)
		v.rec = v.rec.SetKeyword(v.modal.Keyword())
		return v, cmd
	}

	if v.searching {
		switch msg.Type {
		case tea.KeyEnter:
			v.searching = false
			v.search.Blur()
			v.rec, cmd = v.rec.CommitSearch(v.search.Value())
			v.cursor = 0
			return v.sync(), cmd
		case tea.KeyEsc:
			v.searching = false
			v.search.Blur()
			return v, nil
		}
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	items := v.rec.Page().Items
	switch {
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		cmd = v.search.Focus()
		return v, cmd

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(items)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Reload):
		v.rec, cmd = v.rec.Reload()
		v.activeCmd = "r"
		return v.sync(), tea.Batch(cmd, tui.HighlightCmd())

	case key.Matches(msg, v.keys.Link):
		rec, ok := v.selected()
		if !ok {
			return v, nil
		}
		v.rec, cmd = v.rec.OpenSelect(rec)
		sel := v.rec.Selection()
		var show tea.Cmd
		v.modal, show = v.modal.Show(sel.Keyword, sel.SortKey)
		return v, tea.Batch(cmd, show)

	case key.Matches(msg, v.keys.Unlink):
		rec, ok := v.selected()
		if !ok || !rec.Linked() {
			return v, nil
		}
		v.rec, cmd = v.rec.RemoveMatch(rec.ID)
		v.activeCmd = "x"
		return v, tea.Batch(cmd, tui.HighlightCmd())
	}

	return v, v.pager.HandleKey(msg)
}

func (v RecordsView) selected() (catalog.Record, bool) {
	if v.rec.Status() != records.StatusReady {
		return catalog.Record{}, false
	}
	items := v.rec.Page().Items
	if v.cursor < 0 || v.cursor >= len(items) {
		return catalog.Record{}, false
	}
	return items[v.cursor], true
}
