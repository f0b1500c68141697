package unified

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/cache"
	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/shelf"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// coverLoadedMsg carries the cached cover path for the focused book.
type coverLoadedMsg struct {
	bookID int64
	path   string
	err    error
}

// ShelfView renders the shelf strip and the focused book's cover.
type ShelfView struct {
	shelf     shelf.Model
	keys      tui.ShelfKeys
	covers    *cache.Manager
	fetcher   cache.CoverFetcher
	protocol  tui.TerminalImageProtocol
	coverID   int64
	coverPath string
	activeCmd string
	width     int
	height    int
}

// NewShelfView creates the shelf view for a width x height area.
func NewShelfView(deps Deps, width, height int) ShelfView {
	v := ShelfView{
		shelf:    shelf.New(deps.Shelf),
		keys:     tui.NewShelfKeys(),
		covers:   deps.Covers,
		fetcher:  deps.Fetcher,
		protocol: deps.Protocol,
	}
	return v.resize(width, height)
}

func (v ShelfView) resize(width, height int) ShelfView {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	v.width, v.height = width, height
	v.shelf = v.shelf.SetVisible(cardsThatFit(width))
	return v
}

func (v ShelfView) Init() tea.Cmd {
	return v.shelf.Init()
}

func (v ShelfView) Update(msg tea.Msg) (ShelfView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v = v.resize(msg.Width, msg.Height)
		return v, v.coverCmd()

	case shelf.LoadedMsg:
		var cmd tea.Cmd
		v.shelf, cmd = v.shelf.Update(msg)
		return v, tea.Batch(cmd, v.coverCmd())

	case coverLoadedMsg:
		if msg.bookID != v.focusedID() {
			return v, nil
		}
		if msg.err != nil {
			logrus.WithError(msg.err).WithField("book", msg.bookID).Debug("shelf: cover unavailable")
			return v, nil
		}
		v.coverID, v.coverPath = msg.bookID, msg.path
		return v, nil

	case tui.ClearActiveCmdMsg:
		v.activeCmd = ""
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.shelf = v.shelf.ScrollLeft()
			v.activeCmd = "left"
			return v, tea.Batch(tui.HighlightCmd(), v.coverCmd())
		case key.Matches(msg, v.keys.Right):
			v.shelf = v.shelf.ScrollRight()
			v.activeCmd = "right"
			return v, tea.Batch(tui.HighlightCmd(), v.coverCmd())
		}
	}
	return v, nil
}

// Shelf exposes the underlying controller.
func (v ShelfView) Shelf() shelf.Model { return v.shelf }

func (v ShelfView) focusedID() int64 {
	vb := v.shelf.VisibleBooks()
	if len(vb) == 0 {
		return 0
	}
	return vb[0].ID
}

// coverCmd loads the focused book's cover into the cache when inline images
// are available and the cover is not already shown.
func (v ShelfView) coverCmd() tea.Cmd {
	if v.protocol == tui.ProtocolNone || v.covers == nil || v.fetcher == nil {
		return nil
	}
	vb := v.shelf.VisibleBooks()
	if len(vb) == 0 || vb[0].CoverURL == "" || vb[0].ID == v.coverID {
		return nil
	}
	b := vb[0]
	covers, fetcher := v.covers, v.fetcher
	return func() tea.Msg {
		path, err := covers.EnsureCover(context.Background(), fetcher, b)
		return coverLoadedMsg{bookID: b.ID, path: path, err: err}
	}
}

func (v ShelfView) View() string {
	var b strings.Builder

	switch v.shelf.Status() {
	case shelf.StatusLoading:
		b.WriteString(tui.StyleHelp.Render("Loading shelf…"))
		return b.String()
	case shelf.StatusFailed:
		b.WriteString(tui.StyleError.Render(fmt.Sprintf("Could not load the shelf: %v", v.shelf.Err())))
		b.WriteString("\n")
		b.WriteString(tui.StyleHelp.Render("Switch views to try again."))
		return b.String()
	}

	books := v.shelf.Books()
	if len(books) == 0 {
		b.WriteString(tui.StyleHelp.Render("No books on the shelf yet."))
		return b.String()
	}

	first := v.shelf.Offset() + 1
	last := v.shelf.Offset() + len(v.shelf.VisibleBooks())
	b.WriteString(tui.StyleHeader.Render("Read books"))
	b.WriteString("  ")
	b.WriteString(tui.StyleHelp.Render(fmt.Sprintf("%d–%d of %d", first, last, len(books))))
	b.WriteString("\n\n")
	b.WriteString(renderStrip(books, v.shelf.Offset(), v.shelf.Visible()))
	b.WriteString("\n\n")

	if focused := v.focused(); focused != nil && v.coverID == focused.ID {
		if img := tui.RenderInlineImage(v.coverPath, cardW, v.protocol); img != "" {
			b.WriteString(img)
			b.WriteString("\n")
		}
	}

	left, right := "← scroll", "→ scroll"
	if !v.shelf.CanScrollLeft() {
		left = "←"
	}
	if !v.shelf.CanScrollRight() {
		right = "→"
	}
	b.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
		{Key: "left", Label: left},
		{Key: "right", Label: right},
		{Label: "tab records"},
		{Label: "q quit"},
	}, v.activeCmd))
	return b.String()
}

func (v ShelfView) focused() *catalog.SummaryBook {
	vb := v.shelf.VisibleBooks()
	if len(vb) == 0 {
		return nil
	}
	return &vb[0]
}
