package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PageChangeMsg asks the owner to move to Page.
type PageChangeMsg struct{ Page int }

// PageSizeChangeMsg asks the owner to switch to Size rows per page.
type PageSizeChangeMsg struct{ Size int }

// Pagination renders a windowed page strip and turns key presses into
// PageChangeMsg and PageSizeChangeMsg. It holds no paging state of its own;
// the owner copies the last page's metadata in before each render.
type Pagination struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PageSize   int
	Disabled   bool
	WindowSize int

	keys RecordsKeys
}

// NewPagination creates a strip showing at most window page numbers.
func NewPagination(window int) Pagination {
	if window < 1 {
		window = 5
	}
	return Pagination{WindowSize: window, PageSize: catalog.SizeWide, keys: NewRecordsKeys()}
}

// SetPage copies paging metadata from a fetched page.
func (p Pagination) SetPage(pg catalog.Page[catalog.Record], size int) Pagination {
	p.Page = pg.Page
	p.TotalPages = pg.TotalPages
	p.HasPrev = pg.HasPrev
	p.HasNext = pg.HasNext
	p.PageSize = size
	return p
}

// HandleKey returns the command for a paging key, or nil.
func (p Pagination) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if p.Disabled {
		return nil
	}
	switch {
	case key.Matches(msg, p.keys.PrevPage):
		if !p.HasPrev {
			return nil
		}
		return pageCmd(p.Page - 1)
	case key.Matches(msg, p.keys.NextPage):
		if !p.HasNext {
			return nil
		}
		return pageCmd(p.Page + 1)
	case key.Matches(msg, p.keys.Size):
		next := catalog.SizeCompact
		if p.PageSize == catalog.SizeCompact {
			next = catalog.SizeWide
		}
		return func() tea.Msg { return PageSizeChangeMsg{Size: next} }
	}
	return nil
}

func pageCmd(page int) tea.Cmd {
	return func() tea.Msg { return PageChangeMsg{Page: page} }
}

// Window returns the half-open range of page indexes to show, keeping the
// current page centered where possible.
func Window(page, total, size int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if size <= 0 || size > total {
		size = total
	}
	start = page - size/2
	if start < 0 {
		start = 0
	}
	end = start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

// View renders "‹ 1 2 [3] 4 5 ›  10/page". Pages are shown one-based.
func (p Pagination) View() string {
	if p.TotalPages <= 0 {
		return ""
	}
	style := StyleNormal
	if p.Disabled {
		style = StyleHelp
	}
	current := StyleHighlight
	if p.Disabled {
		current = StyleHelp
	}

	var parts []string
	if p.HasPrev {
		parts = append(parts, style.Render("‹"))
	} else {
		parts = append(parts, dimStyle.Render("‹"))
	}

	start, end := Window(p.Page, p.TotalPages, p.WindowSize)
	if start > 0 {
		parts = append(parts, dimStyle.Render("…"))
	}
	for i := start; i < end; i++ {
		if i == p.Page {
			parts = append(parts, current.Render(fmt.Sprintf("[%d]", i+1)))
		} else {
			parts = append(parts, style.Render(fmt.Sprintf("%d", i+1)))
		}
	}
	if end < p.TotalPages {
		parts = append(parts, dimStyle.Render("…"))
	}

	if p.HasNext {
		parts = append(parts, style.Render("›"))
	} else {
		parts = append(parts, dimStyle.Render("›"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(parts, " "),
		StyleHelp.Render(fmt.Sprintf("  %d/page", p.PageSize)),
	)
}
