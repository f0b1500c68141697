package unified

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/records"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/charmbracelet/lipgloss"
)

func (v RecordsView) View() string {
	if alert := v.rec.Alert(); alert != "" {
		return v.center(tui.RenderAlert(alert, v.width))
	}
	if v.modal.Open {
		return v.center(v.modal.View())
	}

	var b strings.Builder
	b.WriteString(v.renderSearch())
	b.WriteString("\n\n")

	switch v.rec.Status() {
	case records.StatusFailed:
		b.WriteString(tui.StyleError.Render(fmt.Sprintf("Could not load records: %v", v.rec.Err())))
		b.WriteString("\n")
		b.WriteString(tui.StyleHelp.Render("Press r to try again."))
		b.WriteString("\n\n")
		b.WriteString(v.renderFooter())
		return b.String()
	case records.StatusLoading:
		if len(v.rec.Page().Items) == 0 {
			b.WriteString(tui.StyleHelp.Render("Loading records…"))
			b.WriteString("\n\n")
			b.WriteString(v.renderFooter())
			return b.String()
		}
	}

	b.WriteString(v.renderList())
	b.WriteString("\n")
	b.WriteString(v.pager.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

func (v RecordsView) renderSearch() string {
	if v.searching {
		return v.search.View()
	}
	q := v.rec.Query().Q
	if q == "" {
		return tui.StyleHelp.Render("/ search")
	}
	return tui.StyleHelp.Render("/ ") + tui.StyleNormal.Render(q)
}

func (v RecordsView) renderList() string {
	items := v.rec.Page().Items
	if len(items) == 0 {
		if v.rec.Query().Q != "" {
			return tui.StyleHelp.Render("No records match this search.")
		}
		return tui.StyleHelp.Render("No records yet.")
	}
	rows := make([]string, len(items))
	for i, rec := range items {
		rows[i] = tui.RenderRecordRow(rec, i == v.cursor, v.width)
	}
	return strings.Join(rows, "\n")
}

func (v RecordsView) renderFooter() string {
	return tui.RenderFooterBar([]tui.ShortcutEntry{
		{Key: "enter", Label: "enter link"},
		{Key: "x", Label: "x unlink"},
		{Key: "r", Label: "r reload"},
		{Label: "←/→ page"},
		{Label: "s size"},
		{Label: "tab shelf"},
		{Label: "q quit"},
	}, v.activeCmd)
}

func (v RecordsView) center(s string) string {
	if v.width == 0 || v.height == 0 {
		return s
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, s)
}
