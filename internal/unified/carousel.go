package unified

import (
	"strings"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Shelf strip geometry, in terminal cells.
const (
	cardW    = 22 // content width; the border adds 2
	cardH    = 6
	cardGap  = 2
	peekW    = 6
	outerPad = 4
)

// cardsThatFit returns how many full cards fit between the two peek slots.
func cardsThatFit(width int) int {
	usable := width - outerPad - 2*(peekW+cardGap)
	n := (usable + cardGap) / (cardW + 2 + cardGap)
	if n < 1 {
		n = 1
	}
	return n
}

// renderCard renders one shelf card. focused uses the orange border.
func renderCard(b catalog.SummaryBook, focused bool) string {
	inner := cardW - 2
	title := wrapTitle(b.Title, inner, cardH-2)
	author := xansi.Truncate(b.Author, inner, "…")
	content := tui.StyleNormal.Bold(true).Render(title) + "\n" + tui.StyleAuthor.Render(author)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(cardW).Height(cardH).Padding(0, 1)
	if focused {
		style = style.BorderForeground(tui.ColorOrange)
	} else {
		style = style.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("242"))
	}
	return style.Render(content)
}

// wrapTitle word-wraps s into at most lines lines of width w. Overflow is
// marked with an ellipsis on the last line.
func wrapTitle(s string, w, lines int) string {
	wrapped := strings.Split(xansi.Wordwrap(s, w, ""), "\n")
	if len(wrapped) <= lines {
		return strings.Join(wrapped, "\n")
	}
	wrapped = wrapped[:lines]
	last := wrapped[lines-1]
	wrapped[lines-1] = xansi.Truncate(last+" …", w, "…")
	return strings.Join(wrapped, "\n")
}

// renderStrip renders the visible cards with the neighbouring cards peeking
// in from both sides. Edges without a neighbour show a ghost card.
func renderStrip(books []catalog.SummaryBook, offset, visible int) string {
	gap := strings.Repeat(" ", cardGap)

	var left string
	if offset > 0 {
		left = peekRight(renderCard(books[offset-1], false), peekW)
	} else {
		left = peekRight(ghostCard(), peekW)
	}

	end := offset + visible
	if end > len(books) {
		end = len(books)
	}
	var right string
	if end < len(books) {
		right = peekLeft(renderCard(books[end], false), peekW)
	} else {
		right = peekLeft(ghostCard(), peekW)
	}

	parts := []string{left, gap}
	for i := offset; i < end; i++ {
		parts = append(parts, renderCard(books[i], i == offset), gap)
	}
	parts = append(parts, right)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// peekLeft clips a rendered multi-line block to the first n visible columns (left edge peek).
func peekLeft(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = xansi.Truncate(line, n, "")
	}
	return strings.Join(lines, "\n")
}

// peekRight clips a rendered multi-line block to the last n visible columns (right edge peek).
func peekRight(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		w := xansi.StringWidth(line)
		if w > n {
			lines[i] = xansi.TruncateLeft(line, w-n, "")
		}
	}
	return strings.Join(lines, "\n")
}

// ghostCard is a blank card with a very dim border.
func ghostCard() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("235")).
		Width(cardW).Height(cardH).
		Render("")
}
