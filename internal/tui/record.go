package tui

import (
	"strings"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	xansi "github.com/charmbracelet/x/ansi"
)

// RenderRecordRow renders a record as two lines: a header with date, title,
// author and link mark, then the quoted sentence and comment.
func RenderRecordRow(rec catalog.Record, selected bool, width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 2

	date := rec.RecordedAt.Format("2006-01-02")
	mark := StyleHelp.Render("○")
	if rec.Linked() {
		mark = StyleLinked.Render("●")
	}

	title := PlainText(rec.Title)
	if title == "" {
		title = "(untitled)"
	}
	head := xansi.Truncate(date+"  "+title, inner-4, "…")
	author := PlainText(rec.Author)

	var body []string
	if s := PlainText(rec.Sentence); s != "" {
		body = append(body, "“"+s+"”")
	}
	if c := PlainText(rec.Comment); c != "" {
		body = append(body, c)
	}
	detail := xansi.Truncate(strings.Join(body, "  "), inner, "…")

	if selected {
		line := StyleHighlight.Render("› "+head) + " " + mark
		if author != "" {
			line += " " + StyleAuthor.Render(xansi.Truncate(author, 24, "…"))
		}
		return line + "\n  " + StyleNormal.Render(detail)
	}
	line := "  " + StyleNormal.Render(head) + " " + mark
	if author != "" {
		line += " " + StyleHelp.Render(xansi.Truncate(author, 24, "…"))
	}
	return line + "\n  " + StyleHelp.Render(detail)
}
