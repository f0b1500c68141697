package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/fatih/color"
)

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

// printShelf writes the shelf as an id/title/author table.
func printShelf(w io.Writer, books []catalog.SummaryBook) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books on your shelf yet.")
		return
	}
	for _, b := range books {
		fmt.Fprintf(w, "  %-6s  %-40s  %s\n",
			color.WhiteString("%d", b.ID),
			truncate(b.Title, 40),
			color.CyanString(b.Author),
		)
	}
}

// printRecords writes one page of records, newest first, with a link mark.
func printRecords(w io.Writer, page catalog.Page[catalog.Record]) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	for _, r := range page.Items {
		mark := color.New(color.FgHiBlack).Sprint("○")
		if r.Linked() {
			mark = color.GreenString("●")
		}
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "  %s %-6s  %s  %-36s  %s\n",
			mark,
			color.WhiteString("%d", r.ID),
			r.RecordedAt.Format("2006-01-02"),
			truncate(title, 36),
			color.CyanString(r.Author),
		)
		if r.Sentence != "" {
			fmt.Fprintf(w, "             %s\n", color.New(color.FgHiBlack).Sprint(truncate(tui.PlainText(r.Sentence), 70)))
		}
	}
	fmt.Fprintf(w, "\nPage %d of %d\n", page.Page+1, maxInt(page.TotalPages, 1))
}

// truncate shortens s to n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:n-1]), " ") + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
