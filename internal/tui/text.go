package tui

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips markup from server-supplied text and collapses whitespace
// so it fits on one terminal line.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}
