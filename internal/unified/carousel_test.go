package unified

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestCardsThatFit(t *testing.T) {
	if got := cardsThatFit(0); got != 1 {
		t.Errorf("cardsThatFit(0) = %d, want 1", got)
	}
	narrow, wide := cardsThatFit(80), cardsThatFit(200)
	if wide <= narrow {
		t.Errorf("wide %d should fit more than narrow %d", wide, narrow)
	}
}

func TestPeek(t *testing.T) {
	block := "abcdefgh\n12345678"
	if got := peekLeft(block, 3); got != "abc\n123" {
		t.Errorf("peekLeft = %q", got)
	}
	if got := peekRight(block, 3); got != "fgh\n678" {
		t.Errorf("peekRight = %q", got)
	}
}

func TestWrapTitle(t *testing.T) {
	got := wrapTitle("one two three four five six", 9, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("overflow not marked: %q", lines[1])
	}
	for _, l := range lines {
		if xansi.StringWidth(l) > 9 {
			t.Errorf("line %q wider than 9", l)
		}
	}
}

func TestRenderStrip(t *testing.T) {
	books := []catalog.SummaryBook{
		{ID: 1, Title: "Alpha"}, {ID: 2, Title: "Beta"}, {ID: 3, Title: "Gamma"}, {ID: 4, Title: "Delta"},
	}
	out := renderStrip(books, 1, 2)
	if !strings.Contains(out, "Beta") || !strings.Contains(out, "Gamma") {
		t.Errorf("visible cards missing:\n%s", out)
	}
	if strings.Contains(out, "Alpha") || strings.Contains(out, "Delta") {
		t.Errorf("peeking cards should be clipped to their edge:\n%s", out)
	}
}
