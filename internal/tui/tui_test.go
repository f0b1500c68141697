package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"<b>bold</b> move", "bold move"},
		{"<script>alert(1)</script>ok", "ok"},
		{"a\n\n  b\tc", "a b c"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectImageProtocol(t *testing.T) {
	tests := []struct {
		term, program string
		want          TerminalImageProtocol
	}{
		{"xterm-kitty", "", ProtocolKitty},
		{"xterm-256color", "ghostty", ProtocolKitty},
		{"xterm-256color", "iTerm.app", ProtocolITerm2},
		{"xterm-256color", "WezTerm", ProtocolITerm2},
		{"xterm-256color", "Apple_Terminal", ProtocolNone},
	}
	for _, tt := range tests {
		if got := detectImageProtocol(tt.term, tt.program); got != tt.want {
			t.Errorf("detect(%q, %q) = %d, want %d", tt.term, tt.program, got, tt.want)
		}
	}
}

func TestRenderInlineImage(t *testing.T) {
	if RenderInlineImageBytes([]byte("x"), 10, ProtocolNone) != "" {
		t.Error("ProtocolNone should render nothing")
	}
	if RenderInlineImage(filepath.Join(t.TempDir(), "missing.jpg"), 10, ProtocolKitty) != "" {
		t.Error("missing file should render nothing")
	}

	path := filepath.Join(t.TempDir(), "c.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o600); err != nil {
		t.Fatal(err)
	}
	it := RenderInlineImage(path, 12, ProtocolITerm2)
	if !strings.HasPrefix(it, "\x1b]1337;File=inline=1;width=12") {
		t.Errorf("iTerm2 sequence = %q", it)
	}
}

func TestRenderKittyImage_Chunks(t *testing.T) {
	small := renderKittyImage([]byte("img"), 8)
	if strings.Count(small, "\x1b_G") != 1 || !strings.Contains(small, "c=8,m=0;") {
		t.Errorf("small payload = %q", small)
	}

	big := renderKittyImage(make([]byte, 8000), 8)
	// 8000 bytes encode to 10668 base64 chars: three chunks.
	if n := strings.Count(big, "\x1b_G"); n != 3 {
		t.Errorf("chunks = %d, want 3", n)
	}
	if !strings.Contains(big, "m=1;") || !strings.HasSuffix(big, "\x1b\\") {
		t.Error("continuation flags missing")
	}
	if strings.Count(big, "m=0;") != 1 {
		t.Error("exactly one final chunk expected")
	}
}

func TestRenderFooterBar(t *testing.T) {
	out := RenderFooterBar([]ShortcutEntry{
		{Key: "r", Label: "r reload"},
		{Key: "", Label: "q quit"},
	}, "r")
	if !strings.Contains(out, "[ r reload ]") {
		t.Errorf("active entry not highlighted: %q", out)
	}
	if !strings.Contains(out, "•") {
		t.Errorf("separator missing: %q", out)
	}
}

func TestHighlightCmd(t *testing.T) {
	if HighlightCmd() == nil {
		t.Fatal("HighlightCmd returned nil")
	}
}

func TestAlert(t *testing.T) {
	if _, ok := AlertKey(tea.KeyMsg{Type: tea.KeyEnter})().(AlertDismissMsg); !ok {
		t.Error("enter should dismiss")
	}
	if AlertKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) != nil {
		t.Error("other keys should be swallowed")
	}
	out := RenderAlert("Could not link the record: boom", 50)
	if !strings.Contains(out, "Error") || !strings.Contains(out, "boom") {
		t.Errorf("alert = %q", out)
	}
}

func TestRenderRecordRow(t *testing.T) {
	id := int64(3)
	rec := catalog.Record{
		Title:      "<i>War</i> and Peace",
		Author:     "Tolstoy",
		Sentence:   "All happy families",
		RecordedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BookID:     &id,
	}
	out := RenderRecordRow(rec, true, 80)
	for _, want := range []string{"2024-03-01", "War and Peace", "Tolstoy", "All happy families", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("row missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "<i>") {
		t.Error("markup should be stripped")
	}

	rec.BookID = nil
	rec.Title = ""
	out = RenderRecordRow(rec, false, 80)
	if !strings.Contains(out, "(untitled)") || !strings.Contains(out, "○") {
		t.Errorf("unlinked row = %q", out)
	}
}
