package tui

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		page, total, size  int
		wantStart, wantEnd int
	}{
		{"empty", 0, 0, 5, 0, 0},
		{"fewer pages than window", 1, 3, 5, 0, 3},
		{"start", 0, 20, 5, 0, 5},
		{"centered", 10, 20, 5, 8, 13},
		{"end", 19, 20, 5, 15, 20},
		{"near end", 18, 20, 5, 15, 20},
		{"zero window shows all", 2, 4, 0, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := Window(tt.page, tt.total, tt.size)
			if s != tt.wantStart || e != tt.wantEnd {
				t.Errorf("Window(%d,%d,%d) = [%d,%d), want [%d,%d)",
					tt.page, tt.total, tt.size, s, e, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPagination_HandleKey(t *testing.T) {
	p := NewPagination(5).SetPage(catalog.Page[catalog.Record]{
		Page: 2, TotalPages: 5, HasPrev: true, HasNext: true,
	}, catalog.SizeWide)

	if msg := p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})(); msg != (PageChangeMsg{Page: 3}) {
		t.Errorf("right = %#v, want page 3", msg)
	}
	if msg := p.HandleKey(runeKey("["))(); msg != (PageChangeMsg{Page: 1}) {
		t.Errorf("[ = %#v, want page 1", msg)
	}
	if msg := p.HandleKey(runeKey("s"))(); msg != (PageSizeChangeMsg{Size: catalog.SizeCompact}) {
		t.Errorf("s = %#v, want compact size", msg)
	}
	if p.HandleKey(runeKey("z")) != nil {
		t.Error("unrelated key should produce no command")
	}
}

func TestPagination_Bounds(t *testing.T) {
	first := NewPagination(5).SetPage(catalog.Page[catalog.Record]{Page: 0, TotalPages: 2, HasNext: true}, catalog.SizeCompact)
	if first.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}) != nil {
		t.Error("prev on first page should do nothing")
	}
	if msg := first.HandleKey(runeKey("s"))(); msg != (PageSizeChangeMsg{Size: catalog.SizeWide}) {
		t.Errorf("s from compact = %#v, want wide", msg)
	}

	last := NewPagination(5).SetPage(catalog.Page[catalog.Record]{Page: 1, TotalPages: 2, HasPrev: true}, catalog.SizeWide)
	if last.HandleKey(tea.KeyMsg{Type: tea.KeyRight}) != nil {
		t.Error("next on last page should do nothing")
	}
}

func TestPagination_Disabled(t *testing.T) {
	p := NewPagination(5).SetPage(catalog.Page[catalog.Record]{Page: 1, TotalPages: 3, HasPrev: true, HasNext: true}, catalog.SizeWide)
	p.Disabled = true
	for _, k := range []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyRight}, runeKey("s")} {
		if p.HandleKey(k) != nil {
			t.Errorf("disabled pagination handled %v", k)
		}
	}
}

func TestPagination_View(t *testing.T) {
	p := NewPagination(3).SetPage(catalog.Page[catalog.Record]{Page: 4, TotalPages: 10, HasPrev: true, HasNext: true}, catalog.SizeWide)
	v := p.View()
	for _, want := range []string{"[5]", "4", "6", "…", "10/page"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() = %q, missing %q", v, want)
		}
	}
	if strings.Contains(v, "[4]") {
		t.Error("only the current page should be bracketed")
	}

	if NewPagination(3).View() != "" {
		t.Error("no pages should render nothing")
	}
}
