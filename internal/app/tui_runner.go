package app

import (
	"os"

	"github.com/blackwell-systems/shelflog/internal/records"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/blackwell-systems/shelflog/internal/unified"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// runTUI launches the unified views at start.
func runTUI(start unified.View) error {
	ui := cfg.UI
	deps := unified.Deps{
		Shelf:   client,
		Records: client,
		Policy: records.BreakpointPolicy{
			Breakpoint: ui.EffectiveBreakpoint(),
			Compact:    records.DefaultPolicy().Compact,
			Wide:       records.DefaultPolicy().Wide,
		},
		UI:       ui,
		Covers:   cacheMgr,
		Fetcher:  client,
		Protocol: tui.DetectImageProtocol(),
	}

	m := unified.New(deps, start)
	// Knowing the size up front lets the first records fetch use the right
	// page size instead of refetching on the first resize.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m = m.WithSize(w, h)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
