package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// AlertDismissMsg is sent when the user acknowledges an alert.
type AlertDismissMsg struct{}

var alertDismiss = key.NewBinding(
	key.WithKeys("enter", "esc", " "),
	key.WithHelp("enter", "ok"),
)

// AlertKey returns AlertDismissMsg for the acknowledge keys. While an alert
// is up every other key is swallowed.
func AlertKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, alertDismiss) {
		return func() tea.Msg { return AlertDismissMsg{} }
	}
	return nil
}

// RenderAlert renders a blocking error box at most width columns wide.
func RenderAlert(text string, width int) string {
	if width < 24 {
		width = 24
	}
	if width > 60 {
		width = 60
	}
	body := lipgloss.NewStyle().Width(width - 4).Render(xansi.Strip(text))
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorRed).
		Padding(0, 1).
		Render(StyleError.Bold(true).Render("Error") + "\n\n" + body + "\n\n" + StyleHelp.Render("enter to dismiss"))
}
