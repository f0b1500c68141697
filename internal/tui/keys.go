package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// AppKeys switch between the top-level views.
type AppKeys struct {
	Quit    key.Binding
	NextTab key.Binding
	Shelf   key.Binding
	Records key.Binding
}

// NewAppKeys creates the view switching bindings.
func NewAppKeys() AppKeys {
	return AppKeys{
		Quit: NewStandardKeys().Quit,
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Shelf: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "shelf"),
		),
		Records: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "records"),
		),
	}
}

// ShelfKeys scroll the shelf strip.
type ShelfKeys struct {
	Left  key.Binding
	Right key.Binding
}

// NewShelfKeys creates the shelf bindings.
func NewShelfKeys() ShelfKeys {
	return ShelfKeys{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
	}
}

// RecordsKeys drive the records list.
type RecordsKeys struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Link     key.Binding
	Unlink   key.Binding
	Reload   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Size     key.Binding
}

// NewRecordsKeys creates the records list bindings.
func NewRecordsKeys() RecordsKeys {
	return RecordsKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Link: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "link book"),
		),
		Unlink: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "unlink"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→", "next page"),
		),
		Size: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page size"),
		),
	}
}

// ModalKeys drive the candidate selection modal.
type ModalKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
	Sort   key.Binding
	Focus  key.Binding
}

// NewModalKeys creates the modal bindings.
func NewModalKeys() ModalKeys {
	return ModalKeys{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search / link"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Sort: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "title/author"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "input/list"),
		),
	}
}
