package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the glossary browser.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	FocusToggle key.Binding // Switch between the subject list and the cards.
	Select      key.Binding // Open the highlighted subject.

	Flip   key.Binding // Body click: turn the card over.
	Expand key.Binding
	Copy   key.Binding

	NextTab key.Binding
	PrevTab key.Binding

	Search key.Binding

	// Modal focus trap.
	ModalNext     key.Binding
	ModalPrev     key.Binding
	ModalActivate key.Binding
	Close         key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous card"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next card"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Flip: key.NewBinding(
		key.WithKeys(" ", "f"),
		key.WithHelp("Space", "flip"),
	),
	Expand: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "details"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c", "copy"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous tab"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ModalNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next control"),
	),
	ModalPrev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous control"),
	),
	ModalActivate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("Enter", "activate"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
