package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the player.
type keyMap struct {
	toggle   key.Binding
	previous key.Binding
	next     key.Binding
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	search   key.Binding
	remove   key.Binding
	edit     key.Binding
	share    key.Binding
	seekBack key.Binding
	seekFwd  key.Binding
	field    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		previous: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		next:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		share:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		seekBack: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "seek -10%")),
		seekFwd:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "seek +10%")),
		field:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.previous, k.next, k.search, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.previous, k.next, k.seekBack, k.seekFwd},
		{k.up, k.down, k.enter},
		{k.search, k.remove, k.edit, k.share},
		{k.help, k.quit},
	}
}
