package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Focus   key.Binding
	Quit    key.Binding

	Submit key.Binding
	Next   key.Binding
	Cancel key.Binding

	Yes key.Binding
	No  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add/cancel")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh/retry")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus form")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep")),
	}
}

func (k keyMap) listKeys() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Refresh, k.Focus}
}

func (k keyMap) formKeys() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Cancel}
}

func (k keyMap) confirmKeys() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}
