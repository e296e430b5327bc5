package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ item model.Item }

func (i listItem) Title() string       { return i.item.Name }
func (i listItem) Description() string { return i.item.Description }
func (i listItem) FilterValue() string { return i.item.Name + " " + i.item.Description }

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{item: it})
	}
	return out
}

// itemDelegate renders a record as two lines: name with id and edit marker,
// then the description.
type itemDelegate struct {
	editing func(model.ID) bool
}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}
	it := li.item
	t := ui.Current()

	prefix := "  "
	name := t.Accent.Render(it.Name)
	if index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor) + " "
		name = t.Selected.Render(it.Name)
	}
	marker := ""
	if d.editing != nil && d.editing(it.ID) {
		marker = "  " + t.Accent.Render(t.SymEdit+" editing")
	}

	fmt.Fprintf(w, "%s%s  %s%s\n", prefix, name, t.Muted.Render("ID: "+it.ID.String()), marker)
	fmt.Fprint(w, "  "+it.Description)
}
