package ui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/catalog/internal/model"
)

// EmptyMessage is shown instead of the list when there are no items.
const EmptyMessage = "No items found. Add your first item to get started!"

// CollectionTitle is the header above a non-empty list.
func CollectionTitle(n int) string {
	return fmt.Sprintf("Items (%d)", n)
}

// RenderCollection renders items as cards, or the empty-state message.
// It depends only on its input and the current theme.
func RenderCollection(items []model.Item) string {
	t := Current()
	if len(items) == 0 {
		return t.Muted.Render(EmptyMessage)
	}
	var b strings.Builder
	b.WriteString(t.Title.Render(CollectionTitle(len(items))))
	for _, it := range items {
		b.WriteString("\n\n")
		b.WriteString(RenderItem(it))
	}
	return b.String()
}

// RenderItem renders one card: name, description, id.
func RenderItem(it model.Item) string {
	t := Current()
	return strings.Join([]string{
		t.Accent.Render(it.Name),
		it.Description,
		t.Muted.Render("ID: " + it.ID.String()),
	}, "\n")
}
