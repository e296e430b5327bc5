package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/catalog/internal/model"
)

func init() {
	SetColorForcing(false, true)
}

func TestRenderCollectionEmpty(t *testing.T) {
	assert.Equal(t, EmptyMessage, RenderCollection(nil))
	assert.Equal(t, EmptyMessage, RenderCollection([]model.Item{}))
}

func TestRenderCollection(t *testing.T) {
	out := RenderCollection([]model.Item{
		{ID: "1", Name: "Widget", Description: "A gadget"},
		{ID: "2", Name: "Bolt", Description: "M6"},
	})
	assert.Contains(t, out, "Items (2)")
	assert.Contains(t, out, "Widget\nA gadget\nID: 1")
	assert.Contains(t, out, "Bolt\nM6\nID: 2")
	assert.NotContains(t, out, EmptyMessage)
}

func TestStatusLines(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	SetTheme("mono")
	defer SetTheme("classic")

	OK("added")
	Fail("nope")
	assert.Equal(t, "ok added\n", out.String())
	assert.Equal(t, "x nope\n", errOut.String())

	errOut.Reset()
	Prompt("Delete? [y/N]")
	assert.Equal(t, "Delete? [y/N] ", errOut.String())
}

func TestPanelContainsLines(t *testing.T) {
	p := Panel([]string{"first", "second"})
	assert.Contains(t, p, "first")
	assert.Contains(t, p, "second")
}
