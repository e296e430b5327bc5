package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/catalog/internal/catalog"
	"github.com/idilsaglam/catalog/internal/config"
	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/server"
	"github.com/idilsaglam/catalog/internal/ui"
)

type env struct {
	store       *server.Store
	opt         Options
	out, errOut *bytes.Buffer
}

func setup(t *testing.T) *env {
	t.Helper()
	ui.SetColorForcing(false, true)

	store, err := server.NewStore("")
	require.NoError(t, err)
	srv := httptest.NewServer(server.NewRouter(store, nil))
	t.Cleanup(srv.Close)

	e := &env{
		store:  store,
		opt:    Options{Config: &config.Config{APIURL: srv.URL}},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	ui.SetOutput(e.out, e.errOut)
	t.Cleanup(func() { ui.SetOutput(&bytes.Buffer{}, &bytes.Buffer{}) })
	return e
}

func (e *env) run(args ...string) int {
	return Run(context.Background(), args, e.opt)
}

func TestListEmpty(t *testing.T) {
	e := setup(t)
	require.Equal(t, 0, e.run("ls"))
	assert.Contains(t, e.out.String(), ui.EmptyMessage)
}

func TestAddListEditRemove(t *testing.T) {
	e := setup(t)

	require.Equal(t, 0, e.run("add", "Widget", "A", "gadget"))
	assert.Contains(t, e.out.String(), "added 1")

	e.out.Reset()
	require.Equal(t, 0, e.run("ls"))
	assert.Contains(t, e.out.String(), "Items (1)")
	assert.Contains(t, e.out.String(), "A gadget")

	require.Equal(t, 0, e.run("edit", "1", "Y", "Z"))
	it, ok := e.store.Get(1)
	require.True(t, ok)
	assert.Equal(t, model.Item{ID: "1", Name: "Y", Description: "Z"}, it)

	e.out.Reset()
	require.Equal(t, 0, e.run("get", "1"))
	assert.Contains(t, e.out.String(), "ID: 1")

	e.errOut.Reset()
	e.opt.In = strings.NewReader("n\n")
	require.Equal(t, 0, e.run("rm", "1"))
	assert.Len(t, e.store.List(), 1)
	assert.Contains(t, e.errOut.String(), catalog.DeletePrompt+" [y/N]")
	assert.Contains(t, e.errOut.String(), "cancelled")

	e.opt.In = strings.NewReader("y\n")
	require.Equal(t, 0, e.run("rm", "1"))
	assert.Empty(t, e.store.List())
}

func TestRemoveMissing(t *testing.T) {
	e := setup(t)
	e.opt.In = strings.NewReader("yes\n")
	assert.Equal(t, 1, e.run("rm", "9"))
	assert.Contains(t, e.errOut.String(), "Failed to delete item")
	assert.Contains(t, e.errOut.String(), "404")
}

func TestAddValidation(t *testing.T) {
	e := setup(t)
	assert.Equal(t, 2, e.run("add", " ", "desc"))
	assert.Contains(t, e.errOut.String(), "name cannot be empty")
	assert.Empty(t, e.store.List())
}

func TestUsageErrors(t *testing.T) {
	e := setup(t)
	assert.Equal(t, 2, e.run("add", "only-name"))
	assert.Equal(t, 2, e.run("edit", "1", "name"))
	assert.Equal(t, 2, e.run("get"))
	assert.Equal(t, 2, e.run("rm"))
	assert.Equal(t, 2, e.run("bogus"))
}

func TestUnreachableService(t *testing.T) {
	e := setup(t)
	e.opt.Config.APIURL = "http://127.0.0.1:1"
	assert.Equal(t, 1, e.run("ls"))
	assert.Contains(t, e.errOut.String(), "Failed to load items")
	assert.Contains(t, e.errOut.String(), "catalog serve")
}
