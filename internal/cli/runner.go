package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/catalog/internal/api"
	"github.com/idilsaglam/catalog/internal/catalog"
	"github.com/idilsaglam/catalog/internal/config"
	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/server"
	"github.com/idilsaglam/catalog/internal/tui"
	"github.com/idilsaglam/catalog/internal/ui"
)

// Options carry what the root command resolved.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	In     io.Reader // answers to confirmation prompts; defaults to stdin
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if len(args) == 0 {
		args = []string{"ui"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		return doUI(ctx, opt)

	case "ls":
		return doList(ctx, opt)

	case "get":
		if len(a) != 1 {
			ui.Fail("usage: catalog get <id>")
			return 2
		}
		return doGet(ctx, opt, model.ID(a[0]))

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: catalog add <name> <description...>")
			return 2
		}
		return doAdd(ctx, opt, model.Draft{Name: a[0], Description: strings.Join(a[1:], " ")})

	case "edit":
		if len(a) < 3 {
			ui.Fail("usage: catalog edit <id> <name> <description...>")
			return 2
		}
		return doEdit(ctx, opt, model.ID(a[0]), model.Draft{Name: a[1], Description: strings.Join(a[2:], " ")})

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: catalog rm <id>")
			return 2
		}
		return doRemove(ctx, opt, model.ID(a[0]))

	case "serve":
		return doServe(ctx, opt, a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Hint("")
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`catalog - item catalog client

Usage:
  catalog [flags] <subcommand> [args]

Subcommands:
  ui                              Interactive catalog (default)
  ls                              List items
  get <id>                        Show one item
  add <name> <description...>     Create an item
  edit <id> <name> <description...>
                                  Replace an item's name and description
  rm <id>                         Delete an item (asks for confirmation)
  serve [--listen addr] [--data file]
                                  Run the development item service

Environment:
  CATALOG_API_URL    item service base URL (default http://localhost:8080)
  CATALOG_LOG_FILE   operator log file
  CATALOG_LOG_LEVEL  debug|info|warn|error

Examples:
  catalog add Widget "A gadget"
  catalog ls
  catalog edit 1 Widget "A better gadget"
  catalog rm 1
`)
}

func newController(opt Options) *catalog.Controller {
	client := api.New(opt.Config.APIURL, api.WithLogger(opt.Logger))
	return catalog.New(client, opt.Logger)
}

func doUI(ctx context.Context, opt Options) int {
	if err := tui.Run(ctx, newController(opt), opt.Config.APIURL); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(ctx context.Context, opt Options) int {
	c := newController(opt)
	if err := c.Load(ctx); err != nil {
		ui.Fail(c.State().Err)
		hintFor(err)
		return 1
	}
	ui.Println(ui.RenderCollection(c.Items()))
	return 0
}

func doGet(ctx context.Context, opt Options, id model.ID) int {
	client := api.New(opt.Config.APIURL, api.WithLogger(opt.Logger))
	it, err := client.GetItem(ctx, id)
	if err != nil {
		opt.Logger.Error("get item", zap.String("id", id.String()), zap.Error(err))
		ui.Fail("Failed to load item " + id.String())
		hintFor(err)
		return 1
	}
	ui.PrintPanel([]string{ui.RenderItem(it)})
	return 0
}

func doAdd(ctx context.Context, opt Options, d model.Draft) int {
	c := newController(opt)
	it, err := c.Create(ctx, d)
	if err != nil {
		return reportMutation(c, err)
	}
	ui.OK("added " + it.ID.String())
	return 0
}

func doEdit(ctx context.Context, opt Options, id model.ID, d model.Draft) int {
	c := newController(opt)
	if _, err := c.Update(ctx, id, d); err != nil {
		return reportMutation(c, err)
	}
	ui.OK("updated " + id.String())
	return 0
}

func doRemove(ctx context.Context, opt Options, id model.ID) int {
	c := newController(opt)
	ok, err := c.Delete(ctx, id, promptConfirmer{in: bufio.NewReader(opt.In)})
	if err != nil {
		return reportMutation(c, err)
	}
	if !ok {
		ui.Hint("cancelled")
		return 0
	}
	ui.OK("removed " + id.String())
	return 0
}

func reportMutation(c *catalog.Controller, err error) int {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		ui.Fail(err.Error())
		return 2
	}
	ui.Fail(c.State().Err)
	hintFor(err)
	return 1
}

func hintFor(err error) {
	var te *api.TransportError
	var ne *api.NetworkError
	switch {
	case errors.As(err, &te):
		ui.Hint(fmt.Sprintf("Hint: the item service answered %d", te.StatusCode))
	case errors.As(err, &ne):
		ui.Hint("Hint: is the item service running? Try `catalog serve`")
	}
}

// promptConfirmer asks on stderr and reads a y/N answer.
type promptConfirmer struct {
	in *bufio.Reader
}

func (p promptConfirmer) Confirm(prompt string) bool {
	ui.Prompt(prompt + " [y/N]")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func doServe(ctx context.Context, opt Options, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", opt.Config.Listen, "address to listen on")
	data := fs.String("data", "", "JSON snapshot file (empty keeps items in memory only)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := server.NewStore(*data)
	if err != nil {
		ui.Fail("load snapshot: " + err.Error())
		return 1
	}
	ui.OK("serving items on " + *listen)
	if err := server.ListenAndServe(ctx, *listen, server.NewRouter(store, opt.Logger), opt.Logger); err != nil {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}
