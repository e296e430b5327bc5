package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/catalog/internal/cli"
	"github.com/idilsaglam/catalog/internal/config"
	"github.com/idilsaglam/catalog/internal/logging"
	"github.com/idilsaglam/catalog/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api-url", "", "item service base URL (overrides CATALOG_API_URL)")
	theme := flag.String("theme", "", "classic|neon|mono (overrides CATALOG_THEME)")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	cfg, err := config.Load(config.Overrides{APIURL: *apiURL, Theme: *theme})
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, *noColor)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		ui.Fail("logger: " + err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(ctx, flag.Args(), cli.Options{
		Config: cfg,
		Logger: logger,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	_ = logger.Sync()
	os.Exit(code)
}
