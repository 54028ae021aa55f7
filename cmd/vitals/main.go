package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/dmitrijs2005/vitalkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/cli"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/config"
	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	root := app.RootCommand()
	root.Version = buildinfo.Version()
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.Flags()))
	return root.ExecuteContext(ctx)
}
