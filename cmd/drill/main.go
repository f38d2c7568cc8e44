// Command drill runs the vocabulary drill as a terminal REPL.
//
// Usage:
//
//	drill [-load words.xlsx] [-export-dir DIR]
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables;
// logs go to stderr, the drill itself to stdout.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/heartmarshall/daydrill/internal/app"
	"github.com/heartmarshall/daydrill/internal/config"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/transport/cli"
)

func main() {
	loadPath := flag.String("load", "", "word list to load on start")
	exportDir := flag.String("export-dir", ".", "directory for exported bank files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rt.Close()

	format, _ := domain.ParseExportFormat(cfg.Quiz.ExportFormat)
	repl := cli.New(rt.Drill, logger, os.Stdin, os.Stdout, cli.Options{
		ExportDir:    *exportDir,
		ExportFormat: format,
	})

	if *loadPath != "" {
		if err := repl.Exec(ctx, "load "+*loadPath); err != nil {
			logger.Error("preload", slog.String("error", err.Error()))
		}
	}

	if err := repl.Run(ctx); err != nil {
		logger.Error("repl", slog.String("error", err.Error()))
		rt.Close()
		os.Exit(1)
	}
}
