// flatgen generates Rust FlatBuffers code from schema IR documents.
//
//	flatgen [flags] schema.json...
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/flatgen/internal/cli"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flatgen:", err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := cli.NewRunner(cfg, log)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if err := runner.Run(ctx, cfg.Inputs); err != nil {
		log.Error("generation failed", "error", err)
		if !cfg.Watch {
			os.Exit(1)
		}
	}
	if cfg.Watch {
		if err := cli.Watch(ctx, runner, cfg, log); err != nil {
			log.Error("watch failed", "error", err)
			os.Exit(1)
		}
	}
	m := runner.Metrics()
	log.Debug("done", "files", m.FilesGenerated, "bytes", m.TotalBytes, "warnings", m.Warnings)
}
