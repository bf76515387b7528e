package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/devhouston/ocrmill/internal/batch"
	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/engine"
	"github.com/devhouston/ocrmill/internal/ingest"
	"github.com/devhouston/ocrmill/internal/template"
	"github.com/devhouston/ocrmill/internal/template/builtin"
)

func main() {
	var (
		file = flag.String("file", "", "process a single document (PDF or TXT) and print the result")
		once = flag.Bool("once", false, "scan the input folder once and exit")
		poll = flag.Bool("poll", false, "poll the input folder until interrupted")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	settings := common.LoadSettings(cfg.Templates.SettingsPath, logger)

	// Primary source is the compiled-in template set; the shared folder of
	// JSON definitions (settings first, env second) is the fallback.
	sharedDir := settings.SharedTemplateDir()
	if sharedDir == "" {
		sharedDir = cfg.Templates.SharedDir
	}
	sources := []template.Source{builtin.Source()}
	if sharedDir != "" {
		sources = append(sources, template.NewDirSource(sharedDir, logger))
	}
	registry := template.NewRegistry(logger, sources...)
	eng := engine.New(registry, settings, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *file != "":
		if err := runFile(ctx, eng, *file); err != nil {
			logger.Error("ocrmill.failed", "err", err)
			os.Exit(1)
		}
	case *once:
		worker := batch.NewWorker(eng, cfg, logger)
		if _, err := worker.RunOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Error("ocrmill.failed", "err", err)
			os.Exit(1)
		}
	case *poll:
		if err := cfg.Validate(); err != nil {
			logger.Error("ocrmill.config", "err", err)
			os.Exit(1)
		}
		worker := batch.NewWorker(eng, cfg, logger)
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("ocrmill.failed", "err", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: ocrmill -file <doc> | -once | -poll")
		os.Exit(2)
	}
}

func runFile(ctx context.Context, eng *engine.Engine, path string) error {
	doc, err := ingest.ReadDocument(path)
	if err != nil {
		return err
	}
	doc.Name = filepath.Base(path)

	result, err := eng.ProcessDocument(ctx, doc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
