// Package batch runs the poll-loop driver around the extraction core: scan
// the input folder, process each document, write a JSON result file, and
// route the source file to the processed or failed bucket.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/engine"
	"github.com/devhouston/ocrmill/internal/ingest"
)

type Worker struct {
	logger *slog.Logger
	eng    *engine.Engine
	cfg    *common.Config
}

func NewWorker(eng *engine.Engine, cfg *common.Config, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{logger: logger, eng: eng, cfg: cfg}
}

// Run polls the input folder until the context is cancelled, sleeping the
// configured interval between scans. Whole-document granularity: one
// document is processed at a time, and one document's failure never aborts
// the rest of the batch.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("batch.start",
		"input", w.cfg.Folders.InputDir,
		"poll_interval", w.cfg.Batch.PollInterval,
	)
	for {
		if _, err := w.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			w.logger.Info("batch.stop")
			return ctx.Err()
		case <-time.After(w.cfg.Batch.PollInterval):
		}
	}
}

// RunOnce scans and processes the input folder a single time.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	runID := uuid.New()
	paths, stats, err := ingest.ScanDirectory(w.cfg.Folders.InputDir, nil)
	if err != nil {
		// A missing input folder is a configuration hiccup, not a reason to
		// kill the loop.
		w.logger.Warn("batch.scan.failed", "run_id", runID, "err", err)
		return 0, nil
	}
	if len(paths) == 0 {
		return 0, nil
	}
	w.logger.Info("batch.scan", "run_id", runID, "scanned", stats.Scanned, "matched", stats.Matched)

	processed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := w.processOne(ctx, runID, path); err != nil {
			// Per-document isolation: log, bucket, continue.
			w.logger.Error("batch.document.failed", "run_id", runID, "path", path, "err", err)
			w.moveTo(path, w.cfg.Folders.FailedDir, err.Error())
			continue
		}
		processed++
	}
	return processed, nil
}

func (w *Worker) processOne(ctx context.Context, runID uuid.UUID, path string) error {
	doc, err := ingest.ReadDocument(path)
	if err != nil {
		return err
	}
	doc.Name = filepath.Base(path)

	result, err := w.eng.ProcessDocument(ctx, doc)
	if err != nil {
		return err
	}

	if err := w.writeResult(path, result); err != nil {
		return err
	}

	if result.Status.Failed() {
		w.logger.Warn("batch.document.unmatched", "run_id", runID, "path", path, "status", result.Status)
		w.moveTo(path, w.cfg.Folders.FailedDir, string(result.Status))
		return nil
	}
	w.logger.Info("batch.document.ok",
		"run_id", runID,
		"path", path,
		"status", result.Status,
		"invoices", result.InvoiceCount,
		"items", len(result.Items),
	)
	w.moveTo(path, w.cfg.Folders.ProcessedDir, "")
	return nil
}

// writeResult dumps the full result as JSON next to where exporters pick it
// up. Delimited-file schemas belong to downstream consumers, not here.
func (w *Worker) writeResult(srcPath string, result engine.Result) error {
	if err := os.MkdirAll(w.cfg.Folders.OutputDir, 0o755); err != nil {
		return common.WrapError(err, "creating output dir")
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outPath := filepath.Join(w.cfg.Folders.OutputDir, base+".json")
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return common.WrapError(err, "encoding result")
	}
	return os.WriteFile(outPath, data, 0o644)
}

// moveTo relocates a source file into a bucket folder, renaming on
// collision. Disabled via OCRMILL_MOVE_FILES for read-only input folders.
func (w *Worker) moveTo(path, bucket, reason string) {
	if !w.cfg.Batch.MoveFiles || bucket == "" {
		return
	}
	if err := os.MkdirAll(bucket, 0o755); err != nil {
		w.logger.Warn("batch.move.failed", "path", path, "err", err)
		return
	}
	dest := filepath.Join(bucket, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(dest)
		stem := strings.TrimSuffix(dest, ext)
		dest = fmt.Sprintf("%s_%d%s", stem, time.Now().Unix(), ext)
	}
	if err := os.Rename(path, dest); err != nil {
		w.logger.Warn("batch.move.failed", "path", path, "dest", dest, "err", err)
		return
	}
	if reason != "" {
		_ = os.WriteFile(dest+".reason.txt", []byte(reason+"\n"), 0o644)
	}
}
