/**
 * dococr - Main Entry Point
 *
 * Usage: dococr <document-id>
 *
 * Reads <DOCUMENT_DIR>/<document-id>.pdf (default temp/), rasterizes every
 * page with MuPDF, OCRs each page with Tesseract (French by default) and
 * prints exactly one JSON line on stdout:
 *
 *   {"success": true, "pages": [{"page": 1, "text": "..."}, ...]}
 *   {"success": false, "error": "..."}
 *
 * Logs go to stderr. The exit status is 0 whenever the JSON line was written.
 */

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/adverant/nexus/dococr/internal/config"
	"github.com/adverant/nexus/dococr/internal/errors"
	"github.com/adverant/nexus/dococr/internal/logging"
	"github.com/adverant/nexus/dococr/internal/processor"
	"github.com/adverant/nexus/dococr/internal/raster"
	"github.com/google/uuid"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := execute(ctx, args, stderr)
	if _, err := result.WriteTo(stdout); err != nil {
		return 1
	}
	return 0
}

func execute(ctx context.Context, args []string, stderr io.Writer) *processor.Result {
	if len(args) == 0 {
		return processor.NewFailure(errors.NewMissingArgumentError().Error())
	}
	documentID := args[0]

	if err := config.LoadDotEnv(config.DefaultDotEnvFile); err != nil {
		logging.NewLoggerTo(stderr, "dococr", logging.LevelWarn).
			Warn("Failed to load env file, using system environment variables", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		perr := errors.NewProcessingError(documentID, errors.StageConfig, err)
		logging.NewLoggerTo(stderr, "dococr", logging.LevelError).Error("Failed to load configuration", perr.LogFields()...)
		return processor.NewFailure(perr.Error())
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.NewLoggerTo(stderr, "dococr", level).With("run_id", uuid.NewString())
	log.Info("Processing document",
		"document_id", documentID,
		"language", cfg.OCRLanguage,
		"dpi", cfg.RenderDPI,
		"concurrency", cfg.OCRConcurrency)

	ocr, err := processor.NewTesseractOCR(&processor.TesseractConfig{
		Languages:   cfg.Languages(),
		PageSegMode: cfg.OCRPageSegMode,
	})
	if err != nil {
		return processor.NewFailure(err.Error())
	}

	procCfg := &processor.ProcessorConfig{
		DocumentDir: cfg.DocumentDir,
		DocumentExt: cfg.DocumentExt,
		Concurrency: cfg.OCRConcurrency,
		Rasterizer: raster.NewFitzRasterizer(raster.FitzConfig{
			DPI:      cfg.RenderDPI,
			MaxPages: cfg.MaxPages,
			MaxWidth: cfg.MaxImageWidth,
		}),
		Recognizer: ocr,
		Logger:     log,
	}
	if exporter := raster.NewPageExporter(cfg.PageImageDir); exporter != nil {
		procCfg.PageSink = exporter
	}

	proc, err := processor.NewDocumentProcessor(procCfg)
	if err != nil {
		return processor.NewFailure(err.Error())
	}

	return proc.Process(ctx, documentID)
}
