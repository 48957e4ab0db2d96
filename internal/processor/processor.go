/**
 * Document Processor for the dococr command
 *
 * Pipeline for one document:
 * - Resolve <DocumentDir>/<id><DocumentExt>
 * - Rasterize every page (MuPDF)
 * - OCR every page (Tesseract), optionally in parallel
 * - Collect pages in PDF order into a single Result
 *
 * Any failure abandons the run; no partial pages are reported.
 */

package processor

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/adverant/nexus/dococr/internal/errors"
	"github.com/adverant/nexus/dococr/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DocumentProcessorInterface defines the interface for document processing
type DocumentProcessorInterface interface {
	Process(ctx context.Context, documentID string) *Result
}

// ProcessorConfig holds processor configuration
type ProcessorConfig struct {
	DocumentDir string
	DocumentExt string
	Concurrency int // parallel OCR workers, <= 1 means sequential
	Rasterizer  Rasterizer
	Recognizer  Recognizer
	PageSink    PageSink // optional
	Logger      *logging.Logger
}

// DocumentProcessor handles document processing
type DocumentProcessor struct {
	config     *ProcessorConfig
	rasterizer Rasterizer
	recognizer Recognizer
	pageSink   PageSink
	log        *logging.Logger
}

// NewDocumentProcessor creates a new document processor
func NewDocumentProcessor(cfg *ProcessorConfig) (*DocumentProcessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if cfg.Rasterizer == nil {
		return nil, fmt.Errorf("rasterizer is required")
	}

	if cfg.Recognizer == nil {
		return nil, fmt.Errorf("recognizer is required")
	}

	if cfg.DocumentExt == "" {
		return nil, fmt.Errorf("document extension is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("processor")
	}

	return &DocumentProcessor{
		config:     cfg,
		rasterizer: cfg.Rasterizer,
		recognizer: cfg.Recognizer,
		pageSink:   cfg.PageSink,
		log:        logger,
	}, nil
}

// DocumentPath builds the on-disk location for documentID. No validation is
// applied to the id.
func (p *DocumentProcessor) DocumentPath(documentID string) string {
	return filepath.Join(p.config.DocumentDir, documentID+p.config.DocumentExt)
}

// Process runs the pipeline and always returns a Result; errors are folded
// into a Failure.
func (p *DocumentProcessor) Process(ctx context.Context, documentID string) *Result {
	startTime := time.Now()
	log := p.log.With("document_id", documentID)

	pages, err := p.process(ctx, documentID, log)
	if err != nil {
		perr := errors.NewProcessingError(documentID, stageOf(err), err)
		log.Error("Document processing failed", perr.LogFields()...)
		return NewFailure(perr.Error())
	}

	log.Info("Document processing complete", "pages", len(pages), "duration", time.Since(startTime))
	return NewSuccess(pages)
}

func (p *DocumentProcessor) process(ctx context.Context, documentID string, log *logging.Logger) ([]Page, error) {
	// Step 1: Resolve path
	path := p.DocumentPath(documentID)
	log.Debug("Step 1: Resolving document", "path", path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, stageError{errors.StageResolve, err}
	}
	if info.IsDir() {
		return nil, stageError{errors.StageResolve, fmt.Errorf("%s is a directory", path)}
	}

	// Step 2: Rasterize
	log.Debug("Step 2: Rasterizing pages", "path", path)
	images, err := p.rasterizer.Rasterize(ctx, path)
	if err != nil {
		return nil, stageError{errors.StageRasterize, err}
	}
	log.Info("Pages rasterized", "pages", len(images))

	if p.pageSink != nil {
		for i, img := range images {
			out, err := p.pageSink.ExportPage(documentID, i+1, img)
			if err != nil {
				return nil, stageError{errors.StageRasterize, err}
			}
			log.Debug("Page image exported", "page", i+1, "file", out)
		}
	}

	// Step 3: OCR
	log.Debug("Step 3: Recognizing pages", "concurrency", p.config.Concurrency)
	pages, err := p.recognizePages(ctx, images, log)
	if err != nil {
		return nil, stageError{errors.StageRecognize, err}
	}
	return pages, nil
}

// recognizePages OCRs images and returns one Page per image in input order
func (p *DocumentProcessor) recognizePages(ctx context.Context, images []image.Image, log *logging.Logger) ([]Page, error) {
	pages := make([]Page, len(images))

	if p.config.Concurrency <= 1 {
		for i, img := range images {
			text, err := p.recognizer.Recognize(ctx, img)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", i+1, err)
			}
			pages[i] = Page{Page: i + 1, Text: text}
			log.Debug("Page recognized", "page", i+1, "chars", len(text))
		}
		return pages, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Concurrency)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			text, err := p.recognizer.Recognize(gctx, img)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			// each goroutine owns slot i, so order is kept without locking
			pages[i] = Page{Page: i + 1, Text: text}
			log.Debug("Page recognized", "page", i+1, "chars", len(text))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// stageError tags an error with the pipeline step it came from. The message
// is the wrapped error's, unchanged.
type stageError struct {
	stage errors.Stage
	err   error
}

func (e stageError) Error() string { return e.err.Error() }
func (e stageError) Unwrap() error { return e.err }

func stageOf(err error) errors.Stage {
	if se, ok := err.(stageError); ok {
		return se.stage
	}
	return ""
}
