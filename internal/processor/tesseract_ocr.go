/**
 * Tesseract OCR
 *
 * Local, offline OCR through gosseract. Text is returned exactly as the
 * engine produced it, trailing newlines included.
 */

package processor

import (
	"context"
	"fmt"
	"image"

	"github.com/adverant/nexus/dococr/internal/raster"
	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR handles OCR using Tesseract
type TesseractOCR struct {
	languages   []string
	pageSegMode gosseract.PageSegMode
}

// TesseractConfig holds Tesseract configuration
type TesseractConfig struct {
	Languages   []string
	PageSegMode int
}

// NewTesseractOCR creates a new Tesseract OCR instance
func NewTesseractOCR(cfg *TesseractConfig) (*TesseractOCR, error) {
	if cfg == nil || len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("at least one OCR language is required")
	}

	return &TesseractOCR{
		languages:   append([]string(nil), cfg.Languages...),
		pageSegMode: gosseract.PageSegMode(cfg.PageSegMode),
	}, nil
}

// Recognize performs OCR on one page image
func (t *TesseractOCR) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := raster.EncodePNG(img)
	if err != nil {
		return "", err
	}

	// gosseract clients are not safe for concurrent use, one per call
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(t.pageSegMode); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}
	return text, nil
}
