/**
 * PDF rasterization backed by MuPDF (go-fitz)
 *
 * Renders every page of a PDF into an in-memory bitmap, in page order.
 */

package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzConfig holds rasterizer configuration
type FitzConfig struct {
	DPI      int // 0 falls back to DefaultDPI
	MaxPages int // 0 renders every page
	MaxWidth int // 0 disables downscaling
}

// DefaultDPI matches the pdf2image default the calling system was built against
const DefaultDPI = 200

// FitzRasterizer renders PDF pages with MuPDF
type FitzRasterizer struct {
	config FitzConfig
}

// NewFitzRasterizer creates a rasterizer
func NewFitzRasterizer(cfg FitzConfig) *FitzRasterizer {
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	return &FitzRasterizer{config: cfg}
}

// Rasterize opens the PDF at path and returns one image per page in page order.
// A document without pages yields an empty, non-nil slice.
func (r *FitzRasterizer) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	count := PageLimit(doc.NumPage(), r.config.MaxPages)
	images := make([]image.Image, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, float64(r.config.DPI))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		images = append(images, ScaleToWidth(img, r.config.MaxWidth))
	}
	return images, nil
}

// PageLimit caps total by max; max <= 0 means no cap.
func PageLimit(total, max int) int {
	if total < 0 {
		return 0
	}
	if max > 0 && total > max {
		return max
	}
	return total
}
