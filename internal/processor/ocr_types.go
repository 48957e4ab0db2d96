/**
 * OCR Types - collaborators and data shared by the processing pipeline
 */

package processor

import (
	"context"
	"image"
)

// Page is the OCR output for one rasterized page. Page is 1-based.
type Page struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Rasterizer renders a PDF file into page images, in page order
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]image.Image, error)
}

// Recognizer extracts text from a single page image. An empty string is a
// valid result for a page without text.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// PageSink receives each rendered page before recognition. Optional.
type PageSink interface {
	ExportPage(documentID string, pageNumber int, img image.Image) (string, error)
}
