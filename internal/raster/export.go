package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PageExporter writes rendered pages as PNG files laid out as
// <Dir>/<documentID>/page-<n>.png.
type PageExporter struct {
	Dir string
}

// NewPageExporter returns nil when dir is empty so callers can treat export as optional
func NewPageExporter(dir string) *PageExporter {
	if dir == "" {
		return nil
	}
	return &PageExporter{Dir: dir}
}

// PagePath returns the file a page is exported to
func (e *PageExporter) PagePath(documentID string, pageNumber int) string {
	return filepath.Join(e.Dir, documentID, fmt.Sprintf("page-%d.png", pageNumber))
}

// ExportPage encodes img as PNG and writes it for the 1-based pageNumber
func (e *PageExporter) ExportPage(documentID string, pageNumber int, img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}

	path := e.PagePath(documentID, pageNumber)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create page directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write page %d: %w", pageNumber, err)
	}
	return path, nil
}

// EncodePNG encodes img to PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
