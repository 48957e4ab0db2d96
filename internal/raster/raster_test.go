package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newTestImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestPageLimit(t *testing.T) {
	tests := []struct {
		total, max, want int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{5, 10, 5},
		{12, 10, 10},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		if got := PageLimit(tt.total, tt.max); got != tt.want {
			t.Errorf("PageLimit(%d, %d) = %d, want %d", tt.total, tt.max, got, tt.want)
		}
	}
}

func TestScaleToWidth(t *testing.T) {
	src := newTestImage(400, 200)

	tests := []struct {
		name          string
		maxWidth      int
		wantW, wantH  int
		wantUnchanged bool
	}{
		{"disabled", 0, 400, 200, true},
		{"already narrow", 500, 400, 200, true},
		{"exact", 400, 400, 200, true},
		{"downscale", 100, 100, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleToWidth(src, tt.maxWidth)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if unchanged := got == image.Image(src); unchanged != tt.wantUnchanged {
				t.Errorf("unchanged = %v, want %v", unchanged, tt.wantUnchanged)
			}
		})
	}
}

func TestScaleToWidthKeepsOnePixelHeight(t *testing.T) {
	got := ScaleToWidth(newTestImage(1000, 1), 10)
	if b := got.Bounds(); b.Dx() != 10 || b.Dy() != 1 {
		t.Errorf("size = %dx%d, want 10x1", b.Dx(), b.Dy())
	}
}

func TestNewPageExporterDisabled(t *testing.T) {
	if e := NewPageExporter(""); e != nil {
		t.Errorf("expected nil exporter for empty dir, got %+v", e)
	}
}

func TestExportPage(t *testing.T) {
	dir := t.TempDir()
	e := NewPageExporter(dir)

	path, err := e.ExportPage("abc123", 2, newTestImage(20, 10))
	if err != nil {
		t.Fatalf("ExportPage() error = %v", err)
	}
	if want := filepath.Join(dir, "abc123", "page-2.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("decoded size = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}

func TestFitzRasterizerMissingFile(t *testing.T) {
	r := NewFitzRasterizer(FitzConfig{})
	if r.config.DPI != DefaultDPI {
		t.Errorf("DPI = %d, want %d", r.config.DPI, DefaultDPI)
	}

	_, err := r.Rasterize(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}
