/**
 * Configuration for the dococr command
 *
 * Loads configuration from environment variables. An optional .env file is
 * applied first by the command shell (godotenv), real environment wins.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults that form the external contract with the calling system.
const (
	DefaultDocumentDir   = "temp"
	DefaultDocumentExt   = ".pdf"
	DefaultOCRLanguage   = "fra"
	DefaultPageSegMode   = 3 // fully automatic page segmentation
	DefaultRenderDPI     = 200
	DefaultConcurrency   = 1
	DefaultLogLevel      = "info"
	DefaultDotEnvFile    = ".env"
	maxOCRConcurrency    = 32
	minRenderDPI         = 36
	maxRenderDPI         = 1200
	maxTesseractPageMode = 13
)

// Config holds command configuration
type Config struct {
	// Document location: <DocumentDir>/<id><DocumentExt>
	DocumentDir string
	DocumentExt string

	// Tesseract configuration
	OCRLanguage    string
	OCRPageSegMode int
	OCRConcurrency int

	// Rasterization
	RenderDPI     int
	MaxImageWidth int
	MaxPages      int

	// Optional page PNG export, disabled when empty
	PageImageDir string

	LogLevel string
}

// LoadDotEnv applies the given env files if they exist. Variables already set
// in the environment are left alone.
func LoadDotEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	p := &envParser{}
	cfg := &Config{
		DocumentDir:    getEnvOrDefault("DOCUMENT_DIR", DefaultDocumentDir),
		DocumentExt:    getEnvOrDefault("DOCUMENT_EXT", DefaultDocumentExt),
		OCRLanguage:    getEnvOrDefault("OCR_LANGUAGE", DefaultOCRLanguage),
		OCRPageSegMode: p.intOrDefault("OCR_PAGE_SEG_MODE", DefaultPageSegMode),
		OCRConcurrency: p.intOrDefault("OCR_CONCURRENCY", DefaultConcurrency),
		RenderDPI:      p.intOrDefault("RENDER_DPI", DefaultRenderDPI),
		MaxImageWidth:  p.intOrDefault("MAX_IMAGE_WIDTH", 0),
		MaxPages:       p.intOrDefault("MAX_PAGES", 0),
		PageImageDir:   os.Getenv("PAGE_IMAGE_DIR"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", DefaultLogLevel),
	}
	if p.err != nil {
		return nil, fmt.Errorf("configuration parsing failed: %w", p.err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.DocumentExt == "" {
		return fmt.Errorf("DOCUMENT_EXT is required")
	}

	if strings.Trim(c.OCRLanguage, "+ ") == "" {
		return fmt.Errorf("OCR_LANGUAGE is required")
	}

	if c.OCRPageSegMode < 0 || c.OCRPageSegMode > maxTesseractPageMode {
		return fmt.Errorf("OCR_PAGE_SEG_MODE must be between 0 and %d, got %d", maxTesseractPageMode, c.OCRPageSegMode)
	}

	if c.OCRConcurrency < 1 || c.OCRConcurrency > maxOCRConcurrency {
		return fmt.Errorf("OCR_CONCURRENCY must be between 1 and %d, got %d", maxOCRConcurrency, c.OCRConcurrency)
	}

	if c.RenderDPI < minRenderDPI || c.RenderDPI > maxRenderDPI {
		return fmt.Errorf("RENDER_DPI must be between %d and %d, got %d", minRenderDPI, maxRenderDPI, c.RenderDPI)
	}

	if c.MaxImageWidth < 0 {
		return fmt.Errorf("MAX_IMAGE_WIDTH must not be negative, got %d", c.MaxImageWidth)
	}

	if c.MaxPages < 0 {
		return fmt.Errorf("MAX_PAGES must not be negative, got %d", c.MaxPages)
	}

	return nil
}

// Languages splits OCRLanguage on "+" into the list gosseract expects
func (c *Config) Languages() []string {
	var langs []string
	for _, l := range strings.Split(c.OCRLanguage, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envParser keeps the first conversion error so LoadConfig can report it
type envParser struct {
	err error
}

func (p *envParser) intOrDefault(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("%s must be an integer, got %q", key, valueStr)
		}
		return defaultValue
	}

	return value
}
