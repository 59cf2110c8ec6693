// Package ocr turns decoded raster images into text with the Tesseract engine.
package ocr

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/pkg/utils"
)

// client is the subset of *gosseract.Client the extractor drives.
type client interface {
	SetLanguage(langs ...string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	Close() error
}

type TesseractExtractor struct {
	clientFactory func() client
	proc          *utils.ImageProcessor
	languages     []string
	minWidth      int
	log           *zap.Logger
}

func NewTesseractExtractor(cfg *config.OCRConfig, log *zap.Logger) *TesseractExtractor {
	return &TesseractExtractor{
		clientFactory: func() client { return gosseract.NewClient() },
		proc:          utils.NewImageProcessor(log),
		languages:     cfg.Languages,
		minWidth:      cfg.UpscaleMinWidth,
		log:           log,
	}
}

// Extract runs OCR over img and returns the recognized text exactly as the
// engine produced it. The result may be empty when the engine finds nothing.
// Each call uses its own client.
func (e *TesseractExtractor) Extract(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := e.proc.PrepareForOCR(img, e.minWidth)
	if err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	start := time.Now()
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	e.log.Info("Text extracted",
		zap.Strings("languages", e.languages),
		zap.Int("length", len(text)),
		zap.Duration("took", time.Since(start)))

	return text, nil
}
