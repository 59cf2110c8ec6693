package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrNotAnImage = errors.New("uploaded content is not an image")

type ImageProcessor struct {
	log *zap.Logger
}

func NewImageProcessor(log *zap.Logger) *ImageProcessor {
	return &ImageProcessor{log: log}
}

// Decode sniffs the payload and decodes it into a raster image.
func (p *ImageProcessor) Decode(data []byte) (image.Image, string, error) {
	if !filetype.IsImage(data) {
		return nil, "", ErrNotAnImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	p.log.Debug("Image decoded",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))

	return img, format, nil
}

// PrepareForOCR encodes img as PNG, first scaling it up to minWidth when it is
// narrower. A minWidth of zero leaves the geometry untouched.
func (p *ImageProcessor) PrepareForOCR(img image.Image, minWidth int) ([]byte, error) {
	src := img
	bounds := img.Bounds()

	if minWidth > 0 && bounds.Dx() > 0 && bounds.Dx() < minWidth {
		height := bounds.Dy() * minWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, minWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		src = dst

		p.log.Debug("Image upscaled for OCR",
			zap.Int("from_width", bounds.Dx()),
			zap.Int("to_width", minWidth))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}
