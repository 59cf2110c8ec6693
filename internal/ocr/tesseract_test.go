package ocr

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func textImage(text string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString(text)
	return img
}

func TestTesseractExtractor_Extract(t *testing.T) {
	ensureTesseractAvailable(t)

	e := NewTesseractExtractor(&config.OCRConfig{Languages: []string{"eng"}}, zap.NewNop())

	text, err := e.Extract(context.Background(), textImage("Helo wrld"))
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(text), "helo")
}

func TestTesseractExtractor_BlankImage(t *testing.T) {
	ensureTesseractAvailable(t)

	e := NewTesseractExtractor(&config.OCRConfig{Languages: []string{"eng"}}, zap.NewNop())

	blank := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(blank, blank.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	text, err := e.Extract(context.Background(), blank)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}

func TestTesseractExtractor_CanceledContext(t *testing.T) {
	e := NewTesseractExtractor(&config.OCRConfig{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, textImage("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeClient struct {
	langs  []string
	image  []byte
	text   string
	err    error
	closed bool
}

func (c *fakeClient) SetLanguage(langs ...string) error {
	c.langs = langs
	return nil
}

func (c *fakeClient) SetImageFromBytes(data []byte) error {
	c.image = data
	return nil
}

func (c *fakeClient) Text() (string, error) { return c.text, c.err }

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

func TestTesseractExtractor_ReturnsEngineOutputUnchanged(t *testing.T) {
	fake := &fakeClient{text: "  Helo wrld\n\n"}
	e := NewTesseractExtractor(&config.OCRConfig{Languages: []string{"eng", "deu"}}, zap.NewNop())
	e.clientFactory = func() client { return fake }

	text, err := e.Extract(context.Background(), textImage("Helo wrld"))
	require.NoError(t, err)

	assert.Equal(t, "  Helo wrld\n\n", text)
	assert.Equal(t, []string{"eng", "deu"}, fake.langs)
	assert.NotEmpty(t, fake.image)
	assert.True(t, fake.closed)
}

func TestTesseractExtractor_EngineError(t *testing.T) {
	fake := &fakeClient{err: assert.AnError}
	e := NewTesseractExtractor(&config.OCRConfig{}, zap.NewNop())
	e.clientFactory = func() client { return fake }

	_, err := e.Extract(context.Background(), textImage("x"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, fake.langs)
	assert.True(t, fake.closed)
}
