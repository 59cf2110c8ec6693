package speech

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

const (
	defaultGoogleAPIBase = "https://translate.google.com"
	googleMaxChunk       = 100
	googleUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko)"
)

// GoogleEngine speaks through the Google Translate TTS endpoint. Long text is
// sent in chunks and the returned MP3 segments are concatenated.
type GoogleEngine struct {
	client   *resty.Client
	language string
	log      *zap.Logger
}

func NewGoogleEngine(cfg *config.TTSConfig, log *zap.Logger) *GoogleEngine {
	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = defaultGoogleAPIBase
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	return &GoogleEngine{
		client:   resty.New().SetBaseURL(base).SetHeader("User-Agent", googleUserAgent),
		language: language,
		log:      log,
	}
}

func (e *GoogleEngine) Name() string { return EngineGoogle }

func (e *GoogleEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	chunks := SplitText(text, googleMaxChunk)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		resp, err := e.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"ie":      "UTF-8",
				"client":  "tw-ob",
				"tl":      e.language,
				"q":       chunk,
				"total":   strconv.Itoa(len(chunks)),
				"idx":     strconv.Itoa(i),
				"textlen": strconv.Itoa(utf8.RuneCountInString(chunk)),
			}).
			Get("/translate_tts")
		if err != nil {
			return nil, fmt.Errorf("TTS request failed: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("Google TTS error (status %d): %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
		}
		audio.Write(resp.Body())
	}

	e.log.Debug("Speech synthesized",
		zap.String("engine", EngineGoogle),
		zap.String("language", e.language),
		zap.Int("chunks", len(chunks)),
		zap.Int("size_bytes", audio.Len()))

	return audio.Bytes(), nil
}
