package speech

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

const defaultOpenAIAPIBase = "https://api.openai.com"

type speechRequest struct {
	Model  string `json:"model"`
	Input  string `json:"input"`
	Voice  string `json:"voice"`
	Format string `json:"response_format,omitempty"`
}

// OpenAIEngine talks to any OpenAI-compatible /v1/audio/speech endpoint
// (OpenAI, Kokoro, LocalAI). The request has no language field: the voice
// decides the spoken language, and the stock voices speak English.
type OpenAIEngine struct {
	client *resty.Client
	model  string
	voice  string
	log    *zap.Logger
}

func NewOpenAIEngine(cfg *config.TTSConfig, log *zap.Logger) *OpenAIEngine {
	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = defaultOpenAIAPIBase
	}

	if lang := strings.ToLower(strings.TrimSpace(cfg.Language)); lang != "" && lang != DefaultLanguage {
		log.Warn("TTS language is ignored by the openai engine, pick a matching voice instead",
			zap.String("language", cfg.Language),
			zap.String("voice", cfg.Voice))
	}

	client := resty.New().SetBaseURL(base)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &OpenAIEngine{
		client: client,
		model:  cfg.Model,
		voice:  cfg.Voice,
		log:    log,
	}
}

func (e *OpenAIEngine) Name() string { return EngineOpenAI }

func (e *OpenAIEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(speechRequest{
			Model:  e.model,
			Input:  text,
			Voice:  e.voice,
			Format: "mp3",
		}).
		Post("/v1/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("TTS error (status %d): %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	e.log.Debug("Speech synthesized",
		zap.String("engine", EngineOpenAI),
		zap.String("voice", e.voice),
		zap.Int("size_bytes", len(resp.Body())))

	return resp.Body(), nil
}
