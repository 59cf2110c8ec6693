// Package summarizer produces plain-language summaries with a hosted Gemini model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

const (
	DefaultModel = "gemini-1.5-flash"

	Temperature      float32 = 0.5
	MaxOutputTokens  int32   = 200
	ResponseMIMEType         = "text/plain"

	summaryPreamble = "Refer and analyze the given text and draw a simple summary out of this text in simpler words:\n\n"
)

var ErrMissingAPIKey = errors.New("Gemini API key is not configured")

type GeminiSummarizer struct {
	client  *genai.Client
	initErr error
	model   string
	log     *zap.Logger
}

// NewGeminiSummarizer never fails: client setup errors, including a missing
// API key, are returned from Summarize instead.
func NewGeminiSummarizer(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) *GeminiSummarizer {
	s := &GeminiSummarizer{
		model: cfg.Model,
		log:   log,
	}
	if s.model == "" {
		s.model = DefaultModel
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		s.initErr = ErrMissingAPIKey
		log.Warn("Gemini API key missing, summaries will fail")
		return s
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/"); base != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		s.initErr = err
		log.Error("Failed to initialize Gemini client", zap.Error(err))
		return s
	}
	s.client = client

	return s
}

func Prompt(text string) string {
	return summaryPreamble + text
}

// Summarize sends one single-turn request and returns the model's text as is.
// Output longer than MaxOutputTokens is whatever the model chose to return.
func (s *GeminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.initErr != nil {
		return "", fmt.Errorf("failed to initialize Gemini client: %w", s.initErr)
	}

	temperature := Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  MaxOutputTokens,
		ResponseMIMEType: ResponseMIMEType,
	}

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(Prompt(text)), genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("Gemini API request failed (status=%d): %s", apiErr.Code, strings.TrimSpace(apiErr.Message))
		}
		return "", fmt.Errorf("Gemini API request failed: %w", err)
	}

	summary := responseText(resp)

	s.log.Info("Text summarized",
		zap.String("model", s.model),
		zap.Int("input_length", len(text)),
		zap.Int("summary_length", len(summary)),
		zap.Duration("took", time.Since(start)))

	return summary, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
