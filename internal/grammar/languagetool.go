// Package grammar corrects spelling and grammar through a LanguageTool server.
package grammar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

const DefaultLanguage = "en-US"

type Replacement struct {
	Value string `json:"value"`
}

type Rule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Match is one issue reported by LanguageTool. Offset and Length count
// UTF-16 code units.
type Match struct {
	Message      string        `json:"message"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []Replacement `json:"replacements"`
	Rule         Rule          `json:"rule"`
}

type checkResponse struct {
	Matches []Match `json:"matches"`
}

type LanguageToolCorrector struct {
	client   *resty.Client
	language string
	log      *zap.Logger
}

func NewLanguageToolCorrector(cfg *config.GrammarConfig, log *zap.Logger) *LanguageToolCorrector {
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	return &LanguageToolCorrector{
		client:   resty.New().SetBaseURL(strings.TrimRight(cfg.APIURL, "/")),
		language: language,
		log:      log,
	}
}

// Correct applies the configured locale's rules to text.
func (c *LanguageToolCorrector) Correct(ctx context.Context, text string) (string, error) {
	return c.CorrectIn(ctx, text, c.language)
}

func (c *LanguageToolCorrector) CorrectIn(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	matches, err := c.Check(ctx, text, language)
	if err != nil {
		return "", err
	}

	corrected := ApplyMatches(text, matches)

	c.log.Info("Text corrected",
		zap.String("language", language),
		zap.Int("matches", len(matches)),
		zap.Int("length_before", len(text)),
		zap.Int("length_after", len(corrected)))

	return corrected, nil
}

// Check asks the server for the issues it finds in text.
func (c *LanguageToolCorrector) Check(ctx context.Context, text, language string) ([]Match, error) {
	var out checkResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"text":     text,
			"language": language,
		}).
		SetResult(&out).
		Post("/v2/check")
	if err != nil {
		return nil, fmt.Errorf("LanguageTool request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("LanguageTool error (status %d): %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return out.Matches, nil
}

// ApplyMatches rewrites text with the first replacement of every match, in
// order. A match whose span no longer holds its original text (because an
// earlier replacement overlapped it) is skipped.
func ApplyMatches(text string, matches []Match) string {
	orig := utf16.Encode([]rune(text))
	units := slices.Clone(orig)
	shift := 0

	for _, m := range matches {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(orig) {
			continue
		}

		want := orig[m.Offset : m.Offset+m.Length]
		from := shift + m.Offset
		to := from + m.Length
		if from < 0 || to > len(units) || !slices.Equal(units[from:to], want) {
			continue
		}

		repl := utf16.Encode([]rune(m.Replacements[0].Value))
		next := make([]uint16, 0, len(units)-m.Length+len(repl))
		next = append(next, units[:from]...)
		next = append(next, repl...)
		next = append(next, units[to:]...)
		units = next
		shift += len(repl) - m.Length
	}

	return string(utf16.Decode(units))
}
