// Package speech converts text to MP3 audio through hosted text-to-speech services.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
)

const (
	EngineGoogle = "google"
	EngineOpenAI = "openai"

	DefaultLanguage = "en"
)

var ErrNoText = errors.New("no text to speak")

// Engine turns text into MP3 bytes.
type Engine interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}

func NewEngine(cfg *config.TTSConfig, log *zap.Logger) (Engine, error) {
	switch cfg.Engine {
	case "", EngineGoogle:
		return NewGoogleEngine(cfg, log), nil
	case EngineOpenAI:
		return NewOpenAIEngine(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown TTS engine %q", cfg.Engine)
	}
}

// SplitText breaks text into chunks of at most limit runes, cutting on
// whitespace where possible.
func SplitText(text string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
		size    int
	)

	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		for n > limit {
			flush()
			runes := []rune(word)
			chunks = append(chunks, string(runes[:limit]))
			word = string(runes[limit:])
			n -= limit
		}
		if n == 0 {
			continue
		}
		if size > 0 && size+1+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(word)
		size += n
	}
	flush()

	return chunks
}
