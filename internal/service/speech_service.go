package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
)

type SpeechEngine interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}

type AudioStore interface {
	Save(ctx context.Context, filename string, data []byte) (*domain.AudioArtifact, error)
	Sweep(ctx context.Context) int
}

type SpeechService struct {
	engine SpeechEngine
	store  AudioStore
	log    *zap.Logger
}

func NewSpeechService(engine SpeechEngine, store AudioStore, log *zap.Logger) *SpeechService {
	return &SpeechService{
		engine: engine,
		store:  store,
		log:    log,
	}
}

func NewAudioFilename() string {
	return "audio_" + uuid.New().String() + ".mp3"
}

// Synthesize speaks text into a new artifact, sweeps expired artifacts and
// returns the new filename.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (string, error) {
	filename := NewAudioFilename()

	start := time.Now()
	audio, err := s.engine.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%s synthesis: %w", s.engine.Name(), err)
	}

	if _, err := s.store.Save(ctx, filename, audio); err != nil {
		return "", err
	}

	s.store.Sweep(ctx)

	s.log.Info("Speech synthesized",
		zap.String("engine", s.engine.Name()),
		zap.String("filename", filename),
		zap.Int("size", len(audio)),
		zap.Duration("took", time.Since(start)))

	return filename, nil
}
