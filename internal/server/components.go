package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/internal/grammar"
	"github.com/Rishi01010010/Doc-Analyzer/internal/ocr"
	"github.com/Rishi01010010/Doc-Analyzer/internal/repository"
	"github.com/Rishi01010010/Doc-Analyzer/internal/service"
	"github.com/Rishi01010010/Doc-Analyzer/internal/speech"
	"github.com/Rishi01010010/Doc-Analyzer/internal/storage"
	"github.com/Rishi01010010/Doc-Analyzer/internal/summarizer"
)

// Components is the wired processing stack shared by the HTTP server and
// the command line.
type Components struct {
	Pipeline service.PipelineService
	Audio    *storage.AudioStore
}

// NewAudioStore builds the audio store, attaching the S3 mirror when enabled.
func NewAudioStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage.AudioStore, error) {
	var mirror storage.Mirror
	if cfg.S3.Enabled {
		s3Repo, err := repository.NewS3Repository(ctx, &cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 repository: %w", err)
		}
		mirror = s3Repo
	}
	return storage.NewAudioStore(cfg.App.AudioDir, cfg.App.AudioRetention, mirror, log), nil
}

func NewComponents(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Components, error) {
	audio, err := NewAudioStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	engine, err := speech.NewEngine(&cfg.TTS, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech engine: %w", err)
	}

	pipeline := service.NewPipelineService(
		ocr.NewTesseractExtractor(&cfg.OCR, log),
		grammar.NewLanguageToolCorrector(&cfg.Grammar, log),
		summarizer.NewGeminiSummarizer(ctx, &cfg.Gemini, log),
		service.NewSpeechService(engine, audio, log),
		&cfg.App,
		log,
	)

	log.Info("Components created",
		zap.String("tts_engine", engine.Name()),
		zap.Bool("s3_mirror", cfg.S3.Enabled))

	return &Components{
		Pipeline: pipeline,
		Audio:    audio,
	}, nil
}
