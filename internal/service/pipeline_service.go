package service

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
	"github.com/Rishi01010010/Doc-Analyzer/pkg/utils"
)

const fallbackUploadName = "upload"

type TextExtractor interface {
	Extract(ctx context.Context, img image.Image) (string, error)
}

type TextCorrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

type PipelineService interface {
	Run(ctx context.Context, upload domain.UploadedImage) (*domain.PipelineResult, error)
}

type pipelineService struct {
	extractor   TextExtractor
	corrector   TextCorrector
	summarizer  Summarizer
	synthesizer Synthesizer
	proc        *utils.ImageProcessor
	cfg         *config.AppConfig
	log         *zap.Logger
}

func NewPipelineService(
	extractor TextExtractor,
	corrector TextCorrector,
	summarizer Summarizer,
	synthesizer Synthesizer,
	cfg *config.AppConfig,
	log *zap.Logger,
) PipelineService {
	return &pipelineService{
		extractor:   extractor,
		corrector:   corrector,
		summarizer:  summarizer,
		synthesizer: synthesizer,
		proc:        utils.NewImageProcessor(log),
		cfg:         cfg,
		log:         log,
	}
}

// Run validates the upload, stores it in the upload directory for the
// duration of the run and pushes it through extract, correct, summarize and
// synthesize. The stored upload is removed on every return path.
func (s *pipelineService) Run(ctx context.Context, upload domain.UploadedImage) (*domain.PipelineResult, error) {
	if upload.Filename == "" {
		return nil, domain.ErrNoFileSelected
	}
	if !utils.AllowedFile(upload.Filename, s.cfg.AllowedFormats) {
		return nil, domain.ErrInvalidFileType
	}

	start := time.Now()
	log := s.log.With(zap.String("filename", upload.Filename))

	path, err := s.persist(upload)
	if err != nil {
		return nil, domain.NewStageError(domain.StagePersist, err)
	}
	defer s.release(path)

	extracted, err := s.extract(ctx, path)
	if err != nil {
		return nil, domain.NewStageError(domain.StageExtract, err)
	}
	log.Debug("Stage finished", zap.String("stage", domain.StageExtract), zap.Int("length", len(extracted)))

	corrected, err := s.corrector.Correct(ctx, extracted)
	if err != nil {
		return nil, domain.NewStageError(domain.StageCorrect, err)
	}
	log.Debug("Stage finished", zap.String("stage", domain.StageCorrect), zap.Int("length", len(corrected)))

	summary, err := s.summarizer.Summarize(ctx, corrected)
	if err != nil {
		return nil, domain.NewStageError(domain.StageSummarize, err)
	}
	log.Debug("Stage finished", zap.String("stage", domain.StageSummarize), zap.Int("length", len(summary)))

	audioFilename, err := s.synthesizer.Synthesize(ctx, summary)
	if err != nil {
		return nil, domain.NewStageError(domain.StageSynthesize, err)
	}

	log.Info("Image processed",
		zap.String("audio_filename", audioFilename),
		zap.Duration("took", time.Since(start)))

	return &domain.PipelineResult{
		ExtractedText:  extracted,
		CorrectedText:  corrected,
		SummarizedText: summary,
		AudioFilename:  audioFilename,
	}, nil
}

// persist writes the upload under its sanitized name; a later upload with the
// same name overwrites it.
func (s *pipelineService) persist(upload domain.UploadedImage) (string, error) {
	name := utils.SanitizeFilename(upload.Filename)
	if name == "" {
		name = fallbackUploadName
	}

	path := filepath.Join(s.cfg.UploadDir, name)
	if err := os.WriteFile(path, upload.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *pipelineService) release(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to remove uploaded file",
			zap.String("path", path),
			zap.Error(err))
	}
}

func (s *pipelineService) extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	img, _, err := s.proc.Decode(data)
	if err != nil {
		return "", err
	}

	return s.extractor.Extract(ctx, img)
}
