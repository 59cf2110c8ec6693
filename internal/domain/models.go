package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoFile          = errors.New("No file uploaded")
	ErrNoFileSelected  = errors.New("No file selected")
	ErrInvalidFileType = errors.New("Invalid file type")
	ErrFileTooLarge    = errors.New("File too large")
	ErrAudioNotFound   = errors.New("Audio file not found")
)

// Pipeline stage names, used in logs and StageError.
const (
	StagePersist    = "persist"
	StageExtract    = "extract"
	StageCorrect    = "correct"
	StageSummarize  = "summarize"
	StageSynthesize = "synthesize"
)

// UploadedImage is the transient image handed in by a single request.
type UploadedImage struct {
	Filename string
	Data     []byte
}

type PipelineResult struct {
	ExtractedText  string `json:"extracted_text"`
	CorrectedText  string `json:"corrected_text"`
	SummarizedText string `json:"summarized_text"`
	AudioFilename  string `json:"audio_filename"`
}

type AudioArtifact struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// StageError reports which pipeline stage aborted a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
