package service

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
	"github.com/Rishi01010010/Doc-Analyzer/internal/storage"
)

var audioFilenamePattern = regexp.MustCompile(`^audio_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.mp3$`)

func TestNewAudioFilename(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := NewAudioFilename()
		assert.Regexp(t, audioFilenamePattern, name)
		assert.False(t, seen[name], "duplicate filename %s", name)
		seen[name] = true
	}
}

func TestSpeechService_Synthesize(t *testing.T) {
	engine := new(MockEngine)
	store := new(MockAudioStore)
	svc := NewSpeechService(engine, store, zap.NewNop())

	engine.On("Synthesize", mock.Anything, "A greeting.").Return([]byte("mp3"), nil)
	store.On("Save", mock.Anything, mock.MatchedBy(audioFilenamePattern.MatchString), []byte("mp3")).
		Return(&domain.AudioArtifact{}, nil)
	store.On("Sweep", mock.Anything).Return(0)

	name, err := svc.Synthesize(context.Background(), "A greeting.")
	require.NoError(t, err)
	assert.Regexp(t, audioFilenamePattern, name)

	engine.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSpeechService_EngineError(t *testing.T) {
	engine := new(MockEngine)
	store := new(MockAudioStore)
	svc := NewSpeechService(engine, store, zap.NewNop())

	engine.On("Synthesize", mock.Anything, "x").Return(nil, assert.AnError)

	_, err := svc.Synthesize(context.Background(), "x")
	assert.ErrorIs(t, err, assert.AnError)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Sweep", mock.Anything)
}

func TestSpeechService_SaveError(t *testing.T) {
	engine := new(MockEngine)
	store := new(MockAudioStore)
	svc := NewSpeechService(engine, store, zap.NewNop())

	engine.On("Synthesize", mock.Anything, "x").Return([]byte("mp3"), nil)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.Synthesize(context.Background(), "x")
	assert.ErrorIs(t, err, assert.AnError)
	store.AssertNotCalled(t, "Sweep", mock.Anything)
}

func TestSpeechService_WithAudioStore(t *testing.T) {
	dir := t.TempDir()
	old := dir + "/audio_old.mp3"
	require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	engine := new(MockEngine)
	engine.On("Synthesize", mock.Anything, mock.Anything).Return([]byte("mp3"), nil)
	svc := NewSpeechService(engine, storage.NewAudioStore(dir, time.Hour, nil, zap.NewNop()), zap.NewNop())

	first, err := svc.Synthesize(context.Background(), "same text")
	require.NoError(t, err)
	second, err := svc.Synthesize(context.Background(), "same text")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, dir+"/"+first)
	assert.FileExists(t, dir+"/"+second)
	assert.NoFileExists(t, old)
}
