package service

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, img image.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

type MockCorrector struct {
	mock.Mock
}

func (m *MockCorrector) Correct(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockEngine) Name() string {
	return "mock"
}

type MockAudioStore struct {
	mock.Mock
}

func (m *MockAudioStore) Save(ctx context.Context, filename string, data []byte) (*domain.AudioArtifact, error) {
	args := m.Called(ctx, filename, data)
	artifact, _ := args.Get(0).(*domain.AudioArtifact)
	return artifact, args.Error(1)
}

func (m *MockAudioStore) Sweep(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}
