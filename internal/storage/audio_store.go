// Package storage owns the on-disk audio directory and its retention sweep.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
	"github.com/Rishi01010010/Doc-Analyzer/internal/repository"
	"github.com/Rishi01010010/Doc-Analyzer/pkg/utils"
)

const (
	AudioContentType = "audio/mp3"
	DefaultRetention = time.Hour
)

// Mirror receives a copy of every stored artifact and serves reads the local
// directory can no longer answer. Its objects follow the same retention.
type Mirror interface {
	UploadFile(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, repository.Object, error)
	ListFiles(ctx context.Context, prefix string) ([]repository.Object, error)
	DeleteFile(ctx context.Context, key string) error
}

type AudioStore struct {
	dir       string
	retention time.Duration
	mirror    Mirror
	now       func() time.Time
	log       *zap.Logger
}

// NewAudioStore returns a store rooted at dir. mirror may be nil.
func NewAudioStore(dir string, retention time.Duration, mirror Mirror, log *zap.Logger) *AudioStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &AudioStore{
		dir:       dir,
		retention: retention,
		mirror:    mirror,
		now:       time.Now,
		log:       log,
	}
}

func (s *AudioStore) Dir() string { return s.dir }

// Save writes data under filename. A failing mirror upload is logged and
// does not fail the save.
func (s *AudioStore) Save(ctx context.Context, filename string, data []byte) (*domain.AudioArtifact, error) {
	if !utils.IsPlainFilename(filename) {
		return nil, fmt.Errorf("invalid audio filename %q", filename)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat audio file: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.UploadFile(ctx, filename, bytes.NewReader(data), int64(len(data)), AudioContentType); err != nil {
			s.log.Warn("Failed to mirror audio file",
				zap.String("filename", filename),
				zap.Error(err))
		}
	}

	s.log.Info("Audio file stored",
		zap.String("filename", filename),
		zap.Int64("size", info.Size()))

	return &domain.AudioArtifact{
		Filename:   filename,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}

// Open returns the artifact's content and size. domain.ErrAudioNotFound is
// returned when neither the directory nor the mirror holds an unexpired copy.
func (s *AudioStore) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	if !utils.IsPlainFilename(filename) {
		return nil, 0, domain.ErrAudioNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, filename))
	if err == nil {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, err
		}
		if info.IsDir() {
			f.Close()
			return nil, 0, domain.ErrAudioNotFound
		}
		return f, info.Size(), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, 0, err
	}

	if s.mirror == nil {
		return nil, 0, domain.ErrAudioNotFound
	}

	body, obj, err := s.mirror.DownloadFile(ctx, filename)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, 0, domain.ErrAudioNotFound
		}
		return nil, 0, err
	}
	if obj.LastModified.Before(s.cutoff()) {
		body.Close()
		return nil, 0, domain.ErrAudioNotFound
	}
	return body, obj.Size, nil
}

// List returns the artifacts currently in the directory, oldest first.
func (s *AudioStore) List() ([]domain.AudioArtifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	artifacts := make([]domain.AudioArtifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, domain.AudioArtifact{
			Filename:   entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].ModifiedAt.Before(artifacts[j].ModifiedAt)
	})

	return artifacts, nil
}

func (s *AudioStore) cutoff() time.Time {
	return s.now().Add(-s.retention)
}

// Sweep deletes every artifact older than the retention window from the
// directory and the mirror, and returns how many distinct artifacts it
// removed. Failures are ignored; a file that vanished underneath a
// concurrent sweep is simply skipped.
func (s *AudioStore) Sweep(ctx context.Context) int {
	cutoff := s.cutoff()
	removed := make(map[string]struct{})

	s.sweepDir(cutoff, removed)
	if s.mirror != nil {
		s.sweepMirror(ctx, cutoff, removed)
	}

	if len(removed) > 0 {
		s.log.Info("Old audio files removed",
			zap.Int("removed", len(removed)),
			zap.Duration("retention", s.retention))
	}

	return len(removed)
}

func (s *AudioStore) sweepDir(cutoff time.Time, removed map[string]struct{}) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("Audio sweep could not list directory",
			zap.String("dir", s.dir),
			zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			continue
		}
		removed[entry.Name()] = struct{}{}
	}
}

func (s *AudioStore) sweepMirror(ctx context.Context, cutoff time.Time, removed map[string]struct{}) {
	objects, err := s.mirror.ListFiles(ctx, "")
	if err != nil {
		s.log.Warn("Audio sweep could not list mirror", zap.Error(err))
		return
	}

	for _, obj := range objects {
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := s.mirror.DeleteFile(ctx, obj.Key); err != nil {
			continue
		}
		removed[obj.Key] = struct{}{}
	}
}
