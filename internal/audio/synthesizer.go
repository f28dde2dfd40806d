// Package audio renders listen-and-repeat sentences to MP3 files and serves
// them from a directory cache.
package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/speaking-practice/backend/internal/catalog"
)

// URLPrefix is where the HTTP layer mounts the audio directory.
const URLPrefix = "/audio/"

// flightTimeout bounds a shared synthesis call, which no longer follows any
// one caller's context.
const flightTimeout = 30 * time.Second

// Backend turns text into MP3 bytes.
type Backend interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Synthesizer caches one file per catalog index. A file that already exists
// is never regenerated, and concurrent requests for the same index share a
// single backend call.
type Synthesizer struct {
	dir     string
	module  *catalog.Module
	backend Backend
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	ready map[int]string
}

func NewSynthesizer(dir string, module *catalog.Module, backend Backend, logger *slog.Logger) (*Synthesizer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		dir:     dir,
		module:  module,
		backend: backend,
		logger:  logger,
		ready:   make(map[int]string),
	}, nil
}

// Dir is the directory the files are written to.
func (s *Synthesizer) Dir() string {
	return s.dir
}

func filename(index int) string {
	return "sentence_" + strconv.Itoa(index) + ".mp3"
}

// Synthesize returns the public URL of the audio for the item at index,
// generating it on first use.
func (s *Synthesizer) Synthesize(ctx context.Context, index int) (string, error) {
	item, err := s.module.Item(index)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	url, ok := s.ready[index]
	s.mu.RUnlock()
	if ok {
		return url, nil
	}

	// A cancelled caller stops waiting; the flight keeps going for the others.
	ch := s.group.DoChan(strconv.Itoa(index), func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		name := filename(index)
		path := filepath.Join(s.dir, name)

		if _, err := os.Stat(path); err != nil {
			audio, err := s.backend.Synthesize(flightCtx, item.Text)
			if err != nil {
				return nil, fmt.Errorf("synthesize sentence %d: %w", index, err)
			}
			if err := writeAtomic(path, audio); err != nil {
				return nil, err
			}
			s.logger.Info("audio generated", "index", index, "bytes", len(audio))
		}

		url := URLPrefix + name
		s.mu.Lock()
		s.ready[index] = url
		s.mu.Unlock()
		return url, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// writeAtomic writes through a temp file so readers never see a partial MP3.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tts-*")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename audio file: %w", err)
	}
	return nil
}
