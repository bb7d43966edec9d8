// Package scratch provides the temporary WAV storage backing one recording
// session. A sink lives in its own temp directory and is removed wholesale
// on release.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"quillmic/internal/ports"
)

// Factory creates WAV sinks under a base directory.
type Factory struct {
	baseDir    string
	sampleRate int
	channels   int
}

func NewFactory(baseDir string, sampleRate int, channels int) *Factory {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Factory{baseDir: baseDir, sampleRate: sampleRate, channels: channels}
}

func (f *Factory) Create() (ports.ScratchSink, error) {
	dir, err := os.MkdirTemp(f.baseDir, "quillmic-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("rec-%s.wav", uuid.NewString()))
	file, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("create scratch file: %w", err)
	}

	return &wavSink{
		dir:     dir,
		path:    path,
		file:    file,
		encoder: wav.NewEncoder(file, f.sampleRate, 16, f.channels, 1),
		format:  &audio.Format{NumChannels: f.channels, SampleRate: f.sampleRate},
	}, nil
}

type wavSink struct {
	dir     string
	path    string
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format

	bytes     int64
	finalized bool

	releaseOnce sync.Once
}

func (s *wavSink) Append(samples []int16) error {
	if s.finalized {
		return fmt.Errorf("append to finalized sink %s", s.path)
	}
	if len(samples) == 0 {
		return nil
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}

	buf := &audio.IntBuffer{Format: s.format, Data: data, SourceBitDepth: 16}
	if err := s.encoder.Write(buf); err != nil {
		return fmt.Errorf("write scratch samples: %w", err)
	}

	s.bytes += int64(len(samples) * 2)
	return nil
}

func (s *wavSink) Finalize() error {
	if s.finalized {
		return nil
	}
	s.finalized = true

	if err := s.encoder.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("finalize scratch wav: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close scratch file: %w", err)
	}
	return nil
}

func (s *wavSink) Size() int64 { return s.bytes }

func (s *wavSink) Path() string { return s.path }

func (s *wavSink) Release() {
	s.releaseOnce.Do(func() {
		if !s.finalized {
			s.encoder.Close()
			s.file.Close()
			s.finalized = true
		}
		os.RemoveAll(s.dir)
	})
}
