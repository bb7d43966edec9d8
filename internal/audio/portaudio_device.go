// Package audio captures microphone input through PortAudio.
package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"quillmic/internal/ports"
)

// PortAudioDevice opens capture streams on the default input device.
type PortAudioDevice struct{}

func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

func (d *PortAudioDevice) Open(cfg ports.DeviceConfig) (ports.Stream, error) {
	cfg = normalize(cfg)

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize: %v", ports.ErrDeviceUnavailable, err)
	}

	in := make([]int16, cfg.ChunkFrames*cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), cfg.ChunkFrames, in)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: open default stream: %v", ports.ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: start stream: %v", ports.ErrDeviceUnavailable, err)
	}

	return &paStream{stream: stream, in: in}, nil
}

func normalize(cfg ports.DeviceConfig) ports.DeviceConfig {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.ChunkFrames <= 0 {
		cfg.ChunkFrames = 1024
	}
	return cfg
}

type paStream struct {
	stream *portaudio.Stream
	in     []int16

	closeOnce sync.Once
	closeErr  error
}

func (s *paStream) ReadChunk() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		return nil, fmt.Errorf("read audio chunk: %w", err)
	}
	chunk := make([]int16, len(s.in))
	copy(chunk, s.in)
	return chunk, nil
}

func (s *paStream) Close() error {
	s.closeOnce.Do(func() {
		if err := s.stream.Stop(); err != nil {
			s.closeErr = err
		}
		if err := s.stream.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		portaudio.Terminate()
	})
	return s.closeErr
}
