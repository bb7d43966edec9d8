// Package stt transcribes recorded audio with a local whisper.cpp model.
package stt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"

	"quillmic/internal/ports"
)

// newModel is swapped out in tests.
var newModel = whisper.New

// Whisper is a lazily-initialized whisper.cpp transcriber. The model is
// loaded at most once per process and reused by every later session.
type Whisper struct {
	modelPath string
	language  string
	log       *slog.Logger

	mu     sync.Mutex
	loaded bool
	model  whisper.Model

	// ggml inference is not thread safe; serialize Process calls.
	inferenceMu sync.Mutex
}

func NewWhisper(modelPath string, language string, log *slog.Logger) *Whisper {
	if language == "" {
		language = "auto"
	}
	return &Whisper{modelPath: modelPath, language: language, log: log}
}

// Load makes the model available, loading it on first use. A failed load
// leaves the model unloaded so a later session can retry.
func (w *Whisper) Load(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loaded {
		return nil
	}

	if _, err := os.Stat(w.modelPath); err != nil {
		return fmt.Errorf("%w: %s: %v", ports.ErrModelLoad, w.modelPath, err)
	}

	w.log.Debug("loading model", "path", w.modelPath)
	started := time.Now()

	model, err := newModel(w.modelPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrModelLoad, err)
	}

	w.model = model
	w.loaded = true
	w.log.Info("model loaded", "path", w.modelPath, "took", time.Since(started))
	return nil
}

// Transcribe runs inference over a finalized scratch WAV and returns the
// recognized text.
func (w *Whisper) Transcribe(ctx context.Context, wavPath string) (string, error) {
	w.mu.Lock()
	loaded, model := w.loaded, w.model
	w.mu.Unlock()
	if !loaded {
		return "", fmt.Errorf("%w: model not loaded", ports.ErrModelLoad)
	}

	samples, err := decodeWAV(wavPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	wctx, err := model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}
	if err := wctx.SetLanguage(w.language); err != nil {
		return "", fmt.Errorf("set language %q: %w", w.language, err)
	}
	wctx.SetTranslate(false)

	var text strings.Builder
	segmentCallback := func(segment whisper.Segment) {
		text.WriteString(segment.Text)
	}

	w.inferenceMu.Lock()
	err = wctx.Process(samples, nil, segmentCallback, nil)
	w.inferenceMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("whisper process: %w", err)
	}

	return strings.TrimSpace(text.String()), nil
}

// decodeWAV reads a 16-bit PCM WAV file into normalized float32 samples.
func decodeWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scratch wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode scratch wav: %w", err)
	}

	return pcmToFloat32(buf.Data), nil
}

func pcmToFloat32(data []int) []float32 {
	samples := make([]float32, len(data))
	for i, v := range data {
		samples[i] = float32(v) / 32768.0
	}
	return samples
}
