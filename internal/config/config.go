package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config stores runtime configuration for the app.
type Config struct {
	Audio   AudioConfig
	Model   ModelConfig
	Scratch ScratchConfig
	Notify  bool
	Debug   bool
}

type AudioConfig struct {
	SampleRate  int
	Channels    int
	ChunkFrames int
}

type ModelConfig struct {
	Path     string
	Language string
}

type ScratchConfig struct {
	Dir string
}

// Load resolves configuration from environment variables and sensible defaults.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.New("could not determine home directory")
	}

	defaultModel := filepath.Join(home, ".quillmic", "models", "ggml-base.en.bin")

	cfg := Config{
		Audio: AudioConfig{
			SampleRate:  envOrDefaultInt("QUILLMIC_SAMPLE_RATE", 16000),
			Channels:    envOrDefaultInt("QUILLMIC_CHANNELS", 1),
			ChunkFrames: envOrDefaultInt("QUILLMIC_CHUNK_FRAMES", 1024),
		},
		Model: ModelConfig{
			Path:     envOrDefault("QUILLMIC_MODEL_PATH", defaultModel),
			Language: envOrDefault("QUILLMIC_LANGUAGE", "auto"),
		},
		Scratch: ScratchConfig{
			Dir: envOrDefault("QUILLMIC_SCRATCH_DIR", os.TempDir()),
		},
		Notify: envOrDefaultBool("QUILLMIC_NOTIFY", false),
		Debug:  envOrDefaultBool("QUILLMIC_DEBUG", false),
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.ChunkFrames < 64 {
		cfg.Audio.ChunkFrames = 1024
	}

	return cfg, nil
}

// MinSampleBytes is the "sample too short" threshold: fewer PCM bytes than a
// single chunk means the recording was stopped before one full read.
func (c Config) MinSampleBytes() int64 {
	return int64(c.Audio.ChunkFrames * c.Audio.Channels * 2)
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
