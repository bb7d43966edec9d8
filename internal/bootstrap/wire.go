package bootstrap

import (
	"log/slog"

	"quillmic/internal/audio"
	"quillmic/internal/config"
	"quillmic/internal/notify"
	"quillmic/internal/ports"
	"quillmic/internal/scratch"
	"quillmic/internal/stt"
	"quillmic/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.SessionController
	Config     config.Config
}

// Build wires all backend dependencies for the current runtime. It performs
// no I/O: the audio device is opened per session and the model is loaded
// lazily on first use.
func Build(eventSink ports.EventSink, clipboard ports.Clipboard, log *slog.Logger) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	var notifier ports.Notifier = notify.Noop{}
	if cfg.Notify {
		notifier = notify.NewDesktop(log)
	}

	worker := usecase.NewWorker(
		audio.NewPortAudioDevice(),
		scratch.NewFactory(cfg.Scratch.Dir, cfg.Audio.SampleRate, cfg.Audio.Channels),
		stt.NewWhisper(cfg.Model.Path, cfg.Model.Language, log),
		eventSink,
		log,
		usecase.WorkerConfig{
			Device: ports.DeviceConfig{
				SampleRate:  cfg.Audio.SampleRate,
				Channels:    cfg.Audio.Channels,
				ChunkFrames: cfg.Audio.ChunkFrames,
			},
			MinSampleBytes: cfg.MinSampleBytes(),
		},
	)

	controller := usecase.NewSessionController(worker, clipboard, notifier, eventSink, log)

	return Services{Controller: controller, Config: cfg}, nil
}
