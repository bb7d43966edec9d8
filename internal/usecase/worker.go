package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"quillmic/internal/domain"
	"quillmic/internal/ports"
)

// WorkerConfig controls capture behavior.
type WorkerConfig struct {
	Device ports.DeviceConfig
	// MinSampleBytes is the smallest capture that is worth transcribing;
	// anything shorter resolves to "no result".
	MinSampleBytes int64
}

// Worker owns the mechanics of one recording session: capture to scratch
// storage and the transcription call. It never touches UI state beyond
// error events.
type Worker struct {
	device ports.Device
	sinks  ports.SinkFactory
	stt    ports.Transcriber
	events ports.EventSink
	log    *slog.Logger
	cfg    WorkerConfig
}

func NewWorker(
	device ports.Device,
	sinks ports.SinkFactory,
	stt ports.Transcriber,
	events ports.EventSink,
	log *slog.Logger,
	cfg WorkerConfig,
) *Worker {
	if cfg.MinSampleBytes <= 0 {
		cfg.MinSampleBytes = int64(cfg.Device.ChunkFrames * 2)
	}
	return &Worker{
		device: device,
		sinks:  sinks,
		stt:    stt,
		events: events,
		log:    log,
		cfg:    cfg,
	}
}

// Begin ensures the model is loaded, opens the input device and launches
// the capture task. It returns once the task is running; capture continues
// until End is called.
func (w *Worker) Begin(ctx context.Context) (*recordingSession, error) {
	if err := w.stt.Load(ctx); err != nil {
		return nil, err
	}

	stream, err := w.device.Open(w.cfg.Device)
	if err != nil {
		return nil, err
	}

	sink, err := w.sinks.Create()
	if err != nil {
		stream.Close()
		return nil, fmt.Errorf("create scratch sink: %w", err)
	}

	session := newRecordingSession(stream, sink)
	go w.capture(session)
	return session, nil
}

// capture is the background task of one session: it appends fixed-size
// chunks to the scratch sink until stopped, then closes the stream and
// finalizes the sink. It is the sink's only writer.
func (w *Worker) capture(s *recordingSession) {
	defer close(s.done)

	w.log.Debug("recording")

loop:
	for {
		select {
		case <-s.stop:
			break loop
		default:
		}

		chunk, err := s.stream.ReadChunk()
		if err != nil {
			w.log.Error("audio capture error", "error", err)
			w.events.SessionError(domain.ErrorCodeAudio, err.Error())
			break loop
		}
		if err := s.sink.Append(chunk); err != nil {
			w.log.Error("scratch write error", "error", err)
			w.events.SessionError(domain.ErrorCodeAudio, err.Error())
			break loop
		}
	}

	if err := s.stream.Close(); err != nil {
		w.log.Debug("close audio stream", "error", err)
	}
	if err := s.sink.Finalize(); err != nil {
		w.log.Error("finalize scratch sink", "error", err)
		s.finalizeErr = err
	}
}

// End signals the capture task to stop, waits for it to fully terminate and
// runs transcription over the captured audio. It returns the transcript, or
// "" with a reason when there is no result. The scratch sink is released on
// every path.
func (w *Worker) End(ctx context.Context, s *recordingSession) (string, domain.SessionStateReason) {
	close(s.stop)
	<-s.done
	defer s.sink.Release()

	if s.finalizeErr != nil {
		return "", domain.SessionReasonNoTranscript
	}

	if size := s.sink.Size(); size < w.cfg.MinSampleBytes {
		w.log.Info("sample too short", "bytes", size, "min", w.cfg.MinSampleBytes)
		return "", domain.SessionReasonSampleTooShort
	}

	w.log.Debug("transcribing", "path", s.sink.Path())
	text, err := w.stt.Transcribe(ctx, s.sink.Path())
	if err != nil {
		w.log.Error("transcription failed", "error", err)
		w.events.SessionError(domain.ErrorCodeTranscription, err.Error())
		return "", domain.SessionReasonNoTranscript
	}
	if text == "" {
		w.log.Info("no transcript captured")
		return "", domain.SessionReasonNoTranscript
	}

	w.log.Info("result", "text", text)
	return text, ""
}
