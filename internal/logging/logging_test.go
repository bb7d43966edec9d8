package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetupDebugEnablesDebugLevel(t *testing.T) {
	logger := Setup(true)
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug level to be enabled")
	}
}

func TestSetupDefaultLevelIsInfo(t *testing.T) {
	logger := Setup(false)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug level to be disabled")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("expected info level to be enabled")
	}
}
