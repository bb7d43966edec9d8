package main

import (
	"embed"
	"log/slog"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"quillmic/internal/config"
	"quillmic/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	log := logging.Setup(debugEnabled())

	app := NewApp(log)

	err := wails.Run(&options.App{
		Title:  "Quillmic",
		Width:  220,
		Height: 220,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		slog.Error("run app", "error", err)
	}
}

// debugEnabled peeks at the env toggle before the full config is loaded so
// startup itself is logged at the requested level.
func debugEnabled() bool {
	cfg, err := config.Load()
	if err != nil {
		return false
	}
	return cfg.Debug
}
