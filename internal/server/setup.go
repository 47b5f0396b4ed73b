package server

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/hiveblocks/hiverender/hive/service"
	"github.com/hiveblocks/hiverender/internal/config"
	"github.com/hiveblocks/hiverender/internal/renderqueue"
	"github.com/hiveblocks/hiverender/internal/storage"
	"github.com/hiveblocks/hiverender/render"
)

// Setup initializes the application and returns the App instance along with
// the render queue (which must be shut down when the server stops).
func Setup() (*App, *renderqueue.Queue) {
	conf := config.SetupConfig()

	conn, err := storage.Open(conf.DatabaseFile)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	store, err := storage.Init(conn)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	renderer := render.New(config.RenderOptions(conf))
	renderingService := service.NewRenderingService(renderer)

	workerCount := conf.RenderWorkers
	if workerCount == 0 {
		workerCount = runtime.NumCPU()
	}
	renderQueue := renderqueue.New(workerCount, func(markdown string) (string, error) {
		return renderingService.Render(markdown)
	})
	slog.Info("render queue initialized", "workers", workerCount)

	draftService := service.NewDraftService(store, renderingService, renderQueue)

	return &App{
		Rendering: renderingService,
		Drafts:    draftService,
		Config:    conf,
	}, renderQueue
}
