package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/afero"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/config"
	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/download"
	"github.com/ytget/vivid-downloader/internal/extractor"
	"github.com/ytget/vivid-downloader/internal/logging"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/platform"
	"github.com/ytget/vivid-downloader/internal/queue"
	"github.com/ytget/vivid-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.vivid-downloader"
	AppName = "Vivid Downloader"

	// EventBuffer absorbs progress bursts while the UI thread is busy
	EventBuffer = 256
)

func main() {
	cfg, err := config.Load(config.NewViper(), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
		cfg = config.Default()
	}

	fs := afero.NewOsFs()
	log, closeLog, err := logging.New(fs, cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		cfg.Log.File = ""
		log, closeLog, _ = logging.New(fs, cfg.Log, os.Stderr)
	}
	defer closeLog()
	log.WithField("version", version).Infof("%s starting", AppName)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp, cfg)
	downloadsDir, err := platform.ResolveDownloadDir(fs, settings.GetDownloadDirectory())
	if err != nil {
		log.WithError(err).Warn("configured download directory unusable, falling back to default")
		if downloadsDir, err = platform.ResolveDownloadDir(fs, ""); err != nil {
			log.WithError(err).Error("failed to ensure downloads dir")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ex, err := extractor.FromConfig(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Warn("yt-dlp setup failed, relying on PATH")
		cfg.InstallYTDLP = false
		ex, _ = extractor.FromConfig(ctx, cfg, log)
	}

	events := make(chan model.Event, EventBuffer)
	analyzer := analysis.NewWorker(ex, events, log)
	downloader := download.NewService(ex, downloadsDir, events,
		download.WithFallbackSelector(cfg.FallbackFormat),
		download.WithLogger(log),
		download.WithCompletionHook(func(path string) { platform.NotifyMediaScanner(path, log) }),
	)

	ctrl := controller.New(ctx, queue.NewStore(nil), analyzer, downloader, events,
		controller.WithDispatcher(fyne.Do),
		controller.WithLogger(log),
	)
	ui.NewRootUI(myWindow, ctrl, settings, downloadsDir, log)
	ctrl.Start()

	myWindow.ShowAndRun()

	cancel()
	analyzer.Wait()
	downloader.Wait()
	log.Info("bye")
}
