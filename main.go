package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ytget/quickpapers/internal/app"
	"github.com/ytget/quickpapers/internal/config"
	"github.com/ytget/quickpapers/internal/download"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/logging"
	"github.com/ytget/quickpapers/internal/metrics"
	"github.com/ytget/quickpapers/internal/paper"
	"github.com/ytget/quickpapers/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.quickpapers"
	AppName = "QuickPapers"

	WindowWidth  = 560
	WindowHeight = 640

	// EventBufferSize bounds progress events queued between the worker and the UI
	EventBufferSize = 64
	ShutdownTimeout = 2 * time.Second
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, config.Usage())
		os.Exit(2)
	}

	logCloser, err := logging.Setup(logging.Options{Level: env.LogLevel, File: env.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(2)
	}
	defer logCloser.Close()

	log.Info().Str("version", version).Msg("QuickPapers starting")

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Error().Err(err).Msg("metrics disabled")
	}
	var metricsSrv *http.Server
	if env.MetricsAddr != "" {
		metricsSrv = metrics.NewServer(env.MetricsAddr)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", env.MetricsAddr).Msg("metrics server stopped")
			}
		}()
	}

	template, err := paper.NewTemplate(env.ArchiveURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid archive URL")
	}

	// History is optional: the form still works without it
	var recent ui.RecentStore
	store, err := history.Open(env.HistoryDB)
	if err != nil {
		log.Error().Err(err).Str("path", env.HistoryDB).Msg("download history unavailable")
	} else {
		defer store.Close()
		recent = store
	}

	// Create new Fyne app
	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPaperTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	events := make(chan download.Event, EventBufferSize)
	downloadSvc := download.NewService(&http.Client{Timeout: env.HTTPTimeout}, download.NewChanReporter(events))

	controller := app.NewController(template, downloadSvc, settings.GetOutputDirectory)
	if store != nil {
		controller.SetRecorder(store)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go controller.Run(ctx, events)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, controller, recent)
	if env.RecentLimit > 0 {
		rootUI.SetRecentLimit(env.RecentLimit)
	}

	// Show and run
	myWindow.ShowAndRun()

	if metricsSrv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer stop()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	log.Info().Msg("QuickPapers stopped")
}
