package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"samplehost/internal/app"
	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
	"samplehost/internal/ui"
	"samplehost/internal/ui/services"
)

func main() {
	logger, logBroadcaster := createLoggerWithBroadcaster()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uiLogger := logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceUI))
	dialog := ui.NewFileDialogView(domain.SelectionOptions{}, uiLogger)

	hostApp, err := app.InitializeApplication(ctx, app.Options{CreateConfig: true, View: dialog}, app.LoggingConfig{
		Logger:      logger,
		Broadcaster: logBroadcaster,
	})
	if err != nil {
		logger.Fatal("initialize host failed", zap.Error(err))
	}

	serviceRegistry := services.NewServiceRegistry(hostApp, logBroadcaster, uiLogger)
	menu := ui.NewMenuBinder(hostApp.Commands(), uiLogger)

	wailsApp := application.New(application.Options{
		Name:        "samplehost",
		Description: "Audio sample host",
		Services:    serviceRegistry.Services(),
		Assets: application.AssetOptions{
			Handler: application.AssetFileServerFS(Assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
		LogLevel: slog.LevelInfo,
		OnShutdown: func() {
			cancel()
			menu.Shutdown()
			if err := hostApp.Close(context.Background()); err != nil {
				logger.Warn("host shutdown failed", zap.Error(err))
			}
		},
	})
	serviceRegistry.SetWailsApp(wailsApp)

	window := wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:            "samplehost",
		Width:            1000,
		Height:           700,
		BackgroundColour: application.NewRGB(255, 255, 255),
		URL:              "/",
	})
	window.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		window.Hide()
		e.Cancel()
	})

	dialog.SetPrompter(ui.WailsPrompter{App: wailsApp, Window: window})
	menu.Attach(wailsApp, window)
	stopForward := serviceRegistry.Session.ForwardRequests()
	defer stopForward()

	go func() {
		if err := hostApp.WatchConfig(ctx); err != nil && !errors.Is(err, context.Canceled) {
			uiLogger.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	if err := hostApp.Start(ctx); err != nil {
		// Participants that failed to come back stay inactive; the user can
		// activate them from the participants view.
		uiLogger.Error("restore participants failed", zap.Error(err))
	}

	uiLogger.Info("starting samplehost")
	if err := wailsApp.Run(); err != nil {
		logger.Error("wails run failed", zap.Error(err))
	}
}

func createLoggerWithBroadcaster() (*zap.Logger, *telemetry.LogBroadcaster) {
	baseLogger, err := app.NewZapLogger("info", true)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	broadcaster := telemetry.NewLogBroadcaster(zapcore.InfoLevel)
	logger := baseLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, broadcaster.Core())
	}))
	return logger, broadcaster
}
