package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/infra/config"
	"samplehost/internal/infra/lv2"
	"samplehost/internal/infra/statestore"
	"samplehost/internal/infra/telemetry"
)

// Application wires the host runtime: config, state store, command table,
// session and participant manager.
type Application struct {
	configPath string
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    domain.Metrics
	store      *statestore.Store
	commands   *host.CommandTable
	session    *host.Session
	manager    *host.Manager
	view       domain.SelectionView
	observe    *telemetry.ObservabilityController

	mu     sync.RWMutex
	config domain.HostConfig
	closed bool
}

// ApplicationOptions captures dependencies for Application.
type ApplicationOptions struct {
	Options       Options
	Config        domain.HostConfig
	Logger        *zap.Logger
	Registry      *prometheus.Registry
	Metrics       domain.Metrics
	Store         *statestore.Store
	Commands      *host.CommandTable
	Session       *host.Session
	Manager       *host.Manager
	Observability *telemetry.ObservabilityController
}

func NewApplication(opts ApplicationOptions) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	configPath := opts.Options.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	return &Application{
		configPath: configPath,
		logger:     logger,
		registry:   opts.Registry,
		metrics:    opts.Metrics,
		store:      opts.Store,
		commands:   opts.Commands,
		session:    opts.Session,
		manager:    opts.Manager,
		view:       opts.Options.View,
		observe:    opts.Observability,
		config:     opts.Config,
	}
}

func (a *Application) ConfigPath() string                  { return a.configPath }
func (a *Application) Logger() *zap.Logger                 { return a.logger }
func (a *Application) Registry() *prometheus.Registry      { return a.registry }
func (a *Application) Commands() *host.CommandTable        { return a.commands }
func (a *Application) Session() *host.Session              { return a.session }
func (a *Application) Manager() *host.Manager              { return a.manager }
func (a *Application) StateStore() *statestore.Store       { return a.store }
func (a *Application) SelectionView() domain.SelectionView { return a.view }

func (a *Application) Config() domain.HostConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// Start brings up the metrics server when enabled and restores the
// participants that were active at the last shutdown plus the configured
// autoActivate set.
func (a *Application) Start(ctx context.Context) error {
	cfg := a.Config()
	if err := a.observe.Apply(ctx, cfg.Observability); err != nil {
		return fmt.Errorf("start observability: %w", err)
	}
	if err := a.manager.Restore(ctx, cfg.AutoActivate); err != nil {
		return fmt.Errorf("restore participants: %w", err)
	}
	a.logger.Info("host started",
		zap.String("config", a.configPath),
		zap.Strings("active", a.manager.Active()),
	)
	return nil
}

// ApplyConfig re-applies the settings that can change at runtime: dialog
// options and the metrics server. Command labels are fixed at activation.
func (a *Application) ApplyConfig(ctx context.Context, cfg domain.HostConfig) error {
	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()

	if updater, ok := a.view.(optionsUpdater); ok {
		updater.SetOptions(cfg.SampleLoader.SelectionOptions())
	}
	return a.observe.Apply(ctx, cfg.Observability)
}

// WatchConfig reloads the config file on change until ctx is done.
func (a *Application) WatchConfig(ctx context.Context) error {
	if a.configPath == "" {
		return errors.New("config path is required")
	}
	watcher := config.NewWatcher(a.configPath, config.NewLoader(a.logger), func(cfg domain.HostConfig) {
		if err := a.ApplyConfig(ctx, cfg); err != nil {
			a.logger.Warn("apply config failed", zap.Error(err))
		}
	}, a.logger)
	return watcher.Run(ctx)
}

// Plugins loads the LV2 plugin descriptions under the configured plugin path.
func (a *Application) Plugins() ([]lv2.Plugin, error) {
	return lv2.LoadDir(a.Config().PluginPath)
}

// Close deactivates participants, stops the metrics server and closes the
// state store. It is safe to call more than once.
func (a *Application) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	var errs []error
	if err := a.manager.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.view != nil {
		a.view.Close()
	}
	a.observe.Stop()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close state store: %w", err))
		}
	}
	a.logger.Info("host stopped")
	return errors.Join(errs...)
}
