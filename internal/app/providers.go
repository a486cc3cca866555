package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/infra/config"
	"samplehost/internal/infra/statestore"
	"samplehost/internal/infra/telemetry"
	"samplehost/internal/participants/sampleloader"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

// NewHostConfig loads the config file, writing the default one first when
// asked to.
func NewHostConfig(ctx context.Context, opts Options, logger *zap.Logger) (domain.HostConfig, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	if opts.CreateConfig {
		created, err := config.EnsureFile(path)
		if err != nil {
			return domain.HostConfig{}, err
		}
		if created {
			logger.Info("default config written", zap.String("config", path))
		}
	}
	return config.NewLoader(logger).Load(ctx, path)
}

func NewStateStore(cfg domain.HostConfig) (*statestore.Store, error) {
	store, err := statestore.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	return store, nil
}

func NewCommandTable(logger *zap.Logger, metrics domain.Metrics) *host.CommandTable {
	return host.NewCommandTable(logger, metrics)
}

func NewSession(logger *zap.Logger, metrics domain.Metrics) *host.Session {
	return host.NewSession(logger, metrics)
}

func NewHostContext(commands *host.CommandTable, session *host.Session) *host.Context {
	return host.NewContext(commands, session)
}

func NewSampleLoader(opts Options, cfg domain.HostConfig, logger *zap.Logger, metrics domain.Metrics) (*sampleloader.Participant, error) {
	if opts.View == nil {
		return nil, fmt.Errorf("%w: selection view is required", domain.ErrInvalidDescriptor)
	}
	if updater, ok := opts.View.(optionsUpdater); ok {
		updater.SetOptions(cfg.SampleLoader.SelectionOptions())
	}
	return sampleloader.New(opts.View, sampleloader.Options{
		CommandLabel: cfg.SampleLoader.CommandLabel,
		Menu:         cfg.SampleLoader.Menu,
		Logger:       logger,
		Metrics:      metrics,
	}), nil
}

// NewParticipantManager builds the manager and registers the built-in
// participants.
func NewParticipantManager(
	hostCtx *host.Context,
	store *statestore.Store,
	loader *sampleloader.Participant,
	logger *zap.Logger,
	metrics domain.Metrics,
) (*host.Manager, error) {
	manager := host.NewManager(hostCtx, store, logger, metrics)
	if err := manager.Register(loader); err != nil {
		return nil, fmt.Errorf("register %s: %w", sampleloader.Name, err)
	}
	return manager, nil
}

// NewObservabilityController serves metrics and the participant listing.
func NewObservabilityController(registry *prometheus.Registry, manager *host.Manager, logger *zap.Logger) *telemetry.ObservabilityController {
	return telemetry.NewObservabilityController(telemetry.ObservabilityControllerOptions{
		Registry: registry,
		Status: func() any {
			return map[string]any{"participants": manager.Participants()}
		},
		Logger: logger,
	})
}

func NewApplicationFromDeps(
	opts Options,
	cfg domain.HostConfig,
	logger *zap.Logger,
	registry *prometheus.Registry,
	metrics domain.Metrics,
	store *statestore.Store,
	commands *host.CommandTable,
	session *host.Session,
	manager *host.Manager,
	observe *telemetry.ObservabilityController,
) *Application {
	return NewApplication(ApplicationOptions{
		Options:       opts,
		Config:        cfg,
		Logger:        logger,
		Registry:      registry,
		Metrics:       metrics,
		Store:         store,
		Commands:      commands,
		Session:       session,
		Manager:       manager,
		Observability: observe,
	})
}
