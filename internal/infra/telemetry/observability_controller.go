package telemetry

import (
	"context"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"samplehost/internal/domain"
)

type ObservabilityControllerOptions struct {
	Registry prometheus.Gatherer
	Status   func() any
	Logger   *zap.Logger
}

// ObservabilityController keeps the metrics server in line with the current
// config. Applying an unchanged config is a no-op.
type ObservabilityController struct {
	mu       sync.Mutex
	defaults ObservabilityControllerOptions
	current  observabilityState
	cancel   context.CancelFunc
	runID    uint64
}

type observabilityState struct {
	addr    string
	enabled bool
}

func NewObservabilityController(opts ObservabilityControllerOptions) *ObservabilityController {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &ObservabilityController{defaults: opts}
}

func (c *ObservabilityController) Apply(ctx context.Context, cfg domain.ObservabilityConfig) error {
	if c == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	state := resolveObservabilityState(cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !state.enabled {
		c.stopLocked()
		c.current = state
		return nil
	}
	if c.current == state && c.cancel != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.current = state
	c.runID++
	runID := c.runID

	c.defaults.Logger.Info("starting observability server", zap.String("addr", state.addr))
	go func() {
		err := StartHTTPServer(runCtx, HTTPServerOptions{
			Addr:     state.addr,
			Registry: c.defaults.Registry,
			Status:   c.defaults.Status,
		}, c.defaults.Logger)
		if err != nil {
			c.defaults.Logger.Error("observability server failed", zap.Error(err))
		}
		c.mu.Lock()
		if c.runID == runID {
			c.cancel = nil
		}
		c.mu.Unlock()
	}()
	return nil
}

// Running reports whether a server is currently serving.
func (c *ObservabilityController) Running() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *ObservabilityController) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.stopLocked()
	c.current = observabilityState{}
	c.mu.Unlock()
}

func (c *ObservabilityController) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func resolveObservabilityState(cfg domain.ObservabilityConfig) observabilityState {
	addr := strings.TrimSpace(cfg.ListenAddress)
	if addr == "" {
		addr = domain.DefaultObservabilityListenAddress
	}
	return observabilityState{addr: addr, enabled: cfg.Enabled}
}
