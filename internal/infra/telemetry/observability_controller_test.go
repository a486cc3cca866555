package telemetry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
)

func TestResolveObservabilityState(t *testing.T) {
	state := resolveObservabilityState(domain.ObservabilityConfig{Enabled: true, ListenAddress: " 127.0.0.1:9090 "})
	require.True(t, state.enabled)
	require.Equal(t, "127.0.0.1:9090", state.addr)

	state = resolveObservabilityState(domain.ObservabilityConfig{})
	require.False(t, state.enabled)
	require.Equal(t, domain.DefaultObservabilityListenAddress, state.addr)
}

func TestObservabilityController_StartsAndStops(t *testing.T) {
	addr := freeAddr(t)
	controller := NewObservabilityController(ObservabilityControllerOptions{Registry: prometheus.NewRegistry()})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := domain.ObservabilityConfig{Enabled: true, ListenAddress: addr}
	require.NoError(t, controller.Apply(ctx, cfg))
	require.NoError(t, controller.Apply(ctx, cfg))
	require.True(t, controller.Running())

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, controller.Apply(ctx, domain.ObservabilityConfig{Enabled: false, ListenAddress: addr}))
	require.False(t, controller.Running())
}

func TestObservabilityController_NilIsNoop(t *testing.T) {
	var controller *ObservabilityController
	require.NoError(t, controller.Apply(context.Background(), domain.ObservabilityConfig{Enabled: true}))
}
