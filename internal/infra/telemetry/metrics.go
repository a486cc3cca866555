package telemetry

import (
	"time"

	"samplehost/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveActivation(_ string, _ time.Duration, _ error) {}

func (n *NoopMetrics) ObserveDeactivation(_ string, _ error) {}

func (n *NoopMetrics) SetActiveParticipants(_ int) {}

func (n *NoopMetrics) ObserveCommandInvocation(_ string) {}

func (n *NoopMetrics) ObserveSelection(_ domain.SelectionOutcome) {}

func (n *NoopMetrics) ObserveSampleRequest(_ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
