package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"samplehost/internal/domain"
)

type PrometheusMetrics struct {
	activationDuration *prometheus.HistogramVec
	deactivations      *prometheus.CounterVec
	activeParticipants prometheus.Gauge
	commandInvocations *prometheus.CounterVec
	selections         *prometheus.CounterVec
	sampleRequests     prometheus.Counter
	samplePaths        prometheus.Histogram
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		activationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "samplehost_participant_activation_seconds",
				Help:    "Duration of participant activations in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"participant", "status"},
		),
		deactivations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "samplehost_participant_deactivations_total",
				Help: "Total number of participant deactivations",
			},
			[]string{"participant", "status"},
		),
		activeParticipants: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "samplehost_active_participants",
				Help: "Current number of activated participants",
			},
		),
		commandInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "samplehost_command_invocations_total",
				Help: "Total number of UI command invocations",
			},
			[]string{"command"},
		),
		selections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "samplehost_selections_total",
				Help: "Total number of finished selection view cycles",
			},
			[]string{"outcome"},
		),
		sampleRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "samplehost_sample_requests_total",
				Help: "Total number of add-samples requests received by the session",
			},
		),
		samplePaths: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "samplehost_sample_request_paths",
				Help:    "Number of paths per add-samples request",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
			},
		),
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (p *PrometheusMetrics) ObserveActivation(participant string, duration time.Duration, err error) {
	p.activationDuration.WithLabelValues(participant, statusLabel(err)).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveDeactivation(participant string, err error) {
	p.deactivations.WithLabelValues(participant, statusLabel(err)).Inc()
}

func (p *PrometheusMetrics) SetActiveParticipants(count int) {
	p.activeParticipants.Set(float64(count))
}

func (p *PrometheusMetrics) ObserveCommandInvocation(command string) {
	p.commandInvocations.WithLabelValues(command).Inc()
}

func (p *PrometheusMetrics) ObserveSelection(outcome domain.SelectionOutcome) {
	p.selections.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusMetrics) ObserveSampleRequest(pathCount int) {
	p.sampleRequests.Inc()
	p.samplePaths.Observe(float64(pathCount))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
