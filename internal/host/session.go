package host

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
)

// Session receives add-samples requests and hands them to subscribers, which
// own ingestion.
type Session struct {
	logger  *zap.Logger
	metrics domain.Metrics
	now     func() time.Time

	mu          sync.RWMutex
	requests    []domain.SampleRequest
	subscribers map[uint64]func(domain.SampleRequest)
	nextSub     uint64
}

func NewSession(logger *zap.Logger, metrics domain.Metrics) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Session{
		logger:      logger.Named("session"),
		metrics:     metrics,
		now:         time.Now,
		subscribers: make(map[uint64]func(domain.SampleRequest)),
	}
}

func (s *Session) RequestAddSamples(_ context.Context, paths []string) {
	if len(paths) == 0 {
		s.logger.Debug("empty add samples request dropped")
		return
	}
	request := domain.SampleRequest{
		ID:          uuid.NewString(),
		Paths:       append([]string(nil), paths...),
		RequestedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.requests = append(s.requests, request)
	subscribers := make([]func(domain.SampleRequest), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	s.metrics.ObserveSampleRequest(len(request.Paths))
	s.logger.Info("add samples requested",
		telemetry.EventField(telemetry.EventSampleRequest),
		telemetry.RequestIDField(request.ID),
		telemetry.PathCountField(len(request.Paths)),
	)
	for _, fn := range subscribers {
		fn(cloneRequest(request))
	}
}

// Requests returns every request received so far, oldest first.
func (s *Session) Requests() []domain.SampleRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SampleRequest, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, cloneRequest(req))
	}
	return out
}

// Subscribe registers fn for future requests and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(domain.SampleRequest)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func cloneRequest(req domain.SampleRequest) domain.SampleRequest {
	req.Paths = append([]string(nil), req.Paths...)
	return req
}

var _ domain.Session = (*Session)(nil)
