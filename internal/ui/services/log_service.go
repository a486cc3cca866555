package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/ui"
	"samplehost/internal/ui/events"
)

var logLevelRank = map[domain.LogLevel]int{
	domain.LogLevelDebug:   0,
	domain.LogLevelInfo:    1,
	domain.LogLevelWarning: 2,
	domain.LogLevelError:   3,
	domain.LogLevelFatal:   4,
}

// LogService streams host logs to the frontend.
type LogService struct {
	deps   *ServiceDeps
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewLogService(deps *ServiceDeps) *LogService {
	return &LogService{
		deps:   deps,
		logger: deps.loggerNamed("log-service"),
	}
}

// StartLogStream emits entries at minLevel or above as log events. Starting
// a new stream replaces the previous one.
func (s *LogService) StartLogStream(ctx context.Context, minLevel string) error {
	if s.deps.logs == nil {
		return ui.NewError(ui.ErrCodeInternal, "Log stream not available")
	}
	level := domain.LogLevel(minLevel)
	threshold, ok := logLevelRank[level]
	if !ok {
		return ui.NewErrorWithDetails(ui.ErrCodeInvalidRequest, "Unknown log level", minLevel)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	entries := s.deps.logs.Subscribe(streamCtx)
	go func() {
		for entry := range entries {
			if logLevelRank[entry.Level] < threshold {
				continue
			}
			events.EmitLogEntry(s.deps.wailsApp(), entry)
		}
	}()
	return nil
}

func (s *LogService) StopLogStream() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
