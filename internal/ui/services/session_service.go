package services

import (
	"context"

	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/ui"
	"samplehost/internal/ui/events"
	"samplehost/internal/ui/mapping"
	"samplehost/internal/ui/types"
)

// SessionService exposes the host session and command table to the frontend.
type SessionService struct {
	deps   *ServiceDeps
	logger *zap.Logger
}

func NewSessionService(deps *ServiceDeps) *SessionService {
	return &SessionService{
		deps:   deps,
		logger: deps.loggerNamed("session-service"),
	}
}

// ForwardRequests emits every new add-samples request as a frontend event
// until the returned function is called.
func (s *SessionService) ForwardRequests() func() {
	hostApp, err := s.deps.application()
	if err != nil {
		return func() {}
	}
	return hostApp.Session().Subscribe(func(req domain.SampleRequest) {
		events.EmitSamplesRequested(s.deps.wailsApp(), req)
	})
}

// ListSampleRequests returns every add-samples request of this session.
func (s *SessionService) ListSampleRequests() ([]types.SampleRequest, error) {
	hostApp, err := s.deps.application()
	if err != nil {
		return nil, err
	}
	return mapping.MapSampleRequests(hostApp.Session().Requests()), nil
}

// ListCommands returns the registered participant commands.
func (s *SessionService) ListCommands() ([]types.CommandEntry, error) {
	hostApp, err := s.deps.application()
	if err != nil {
		return nil, err
	}
	return mapping.MapCommands(hostApp.Commands().List()), nil
}

// InvokeCommand runs a command. Commands that open a dialog block until the
// dialog is dismissed.
func (s *SessionService) InvokeCommand(ctx context.Context, id string) error {
	hostApp, err := s.deps.application()
	if err != nil {
		return err
	}
	if id == "" {
		return ui.NewError(ui.ErrCodeInvalidRequest, "Command id is required")
	}
	if err := hostApp.Commands().Invoke(ctx, id); err != nil {
		s.logger.Warn("invoke command failed", zap.String("command", id), zap.Error(err))
		return ui.MapDomainError(err)
	}
	return nil
}
