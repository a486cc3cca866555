package services

import (
	"context"

	"go.uber.org/zap"

	"samplehost/internal/ui"
	"samplehost/internal/ui/events"
	"samplehost/internal/ui/mapping"
	"samplehost/internal/ui/types"
)

// ParticipantService exposes participant lifecycle control.
type ParticipantService struct {
	deps   *ServiceDeps
	logger *zap.Logger
}

func NewParticipantService(deps *ServiceDeps) *ParticipantService {
	return &ParticipantService{
		deps:   deps,
		logger: deps.loggerNamed("participant-service"),
	}
}

func (s *ParticipantService) ListParticipants() ([]types.ParticipantEntry, error) {
	hostApp, err := s.deps.application()
	if err != nil {
		return nil, err
	}
	return mapping.MapParticipants(hostApp.Manager().Participants()), nil
}

func (s *ParticipantService) ActivateParticipant(ctx context.Context, name string) error {
	hostApp, err := s.deps.application()
	if err != nil {
		return err
	}
	if err := hostApp.Manager().Activate(ctx, name); err != nil {
		return s.fail("activate", name, err)
	}
	events.EmitParticipantsUpdated(s.deps.wailsApp(), hostApp.Manager().Participants())
	return nil
}

func (s *ParticipantService) DeactivateParticipant(ctx context.Context, name string) error {
	hostApp, err := s.deps.application()
	if err != nil {
		return err
	}
	if err := hostApp.Manager().Deactivate(ctx, name); err != nil {
		return s.fail("deactivate", name, err)
	}
	events.EmitParticipantsUpdated(s.deps.wailsApp(), hostApp.Manager().Participants())
	return nil
}

func (s *ParticipantService) fail(op, name string, err error) error {
	uiErr := ui.MapDomainError(err)
	s.logger.Warn("participant "+op+" failed", zap.String("participant", name), zap.Error(err))
	events.EmitError(s.deps.wailsApp(), uiErr.Code, uiErr.Message, uiErr.Details)
	return uiErr
}
