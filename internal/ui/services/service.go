package services

import (
	"github.com/wailsapp/wails/v3/pkg/application"
	"go.uber.org/zap"

	"samplehost/internal/app"
	"samplehost/internal/infra/telemetry"
)

// ServiceRegistry wires all Wails services together.
type ServiceRegistry struct {
	deps *ServiceDeps

	Session     *SessionService
	Participant *ParticipantService
	Plugin      *PluginService
	Log         *LogService
}

func NewServiceRegistry(hostApp *app.Application, logs *telemetry.LogBroadcaster, logger *zap.Logger) *ServiceRegistry {
	deps := NewServiceDeps(hostApp, logs, logger)
	return &ServiceRegistry{
		deps:        deps,
		Session:     NewSessionService(deps),
		Participant: NewParticipantService(deps),
		Plugin:      NewPluginService(deps),
		Log:         NewLogService(deps),
	}
}

func (r *ServiceRegistry) Services() []application.Service {
	return []application.Service{
		application.NewService(r.Session),
		application.NewService(r.Participant),
		application.NewService(r.Plugin),
		application.NewService(r.Log),
	}
}

func (r *ServiceRegistry) SetWailsApp(wails *application.App) {
	if r == nil || r.deps == nil {
		return
	}
	r.deps.setWailsApp(wails)
}
