package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent       = "event"
	FieldParticipant = "participant"
	FieldCommand     = "command"
	FieldState       = "state"
	FieldDurationMs  = "duration_ms"
	FieldPathCount   = "path_count"
	FieldRequestID   = "request_id"
	FieldLogSource   = "log_source"
)

const (
	EventActivate           = "activate"
	EventActivateFailure    = "activate_failure"
	EventDeactivate         = "deactivate"
	EventDeactivateFailure  = "deactivate_failure"
	EventCommandAdded       = "command_added"
	EventCommandRemoved     = "command_removed"
	EventCommandInvoked     = "command_invoked"
	EventSelectionConfirmed = "selection_confirmed"
	EventSelectionCancelled = "selection_cancelled"
	EventSelectionClosed    = "selection_closed"
	EventSampleRequest      = "sample_request"
	EventRestore            = "restore"
)

const (
	LogSourceHost = "host"
	LogSourceUI   = "ui"
	LogSourceCLI  = "cli"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ParticipantField(name string) zap.Field {
	return zap.String(FieldParticipant, name)
}

func CommandField(id string) zap.Field {
	return zap.String(FieldCommand, id)
}

func StateField(state string) zap.Field {
	return zap.String(FieldState, state)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func PathCountField(count int) zap.Field {
	return zap.Int(FieldPathCount, count)
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}
