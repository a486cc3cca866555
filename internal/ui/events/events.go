package events

import (
	"github.com/wailsapp/wails/v3/pkg/application"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/ui/mapping"
	"samplehost/internal/ui/types"
)

// Event name constants for Wails event emission.
const (
	EventSamplesRequested    = "samples:requested"
	EventCommandsUpdated     = "commands:updated"
	EventParticipantsUpdated = "participants:updated"
	EventLogEntry            = "logs:entry"
	EventError               = "error"
)

// CommandsUpdatedEvent carries the current command list.
type CommandsUpdatedEvent struct {
	Commands []types.CommandEntry `json:"commands"`
}

// ParticipantsUpdatedEvent carries participant states after a lifecycle change.
type ParticipantsUpdatedEvent struct {
	Participants []types.ParticipantEntry `json:"participants"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func EmitSamplesRequested(app *application.App, req domain.SampleRequest) {
	if app == nil {
		return
	}
	app.Event.Emit(EventSamplesRequested, mapping.MapSampleRequest(req))
}

func EmitCommandsUpdated(app *application.App, cmds []domain.Command) {
	if app == nil {
		return
	}
	app.Event.Emit(EventCommandsUpdated, CommandsUpdatedEvent{Commands: mapping.MapCommands(cmds)})
}

func EmitParticipantsUpdated(app *application.App, infos []host.ParticipantInfo) {
	if app == nil {
		return
	}
	app.Event.Emit(EventParticipantsUpdated, ParticipantsUpdatedEvent{Participants: mapping.MapParticipants(infos)})
}

func EmitLogEntry(app *application.App, entry domain.LogEntry) {
	if app == nil {
		return
	}
	app.Event.Emit(EventLogEntry, mapping.MapLogEntry(entry))
}

func EmitError(app *application.App, code, message, details string) {
	if app == nil {
		return
	}
	app.Event.Emit(EventError, ErrorEvent{
		Code:    code,
		Message: message,
		Details: details,
	})
}
