package domain

import (
	"context"
	"encoding/json"
)

// ParticipantState is the activation state of a participant.
type ParticipantState string

const (
	ParticipantInactive  ParticipantState = "inactive"
	ParticipantActivated ParticipantState = "activated"
)

// ParticipantDescriptor identifies a participant to the host.
type ParticipantDescriptor struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Participant is a host-loaded component with an activate/deactivate lifecycle.
// The host serializes calls into a participant.
type Participant interface {
	Descriptor() ParticipantDescriptor
	// Activate borrows host until the matching Deactivate. priorState is the
	// blob persisted for this participant, or nil.
	Activate(ctx context.Context, host Host, priorState json.RawMessage) error
	Deactivate(ctx context.Context, host Host) error
	State() ParticipantState
}

// StatefulParticipant is implemented by participants with state worth
// persisting across deactivation.
type StatefulParticipant interface {
	Participant
	SaveState() (json.RawMessage, error)
}

// Host is the activation context handed to a participant.
type Host interface {
	Commands() CommandRegistry
	Session() Session
}

// Command is a user-invokable UI action contributed by a participant.
type Command struct {
	ID    string
	Label string
	Menu  string
	Run   func(ctx context.Context)
}

type CommandRegistry interface {
	AddCommand(cmd Command) error
	RemoveCommand(id string) error
}

// Session is the host's sample session. Ingestion and its failures are owned
// by the session; requests are fire-and-forget for the caller.
type Session interface {
	RequestAddSamples(ctx context.Context, paths []string)
}

// ParticipantStateStore persists participant blobs and the set of
// participants active at shutdown.
type ParticipantStateStore interface {
	LoadState(name string) (json.RawMessage, error)
	SaveState(name string, state json.RawMessage) error
	SetActive(name string, active bool) error
	ActiveParticipants() ([]string, error)
}
