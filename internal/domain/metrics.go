package domain

import "time"

// Metrics records host activity.
type Metrics interface {
	ObserveActivation(participant string, duration time.Duration, err error)
	ObserveDeactivation(participant string, err error)
	SetActiveParticipants(count int)
	ObserveCommandInvocation(command string)
	ObserveSelection(outcome SelectionOutcome)
	ObserveSampleRequest(pathCount int)
}
