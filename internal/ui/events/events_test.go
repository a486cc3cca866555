package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
	"samplehost/internal/host"
)

func TestEmitWithoutAppIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitSamplesRequested(nil, domain.SampleRequest{ID: "x"})
		EmitCommandsUpdated(nil, nil)
		EmitParticipantsUpdated(nil, []host.ParticipantInfo{})
		EmitLogEntry(nil, domain.LogEntry{})
		EmitError(nil, "CODE", "message", "")
	})
}

func TestEventPayloadJSON(t *testing.T) {
	raw, err := json.Marshal(ErrorEvent{Code: "INVALID_STATE", Message: "participant already active"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"INVALID_STATE","message":"participant already active"}`, string(raw))

	raw, err = json.Marshal(CommandsUpdatedEvent{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"commands":null}`, string(raw))
}
