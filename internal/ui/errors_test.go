package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
)

func TestErrorStringFormatsDetails(t *testing.T) {
	uiErr := &Error{Code: "CODE", Message: "message", Details: "details"}
	require.Equal(t, "CODE: message (details)", uiErr.Error())

	uiErr = &Error{Code: "CODE", Message: "message"}
	require.Equal(t, "CODE: message", uiErr.Error())
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "active", err: domain.E(domain.CodeFailedPrecond, "op", "", domain.ErrParticipantActive), code: ErrCodeInvalidState},
		{name: "inactive", err: domain.ErrParticipantInactive, code: ErrCodeInvalidState},
		{name: "participant", err: fmt.Errorf("wrap: %w", domain.ErrParticipantNotFound), code: ErrCodeParticipantNotFound},
		{name: "command", err: domain.ErrCommandNotFound, code: ErrCodeCommandNotFound},
		{name: "busy", err: domain.ErrSelectionViewBusy, code: ErrCodeDialogBusy},
		{name: "invalid", err: domain.ErrInvalidCommand, code: ErrCodeInvalidRequest},
		{name: "canceled", err: context.Canceled, code: ErrCodeOperationCancelled},
		{name: "passthrough", err: NewError(ErrCodeNotFound, "x"), code: ErrCodeNotFound},
		{name: "default", err: errors.New("boom"), code: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uiErr := MapDomainError(tt.err)
			require.NotNil(t, uiErr)
			require.Equal(t, tt.code, uiErr.Code)
		})
	}
	require.Nil(t, MapDomainError(nil))
}
