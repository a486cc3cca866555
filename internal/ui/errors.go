package ui

import (
	"errors"
	"fmt"

	"samplehost/internal/domain"
)

// Error is a frontend-friendly error with a code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for frontend handling.
const (
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	ErrCodeCommandNotFound     = "COMMAND_NOT_FOUND"
	ErrCodeDialogBusy          = "DIALOG_BUSY"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeOperationCancelled  = "OPERATION_CANCELLED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// MapDomainError converts domain errors to an Error.
func MapDomainError(err error) *Error {
	if err == nil {
		return nil
	}

	var uiErr *Error
	if errors.As(err, &uiErr) {
		return uiErr
	}

	switch {
	case errors.Is(err, domain.ErrParticipantActive):
		return NewErrorWithDetails(ErrCodeInvalidState, "Participant is already active", err.Error())
	case errors.Is(err, domain.ErrParticipantInactive):
		return NewErrorWithDetails(ErrCodeInvalidState, "Participant is not active", err.Error())
	case errors.Is(err, domain.ErrParticipantNotFound):
		return NewError(ErrCodeParticipantNotFound, "Participant not found")
	case errors.Is(err, domain.ErrCommandNotFound):
		return NewError(ErrCodeCommandNotFound, "Command not found")
	case errors.Is(err, domain.ErrSelectionViewBusy):
		return NewError(ErrCodeDialogBusy, "A file dialog is already open")
	}

	code, _ := domain.CodeFrom(err)
	switch code {
	case domain.CodeInvalidArgument:
		return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", err.Error())
	case domain.CodeNotFound:
		return NewErrorWithDetails(ErrCodeNotFound, "Not found", err.Error())
	case domain.CodeCanceled:
		return NewError(ErrCodeOperationCancelled, "Operation cancelled")
	default:
		return NewErrorWithDetails(ErrCodeInternal, "Internal error", err.Error())
	}
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewErrorWithDetails(code, message, details string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}
