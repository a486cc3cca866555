package domain

import (
	"context"
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeAlreadyExists   ErrorCode = "ALREADY_EXISTS"
	CodeUnavailable     ErrorCode = "UNAVAILABLE"
	CodeFailedPrecond   ErrorCode = "FAILED_PRECONDITION"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeCanceled        ErrorCode = "CANCELED"
)

var (
	ErrParticipantActive        = errors.New("participant is already active")
	ErrParticipantInactive      = errors.New("participant is not active")
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrParticipantExists        = errors.New("participant already registered")
	ErrInvalidDescriptor        = errors.New("invalid participant descriptor")
	ErrCommandExists            = errors.New("command already registered")
	ErrCommandNotFound          = errors.New("command not found")
	ErrInvalidCommand           = errors.New("invalid command")
	ErrSelectionViewBusy        = errors.New("selection view is already open")
	ErrPortNotFound             = errors.New("plugin port not found")
	ErrInvalidPluginDescription = errors.New("invalid plugin description")
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
	Meta    map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
			Meta:    existing.Meta,
		}
	}
	return E(code, op, "", err)
}

// IsPrecondition reports whether err is a lifecycle contract breach by the caller.
func IsPrecondition(err error) bool {
	code, ok := CodeFrom(err)
	return ok && code == CodeFailedPrecond
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrParticipantActive), errors.Is(err, ErrParticipantInactive), errors.Is(err, ErrSelectionViewBusy):
		return CodeFailedPrecond, true
	case errors.Is(err, ErrParticipantNotFound), errors.Is(err, ErrCommandNotFound), errors.Is(err, ErrPortNotFound):
		return CodeNotFound, true
	case errors.Is(err, ErrParticipantExists), errors.Is(err, ErrCommandExists):
		return CodeAlreadyExists, true
	case errors.Is(err, ErrInvalidDescriptor), errors.Is(err, ErrInvalidCommand), errors.Is(err, ErrInvalidPluginDescription):
		return CodeInvalidArgument, true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled, true
	default:
		return "", false
	}
}
