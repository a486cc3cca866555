package main

import (
	"errors"

	"samplehost/internal/domain"
)

const (
	exitCodeFailure      = 1
	exitCodePrecondition = 2
	exitCodeNotFound     = 3
)

type exitError struct {
	code    int
	message string
	silent  bool
}

func (e exitError) Error() string {
	return e.message
}

func exitSilent(code int) error {
	return exitError{code: code, silent: true}
}

// exitFor maps host errors to process exit codes. Contract violations are
// fatal and get their own code.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	code, _ := domain.CodeFrom(err)
	switch code {
	case domain.CodeFailedPrecond:
		return exitError{code: exitCodePrecondition, message: err.Error()}
	case domain.CodeNotFound:
		return exitError{code: exitCodeNotFound, message: err.Error()}
	default:
		return exitError{code: exitCodeFailure, message: err.Error()}
	}
}
