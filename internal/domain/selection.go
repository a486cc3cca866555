package domain

import "context"

// SelectionOutcome is the terminal event of one selection view show cycle.
type SelectionOutcome string

const (
	SelectionConfirmed SelectionOutcome = "confirmed"
	SelectionCancelled SelectionOutcome = "cancelled"
	SelectionClosed    SelectionOutcome = "closed"
)

// SelectionListener receives exactly one callback per show cycle.
type SelectionListener interface {
	SelectionConfirmed(paths []string)
	SelectionCancelled()
	SelectionClosed()
}

// SelectionView is a modal multi-file selection surface. Show blocks until the
// cycle ends; Close ends an open cycle with SelectionClosed and is a no-op
// otherwise. A cycle whose ctx is done before it is presented ends with
// SelectionClosed.
type SelectionView interface {
	SetListener(listener SelectionListener)
	Show(ctx context.Context) error
	Close()
	IsOpen() bool
}

// FileFilter narrows a selection view to files matching one of Patterns.
type FileFilter struct {
	Name     string   `json:"name" mapstructure:"name"`
	Patterns []string `json:"patterns" mapstructure:"patterns"`
}

// SelectionOptions configure a selection view once at construction.
type SelectionOptions struct {
	Title     string
	Directory string
	Filters   []FileFilter
}
