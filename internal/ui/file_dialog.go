package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/ui/selection"
)

// ErrDialogUnavailable is returned by Show before a prompter is attached.
var ErrDialogUnavailable = errors.New("file dialog unavailable")

// FilePrompter runs one native multi-file prompt. An empty result means the
// user dismissed it.
type FilePrompter interface {
	PromptFiles(opts domain.SelectionOptions) ([]string, error)
}

// FileDialogView is a SelectionView backed by the native open-file dialog.
// Native dialogs cannot be dismissed programmatically, so Close ends the
// cycle at once and the eventual dialog result is discarded.
type FileDialogView struct {
	selection.Dispatcher

	logger *zap.Logger

	mu       sync.Mutex
	opts     domain.SelectionOptions
	prompter FilePrompter
	closed   chan struct{}
}

func NewFileDialogView(opts domain.SelectionOptions, logger *zap.Logger) *FileDialogView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileDialogView{
		logger: logger.Named("file_dialog"),
		opts:   opts,
	}
}

func (v *FileDialogView) SetPrompter(prompter FilePrompter) {
	v.mu.Lock()
	v.prompter = prompter
	v.mu.Unlock()
}

// SetOptions replaces the options used by later cycles.
func (v *FileDialogView) SetOptions(opts domain.SelectionOptions) {
	v.mu.Lock()
	v.opts = opts
	v.mu.Unlock()
}

func (v *FileDialogView) Show(ctx context.Context) error {
	cycle, err := v.Begin()
	if err != nil {
		return err
	}

	v.mu.Lock()
	prompter := v.prompter
	opts := v.opts
	closed := make(chan struct{})
	v.closed = closed
	v.mu.Unlock()

	if prompter == nil {
		v.Closed(cycle)
		return ErrDialogUnavailable
	}
	if !v.IsOpen() {
		return nil
	}
	if ctx.Err() != nil {
		v.Closed(cycle)
		return nil
	}

	type result struct {
		paths []string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		paths, err := prompter.PromptFiles(opts)
		done <- result{paths: paths, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			v.Closed(cycle)
			v.logger.Warn("file dialog failed", zap.Error(res.err))
			return res.err
		}
		v.Confirm(cycle, res.paths)
	case <-closed:
	case <-ctx.Done():
		v.Closed(cycle)
	}
	return nil
}

func (v *FileDialogView) Close() {
	v.CloseCurrent()
	v.mu.Lock()
	if v.closed != nil {
		close(v.closed)
		v.closed = nil
	}
	v.mu.Unlock()
}

// WailsPrompter opens the platform file dialog through the Wails runtime.
type WailsPrompter struct {
	App    *application.App
	Window application.Window
}

func (p WailsPrompter) PromptFiles(opts domain.SelectionOptions) ([]string, error) {
	if p.App == nil {
		return nil, ErrDialogUnavailable
	}
	dialog := p.App.Dialog.OpenFile().
		CanChooseFiles(true).
		CanChooseDirectories(false).
		SetTitle(opts.Title)
	for _, filter := range opts.Filters {
		dialog.AddFilter(filter.Name, strings.Join(filter.Patterns, ";"))
	}
	if opts.Directory != "" {
		dialog.SetDirectory(opts.Directory)
	}
	if p.Window != nil {
		dialog.AttachToWindow(p.Window)
	}
	return dialog.PromptForMultipleSelection()
}

var _ domain.SelectionView = (*FileDialogView)(nil)
