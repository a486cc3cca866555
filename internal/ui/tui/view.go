package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/ui/selection"
)

// SelectionView is a terminal multi-file picker. It lists the files of the
// configured directory that match the active filter.
type SelectionView struct {
	selection.Dispatcher

	logger      *zap.Logger
	programOpts []tea.ProgramOption

	mu     sync.Mutex
	opts   domain.SelectionOptions
	cancel context.CancelFunc
}

func NewSelectionView(opts domain.SelectionOptions, logger *zap.Logger, programOpts ...tea.ProgramOption) *SelectionView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionView{
		logger:      logger.Named("tui_selection"),
		programOpts: programOpts,
		opts:        opts,
	}
}

// SetOptions replaces the options used by later cycles.
func (v *SelectionView) SetOptions(opts domain.SelectionOptions) {
	v.mu.Lock()
	v.opts = opts
	v.mu.Unlock()
}

func (v *SelectionView) Show(ctx context.Context) error {
	cycle, err := v.Begin()
	if err != nil {
		return err
	}

	v.mu.Lock()
	opts := v.opts
	runCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.cancel = nil
		v.mu.Unlock()
		cancel()
	}()

	if opts.Directory == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			opts.Directory = wd
		}
	}
	files, scanErr := scanDirectory(opts.Directory)
	if scanErr != nil {
		v.logger.Warn("selection directory unavailable", zap.String("directory", opts.Directory), zap.Error(scanErr))
	}
	if !v.IsOpen() {
		return nil
	}
	if runCtx.Err() != nil {
		v.Closed(cycle)
		return nil
	}

	programOpts := append([]tea.ProgramOption{tea.WithContext(runCtx)}, v.programOpts...)
	final, runErr := tea.NewProgram(newModel(opts, files, scanErr), programOpts...).Run()
	if runErr != nil {
		v.Closed(cycle)
		if runCtx.Err() != nil || errors.Is(runErr, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("selection view: %w", runErr)
	}

	result, ok := final.(model)
	if !ok {
		v.Closed(cycle)
		return nil
	}
	switch result.outcome {
	case domain.SelectionConfirmed:
		v.Confirm(cycle, result.Selection())
	case domain.SelectionCancelled:
		v.Cancel(cycle)
	default:
		v.Closed(cycle)
	}
	return nil
}

// Close ends the open cycle as closed and stops the program.
func (v *SelectionView) Close() {
	v.CloseCurrent()
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

var _ domain.SelectionView = (*SelectionView)(nil)
