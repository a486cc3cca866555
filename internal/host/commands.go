package host

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
)

// CommandTable is the host's registry of participant commands, kept in
// registration order.
type CommandTable struct {
	logger  *zap.Logger
	metrics domain.Metrics

	mu        sync.RWMutex
	order     []string
	commands  map[string]domain.Command
	listeners []func([]domain.Command)
}

func NewCommandTable(logger *zap.Logger, metrics domain.Metrics) *CommandTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &CommandTable{
		logger:   logger.Named("commands"),
		metrics:  metrics,
		commands: make(map[string]domain.Command),
	}
}

func (t *CommandTable) AddCommand(cmd domain.Command) error {
	if strings.TrimSpace(cmd.ID) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidCommand)
	}
	if cmd.Run == nil {
		return fmt.Errorf("%w: %s has no handler", domain.ErrInvalidCommand, cmd.ID)
	}

	t.mu.Lock()
	if _, exists := t.commands[cmd.ID]; exists {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrCommandExists, cmd.ID)
	}
	t.commands[cmd.ID] = cmd
	t.order = append(t.order, cmd.ID)
	snapshot, listeners := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Debug("command added",
		telemetry.EventField(telemetry.EventCommandAdded),
		telemetry.CommandField(cmd.ID),
	)
	notify(listeners, snapshot)
	return nil
}

func (t *CommandTable) RemoveCommand(id string) error {
	t.mu.Lock()
	if _, exists := t.commands[id]; !exists {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrCommandNotFound, id)
	}
	delete(t.commands, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	snapshot, listeners := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Debug("command removed",
		telemetry.EventField(telemetry.EventCommandRemoved),
		telemetry.CommandField(id),
	)
	notify(listeners, snapshot)
	return nil
}

// Invoke runs the command synchronously on the caller's goroutine.
func (t *CommandTable) Invoke(ctx context.Context, id string) error {
	t.mu.RLock()
	cmd, ok := t.commands[id]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCommandNotFound, id)
	}
	t.logger.Debug("command invoked",
		telemetry.EventField(telemetry.EventCommandInvoked),
		telemetry.CommandField(id),
	)
	t.metrics.ObserveCommandInvocation(id)
	cmd.Run(ctx)
	return nil
}

func (t *CommandTable) List() []domain.Command {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot, _ := t.snapshotLocked()
	return snapshot
}

// OnChange registers fn to receive the command list after every change.
func (t *CommandTable) OnChange(fn func([]domain.Command)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

func (t *CommandTable) snapshotLocked() ([]domain.Command, []func([]domain.Command)) {
	snapshot := make([]domain.Command, 0, len(t.order))
	for _, id := range t.order {
		snapshot = append(snapshot, t.commands[id])
	}
	return snapshot, append(([]func([]domain.Command))(nil), t.listeners...)
}

func notify(listeners []func([]domain.Command), snapshot []domain.Command) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

var _ domain.CommandRegistry = (*CommandTable)(nil)
