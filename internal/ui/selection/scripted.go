package selection

import (
	"context"
	"sync"

	"samplehost/internal/domain"
)

// Step is one scripted show cycle outcome.
type Step struct {
	Outcome domain.SelectionOutcome
	Paths   []string
}

// ScriptedView is a non-interactive selection view. Each Show consumes the
// next step; once the script is exhausted Show stays open until Close is
// called or ctx is done. A Show on a done ctx closes without consuming a step.
type ScriptedView struct {
	Dispatcher

	mu     sync.Mutex
	steps  []Step
	shows  int
	closed chan struct{}
}

func NewScriptedView(steps ...Step) *ScriptedView {
	return &ScriptedView{steps: append([]Step(nil), steps...)}
}

// Confirming returns a view whose first cycle confirms paths.
func Confirming(paths ...string) *ScriptedView {
	return NewScriptedView(Step{Outcome: domain.SelectionConfirmed, Paths: paths})
}

func (v *ScriptedView) Show(ctx context.Context) error {
	cycle, err := v.Begin()
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.shows++
	if ctx.Err() != nil {
		v.mu.Unlock()
		v.Closed(cycle)
		return nil
	}
	var step *Step
	if len(v.steps) > 0 {
		next := v.steps[0]
		v.steps = v.steps[1:]
		step = &next
	}
	closed := make(chan struct{})
	v.closed = closed
	v.mu.Unlock()

	if step != nil {
		switch step.Outcome {
		case domain.SelectionConfirmed:
			v.Confirm(cycle, step.Paths)
		case domain.SelectionCancelled:
			v.Cancel(cycle)
		default:
			v.Closed(cycle)
		}
		return nil
	}
	if !v.IsOpen() {
		return nil
	}

	select {
	case <-closed:
	case <-ctx.Done():
		v.Closed(cycle)
	}
	return nil
}

func (v *ScriptedView) Close() {
	v.CloseCurrent()
	v.mu.Lock()
	if v.closed != nil {
		close(v.closed)
		v.closed = nil
	}
	v.mu.Unlock()
}

// Shows reports how many cycles were started.
func (v *ScriptedView) Shows() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shows
}

var _ domain.SelectionView = (*ScriptedView)(nil)
