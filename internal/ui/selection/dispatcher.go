package selection

import (
	"sync"

	"samplehost/internal/domain"
)

// Dispatcher tracks the show cycles of a selection view and delivers exactly
// one terminal event per cycle. The first outcome reported for a cycle wins;
// later reports for the same cycle are dropped.
type Dispatcher struct {
	mu       sync.Mutex
	listener domain.SelectionListener
	open     bool
	cycle    uint64
}

func (d *Dispatcher) SetListener(listener domain.SelectionListener) {
	d.mu.Lock()
	d.listener = listener
	d.mu.Unlock()
}

// Begin opens a new cycle and returns its token.
func (d *Dispatcher) Begin() (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return 0, domain.ErrSelectionViewBusy
	}
	d.cycle++
	d.open = true
	return d.cycle, nil
}

func (d *Dispatcher) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Confirm ends the cycle with the selected paths. An empty selection ends the
// cycle as cancelled.
func (d *Dispatcher) Confirm(cycle uint64, paths []string) bool {
	if len(paths) == 0 {
		return d.Cancel(cycle)
	}
	listener, ok := d.end(cycle)
	if !ok {
		return false
	}
	if listener != nil {
		listener.SelectionConfirmed(append([]string(nil), paths...))
	}
	return true
}

func (d *Dispatcher) Cancel(cycle uint64) bool {
	listener, ok := d.end(cycle)
	if !ok {
		return false
	}
	if listener != nil {
		listener.SelectionCancelled()
	}
	return true
}

func (d *Dispatcher) Closed(cycle uint64) bool {
	listener, ok := d.end(cycle)
	if !ok {
		return false
	}
	if listener != nil {
		listener.SelectionClosed()
	}
	return true
}

// CloseCurrent ends the open cycle, if any, as closed.
func (d *Dispatcher) CloseCurrent() bool {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return false
	}
	cycle := d.cycle
	d.mu.Unlock()
	return d.Closed(cycle)
}

func (d *Dispatcher) end(cycle uint64) (domain.SelectionListener, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.cycle != cycle {
		return nil, false
	}
	d.open = false
	return d.listener, true
}
