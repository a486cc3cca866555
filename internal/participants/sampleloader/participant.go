// Package sampleloader contributes the "Add Samples..." command. Confirmed
// file selections are forwarded to the host session as one add-samples
// request.
package sampleloader

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
)

const (
	Name      = "sampleloader"
	CommandID = "sampleloader.add-samples"
)

var descriptor = domain.ParticipantDescriptor{
	Name:    Name,
	Title:   "Sample Loader",
	Version: "v1.0.0",
	Author:  "samplehost",
	Summary: "Loads samples from audio files",
}

type Options struct {
	CommandLabel string
	Menu         string
	Logger       *zap.Logger
	Metrics      domain.Metrics
}

type Participant struct {
	logger  *zap.Logger
	metrics domain.Metrics
	view    domain.SelectionView
	label   string
	menu    string

	mu          sync.Mutex
	state       domain.ParticipantState
	host        domain.Host
	cycleCtx    context.Context
	cycleCancel context.CancelFunc
	cycleID     uint64
	activated   time.Time
}

// New builds a participant that owns view for its whole lifetime.
func New(view domain.SelectionView, opts Options) *Participant {
	if view == nil {
		panic("sampleloader.Participant requires a selection view")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	label := opts.CommandLabel
	if label == "" {
		label = domain.DefaultSampleLoaderCommandLabel
	}
	menu := opts.Menu
	if menu == "" {
		menu = domain.DefaultSampleLoaderMenu
	}
	p := &Participant{
		logger:  logger.Named(Name),
		metrics: metrics,
		view:    view,
		label:   label,
		menu:    menu,
		state:   domain.ParticipantInactive,
	}
	view.SetListener(selectionEvents{p: p})
	return p
}

func (p *Participant) Descriptor() domain.ParticipantDescriptor {
	return descriptor
}

func (p *Participant) State() domain.ParticipantState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Activate registers the add-samples command. priorState is ignored; the
// participant has nothing to restore.
func (p *Participant) Activate(_ context.Context, host domain.Host, _ json.RawMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == domain.ParticipantActivated {
		return domain.E(domain.CodeFailedPrecond, "sampleloader.Activate", "", domain.ErrParticipantActive)
	}
	if host == nil {
		return domain.E(domain.CodeInvalidArgument, "sampleloader.Activate", "host is required", nil)
	}

	cmd := domain.Command{
		ID:    CommandID,
		Label: p.label,
		Menu:  p.menu,
		Run:   p.handleAddSamplesRequest,
	}
	if err := host.Commands().AddCommand(cmd); err != nil {
		return fmt.Errorf("register command: %w", err)
	}

	p.host = host
	p.state = domain.ParticipantActivated
	p.activated = time.Now()
	p.logger.Info("participant activated",
		telemetry.EventField(telemetry.EventActivate),
		telemetry.CommandField(CommandID),
		telemetry.StateField(string(p.state)),
	)
	return nil
}

// Deactivate unregisters the command and closes the selection view if it is
// open. The host reference is dropped even when unregistering fails.
func (p *Participant) Deactivate(_ context.Context, host domain.Host) error {
	p.mu.Lock()
	if p.state != domain.ParticipantActivated {
		p.mu.Unlock()
		return domain.E(domain.CodeFailedPrecond, "sampleloader.Deactivate", "", domain.ErrParticipantInactive)
	}
	if host == nil {
		host = p.host
	}
	removeErr := host.Commands().RemoveCommand(CommandID)
	p.host = nil
	p.cycleCtx = nil
	if p.cycleCancel != nil {
		// A cycle that has not begun yet sees a done context and ends as
		// closed without presenting.
		p.cycleCancel()
		p.cycleCancel = nil
	}
	p.state = domain.ParticipantInactive
	uptime := time.Since(p.activated)
	p.mu.Unlock()

	p.view.Close()

	p.logger.Info("participant deactivated",
		telemetry.EventField(telemetry.EventDeactivate),
		telemetry.CommandField(CommandID),
		telemetry.StateField(string(domain.ParticipantInactive)),
		telemetry.DurationField(uptime),
	)
	if removeErr != nil {
		return fmt.Errorf("unregister command: %w", removeErr)
	}
	return nil
}

func (p *Participant) handleAddSamplesRequest(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.mu.Lock()
	if p.state != domain.ParticipantActivated {
		p.mu.Unlock()
		p.logger.Warn("add samples invoked while inactive", telemetry.CommandField(CommandID))
		return
	}
	if p.view.IsOpen() {
		p.mu.Unlock()
		p.logger.Debug("sample selection already open", telemetry.CommandField(CommandID))
		return
	}
	if p.cycleCancel != nil {
		p.mu.Unlock()
		p.logger.Debug("sample selection already starting", telemetry.CommandField(CommandID))
		return
	}
	showCtx, cancel := context.WithCancel(ctx)
	p.cycleCtx = ctx
	p.cycleCancel = cancel
	p.cycleID++
	cycle := p.cycleID
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.cycleID == cycle {
			p.cycleCancel = nil
		}
		p.mu.Unlock()
		cancel()
	}()

	p.logger.Debug("opening sample selection", telemetry.EventField(telemetry.EventCommandInvoked))
	if err := p.view.Show(showCtx); err != nil {
		p.logger.Warn("sample selection failed", zap.Error(err))
	}
}

func (p *Participant) handleSampleSelection(paths []string) {
	p.mu.Lock()
	host := p.host
	ctx := p.cycleCtx
	p.mu.Unlock()

	if host == nil {
		p.logger.Warn("selection confirmed while inactive, dropped", telemetry.PathCountField(len(paths)))
		return
	}
	if len(paths) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.metrics.ObserveSelection(domain.SelectionConfirmed)

	p.logger.Info("samples selected",
		telemetry.EventField(telemetry.EventSelectionConfirmed),
		telemetry.PathCountField(len(paths)),
	)
	host.Session().RequestAddSamples(ctx, append([]string(nil), paths...))
}

func (p *Participant) handleCloseRequest(outcome domain.SelectionOutcome) {
	p.metrics.ObserveSelection(outcome)
	event := telemetry.EventSelectionClosed
	if outcome == domain.SelectionCancelled {
		event = telemetry.EventSelectionCancelled
	}
	p.logger.Debug("sample selection dismissed", telemetry.EventField(event))
}

type selectionEvents struct {
	p *Participant
}

func (e selectionEvents) SelectionConfirmed(paths []string) {
	e.p.handleSampleSelection(paths)
}

func (e selectionEvents) SelectionCancelled() {
	e.p.handleCloseRequest(domain.SelectionCancelled)
}

func (e selectionEvents) SelectionClosed() {
	e.p.handleCloseRequest(domain.SelectionClosed)
}

var _ domain.Participant = (*Participant)(nil)
