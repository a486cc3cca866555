package host

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
)

// SupportedParticipantMajor is the participant contract major version this
// host implements.
const SupportedParticipantMajor = "v1"

// ParticipantInfo describes a registered participant.
type ParticipantInfo struct {
	Descriptor domain.ParticipantDescriptor `json:"descriptor"`
	State      domain.ParticipantState      `json:"state"`
}

// Manager owns the registered participants and drives their lifecycle
// against a single host context. Lifecycle calls are serialized.
type Manager struct {
	host    domain.Host
	store   domain.ParticipantStateStore
	logger  *zap.Logger
	metrics domain.Metrics

	mu           sync.Mutex
	order        []string
	participants map[string]domain.Participant
	active       []string
}

func NewManager(host domain.Host, store domain.ParticipantStateStore, logger *zap.Logger, metrics domain.Metrics) *Manager {
	if host == nil {
		panic("host.Manager requires a host context")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Manager{
		host:         host,
		store:        store,
		logger:       logger.Named("participants"),
		metrics:      metrics,
		participants: make(map[string]domain.Participant),
	}
}

func (m *Manager) Register(p domain.Participant) error {
	if p == nil {
		return fmt.Errorf("%w: participant is nil", domain.ErrInvalidDescriptor)
	}
	desc := p.Descriptor()
	if err := validateDescriptor(desc); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.participants[desc.Name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrParticipantExists, desc.Name)
	}
	m.participants[desc.Name] = p
	m.order = append(m.order, desc.Name)
	m.logger.Debug("participant registered",
		telemetry.ParticipantField(desc.Name),
		zap.String("version", desc.Version),
	)
	return nil
}

// Activate hands the host context and the participant's saved state to the
// participant. Contract violations reported by the participant are returned
// unchanged.
func (m *Manager) Activate(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activateLocked(ctx, name)
}

func (m *Manager) activateLocked(ctx context.Context, name string) error {
	p, ok := m.participants[name]
	if !ok {
		return domain.E(domain.CodeNotFound, "host.Activate", name, domain.ErrParticipantNotFound)
	}

	started := time.Now()
	var prior []byte
	if m.store != nil {
		state, err := m.store.LoadState(name)
		if err != nil {
			m.logger.Warn("participant state unavailable", telemetry.ParticipantField(name), zap.Error(err))
		} else {
			prior = state
		}
	}

	if err := p.Activate(ctx, m.host, prior); err != nil {
		m.metrics.ObserveActivation(name, time.Since(started), err)
		m.logFailure("participant activation failed", telemetry.EventActivateFailure, name, err)
		return err
	}

	m.active = append(m.active, name)
	m.metrics.ObserveActivation(name, time.Since(started), nil)
	m.metrics.SetActiveParticipants(len(m.active))
	if m.store != nil {
		if err := m.store.SetActive(name, true); err != nil {
			m.logger.Warn("persist active participant failed", telemetry.ParticipantField(name), zap.Error(err))
		}
	}
	m.logger.Info("participant activated",
		telemetry.EventField(telemetry.EventActivate),
		telemetry.ParticipantField(name),
		telemetry.DurationField(time.Since(started)),
	)
	return nil
}

// Deactivate deactivates name and forgets that it was active.
func (m *Manager) Deactivate(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deactivateLocked(ctx, name, true)
}

func (m *Manager) deactivateLocked(ctx context.Context, name string, forget bool) error {
	p, ok := m.participants[name]
	if !ok {
		return domain.E(domain.CodeNotFound, "host.Deactivate", name, domain.ErrParticipantNotFound)
	}

	err := p.Deactivate(ctx, m.host)
	m.metrics.ObserveDeactivation(name, err)
	if err != nil && domain.IsPrecondition(err) {
		m.logFailure("participant deactivation failed", telemetry.EventDeactivateFailure, name, err)
		return err
	}

	m.removeActive(name)
	m.metrics.SetActiveParticipants(len(m.active))
	m.saveState(p)
	if forget && m.store != nil {
		if storeErr := m.store.SetActive(name, false); storeErr != nil {
			m.logger.Warn("persist inactive participant failed", telemetry.ParticipantField(name), zap.Error(storeErr))
		}
	}
	if err != nil {
		m.logFailure("participant deactivated with errors", telemetry.EventDeactivateFailure, name, err)
		return err
	}
	m.logger.Info("participant deactivated",
		telemetry.EventField(telemetry.EventDeactivate),
		telemetry.ParticipantField(name),
	)
	return nil
}

// Restore activates the participants that were active at the last shutdown
// followed by the extra names, skipping duplicates and already active ones.
// Unknown persisted names are ignored; unknown extra names are errors.
func (m *Manager) Restore(ctx context.Context, extra []string) error {
	var persisted []string
	if m.store != nil {
		names, err := m.store.ActiveParticipants()
		if err != nil {
			return fmt.Errorf("load active participants: %w", err)
		}
		persisted = names
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{})
	var errs []error
	restore := func(name string, strict bool) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		if _, ok := m.participants[name]; !ok {
			if strict {
				errs = append(errs, domain.E(domain.CodeNotFound, "host.Restore", name, domain.ErrParticipantNotFound))
			}
			return
		}
		if m.isActive(name) {
			return
		}
		if err := m.activateLocked(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("activate %s: %w", name, err))
		}
	}
	for _, name := range persisted {
		restore(name, false)
	}
	for _, name := range extra {
		restore(name, true)
	}

	m.logger.Info("participants restored",
		telemetry.EventField(telemetry.EventRestore),
		zap.Strings("active", append([]string(nil), m.active...)),
	)
	return errors.Join(errs...)
}

// Shutdown deactivates every active participant in reverse activation order.
// The persisted active set is kept so Restore can bring it back.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i := len(m.active) - 1; i >= 0; i-- {
		name := m.active[i]
		if err := m.deactivateLocked(ctx, name, false); err != nil {
			errs = append(errs, fmt.Errorf("deactivate %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) Participants() []ParticipantInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos := make([]ParticipantInfo, 0, len(m.order))
	for _, name := range m.order {
		p := m.participants[name]
		infos = append(infos, ParticipantInfo{Descriptor: p.Descriptor(), State: p.State()})
	}
	return infos
}

// Active lists active participants in activation order.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.active...)
}

func (m *Manager) isActive(name string) bool {
	for _, existing := range m.active {
		if existing == name {
			return true
		}
	}
	return false
}

func (m *Manager) removeActive(name string) {
	for i, existing := range m.active {
		if existing == name {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}

func (m *Manager) saveState(p domain.Participant) {
	stateful, ok := p.(domain.StatefulParticipant)
	if !ok || m.store == nil {
		return
	}
	name := p.Descriptor().Name
	state, err := stateful.SaveState()
	if err != nil {
		m.logger.Warn("participant state snapshot failed", telemetry.ParticipantField(name), zap.Error(err))
		return
	}
	if err := m.store.SaveState(name, state); err != nil {
		m.logger.Warn("persist participant state failed", telemetry.ParticipantField(name), zap.Error(err))
	}
}

func (m *Manager) logFailure(msg, event, name string, err error) {
	fields := []zap.Field{
		telemetry.EventField(event),
		telemetry.ParticipantField(name),
		zap.Error(err),
	}
	if domain.IsPrecondition(err) {
		fields = append(fields, zap.Bool("contract_violation", true))
	}
	m.logger.Error(msg, fields...)
}

func validateDescriptor(desc domain.ParticipantDescriptor) error {
	if strings.TrimSpace(desc.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidDescriptor)
	}
	if !semver.IsValid(desc.Version) {
		return fmt.Errorf("%w: %s has invalid version %q", domain.ErrInvalidDescriptor, desc.Name, desc.Version)
	}
	if major := semver.Major(desc.Version); major != SupportedParticipantMajor {
		return fmt.Errorf("%w: %s targets %s, host supports %s", domain.ErrInvalidDescriptor, desc.Name, major, SupportedParticipantMajor)
	}
	return nil
}
