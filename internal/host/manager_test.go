package host

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
	"samplehost/internal/infra/statestore"
	"samplehost/internal/participants/sampleloader"
	"samplehost/internal/ui/selection"
)

type fakeParticipant struct {
	desc        domain.ParticipantDescriptor
	state       domain.ParticipantState
	prior       json.RawMessage
	saved       json.RawMessage
	activateErr error
	calls       *[]string
}

func newFakeParticipant(name string, calls *[]string) *fakeParticipant {
	return &fakeParticipant{
		desc:  domain.ParticipantDescriptor{Name: name, Title: name, Version: "v1.2.0"},
		state: domain.ParticipantInactive,
		calls: calls,
	}
}

func (p *fakeParticipant) Descriptor() domain.ParticipantDescriptor { return p.desc }

func (p *fakeParticipant) Activate(_ context.Context, _ domain.Host, prior json.RawMessage) error {
	if p.state == domain.ParticipantActivated {
		return domain.E(domain.CodeFailedPrecond, "fake.Activate", "", domain.ErrParticipantActive)
	}
	if p.activateErr != nil {
		return p.activateErr
	}
	p.prior = prior
	p.state = domain.ParticipantActivated
	if p.calls != nil {
		*p.calls = append(*p.calls, "activate:"+p.desc.Name)
	}
	return nil
}

func (p *fakeParticipant) Deactivate(context.Context, domain.Host) error {
	if p.state != domain.ParticipantActivated {
		return domain.E(domain.CodeFailedPrecond, "fake.Deactivate", "", domain.ErrParticipantInactive)
	}
	p.state = domain.ParticipantInactive
	if p.calls != nil {
		*p.calls = append(*p.calls, "deactivate:"+p.desc.Name)
	}
	return nil
}

func (p *fakeParticipant) State() domain.ParticipantState { return p.state }

type statefulParticipant struct {
	*fakeParticipant
}

func (p statefulParticipant) SaveState() (json.RawMessage, error) {
	return p.saved, nil
}

func newTestHost() *Context {
	return NewContext(NewCommandTable(nil, nil), NewSession(nil, nil))
}

func openStore(t *testing.T, path string) *statestore.Store {
	t.Helper()
	store, err := statestore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestManager_NewManagerRequiresHost(t *testing.T) {
	require.Panics(t, func() { NewManager(nil, nil, nil, nil) })
}

func TestManager_RegisterValidatesDescriptor(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)

	require.ErrorIs(t, manager.Register(nil), domain.ErrInvalidDescriptor)

	noName := newFakeParticipant("", nil)
	require.ErrorIs(t, manager.Register(noName), domain.ErrInvalidDescriptor)

	badVersion := newFakeParticipant("bad", nil)
	badVersion.desc.Version = "1.0"
	require.ErrorIs(t, manager.Register(badVersion), domain.ErrInvalidDescriptor)

	futureMajor := newFakeParticipant("future", nil)
	futureMajor.desc.Version = "v2.0.0"
	require.ErrorIs(t, manager.Register(futureMajor), domain.ErrInvalidDescriptor)

	require.NoError(t, manager.Register(newFakeParticipant("ok", nil)))
	err := manager.Register(newFakeParticipant("ok", nil))
	require.ErrorIs(t, err, domain.ErrParticipantExists)
}

func TestManager_ActivateDeactivate(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	manager := NewManager(newTestHost(), store, nil, nil)
	p := newFakeParticipant("drums", nil)
	require.NoError(t, manager.Register(p))

	require.NoError(t, manager.Activate(context.Background(), "drums"))
	assert.Equal(t, domain.ParticipantActivated, p.State())
	assert.Equal(t, []string{"drums"}, manager.Active())

	active, err := store.ActiveParticipants()
	require.NoError(t, err)
	assert.Equal(t, []string{"drums"}, active)

	require.NoError(t, manager.Deactivate(context.Background(), "drums"))
	assert.Equal(t, domain.ParticipantInactive, p.State())
	assert.Empty(t, manager.Active())

	active, err = store.ActiveParticipants()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestManager_PreconditionErrorsPropagate(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)
	require.NoError(t, manager.Register(newFakeParticipant("drums", nil)))

	err := manager.Deactivate(context.Background(), "drums")
	require.ErrorIs(t, err, domain.ErrParticipantInactive)
	assert.True(t, domain.IsPrecondition(err))

	require.NoError(t, manager.Activate(context.Background(), "drums"))
	err = manager.Activate(context.Background(), "drums")
	require.ErrorIs(t, err, domain.ErrParticipantActive)
	assert.Equal(t, []string{"drums"}, manager.Active())
}

func TestManager_UnknownParticipant(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)

	err := manager.Activate(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	code, _ := domain.CodeFrom(err)
	assert.Equal(t, domain.CodeNotFound, code)

	err = manager.Deactivate(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestManager_ActivationFailureLeavesInactive(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)
	p := newFakeParticipant("drums", nil)
	p.activateErr = errors.New("boom")
	require.NoError(t, manager.Register(p))

	require.EqualError(t, manager.Activate(context.Background(), "drums"), "boom")
	assert.Empty(t, manager.Active())
}

func TestManager_StatefulParticipantRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store := openStore(t, path)
	manager := NewManager(newTestHost(), store, nil, nil)
	inner := newFakeParticipant("mixer", nil)
	inner.saved = json.RawMessage(`{"gain":0.5}`)
	require.NoError(t, manager.Register(statefulParticipant{inner}))

	require.NoError(t, manager.Activate(context.Background(), "mixer"))
	assert.Empty(t, inner.prior)
	require.NoError(t, manager.Deactivate(context.Background(), "mixer"))

	require.NoError(t, manager.Activate(context.Background(), "mixer"))
	assert.JSONEq(t, `{"gain":0.5}`, string(inner.prior))
}

func TestManager_ShutdownReverseOrderAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := statestore.Open(path)
	require.NoError(t, err)

	var calls []string
	manager := NewManager(newTestHost(), store, nil, nil)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, manager.Register(newFakeParticipant(name, &calls)))
	}
	require.NoError(t, manager.Activate(context.Background(), "b"))
	require.NoError(t, manager.Activate(context.Background(), "a"))

	require.NoError(t, manager.Shutdown(context.Background()))
	assert.Equal(t, []string{"activate:b", "activate:a", "deactivate:a", "deactivate:b"}, calls)
	assert.Empty(t, manager.Active())
	require.NoError(t, store.Close())

	reopened := openStore(t, path)
	calls = nil
	restarted := NewManager(newTestHost(), reopened, nil, nil)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, restarted.Register(newFakeParticipant(name, &calls)))
	}
	require.NoError(t, restarted.Restore(context.Background(), []string{"c", "b", " "}))
	assert.Equal(t, []string{"activate:b", "activate:a", "activate:c"}, calls)
	assert.Equal(t, []string{"b", "a", "c"}, restarted.Active())
}

func TestManager_RestoreUnknownNames(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)
	require.NoError(t, manager.Register(newFakeParticipant("a", nil)))

	err := manager.Restore(context.Background(), []string{"a", "ghost"})
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	assert.Equal(t, []string{"a"}, manager.Active())
}

func TestManager_Participants(t *testing.T) {
	manager := NewManager(newTestHost(), nil, nil, nil)
	require.NoError(t, manager.Register(newFakeParticipant("a", nil)))
	require.NoError(t, manager.Register(newFakeParticipant("b", nil)))
	require.NoError(t, manager.Activate(context.Background(), "b"))

	infos := manager.Participants()
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Descriptor.Name)
	assert.Equal(t, domain.ParticipantInactive, infos[0].State)
	assert.Equal(t, domain.ParticipantActivated, infos[1].State)
}

func TestManager_SampleLoaderEndToEnd(t *testing.T) {
	hostCtx := newTestHost()
	commands := hostCtx.commands.(*CommandTable)
	session := hostCtx.session.(*Session)
	view := selection.NewScriptedView(
		selection.Step{Outcome: domain.SelectionConfirmed, Paths: []string{"kick.wav", "snare.wav"}},
		selection.Step{Outcome: domain.SelectionCancelled},
	)
	loader := sampleloader.New(view, sampleloader.Options{})

	manager := NewManager(hostCtx, nil, nil, nil)
	require.NoError(t, manager.Register(loader))
	require.NoError(t, manager.Activate(context.Background(), sampleloader.Name))

	list := commands.List()
	require.Len(t, list, 1)
	assert.Equal(t, sampleloader.CommandID, list[0].ID)
	assert.Equal(t, "Add Samples...", list[0].Label)

	require.NoError(t, commands.Invoke(context.Background(), sampleloader.CommandID))
	require.NoError(t, commands.Invoke(context.Background(), sampleloader.CommandID))

	requests := session.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, []string{"kick.wav", "snare.wav"}, requests[0].Paths)

	require.NoError(t, manager.Shutdown(context.Background()))
	assert.Empty(t, commands.List())
	assert.Equal(t, 2, view.Shows())
}
