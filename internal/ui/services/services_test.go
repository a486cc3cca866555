package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"samplehost/internal/app"
	"samplehost/internal/domain"
	"samplehost/internal/infra/telemetry"
	"samplehost/internal/participants/sampleloader"
	"samplehost/internal/ui"
	"samplehost/internal/ui/selection"
)

const testPlugin = `
uri = "urn:test:filter"
name = "Filter"

[[ports]]
index = 0
symbol = "mode"
name = "Mode"

[[ports.scale_points]]
label = "Low"
value = 0

[[ports.scale_points]]
label = "High"
value = 1
`

type fixture struct {
	registry *ServiceRegistry
	app      *app.Application
	logs     *telemetry.LogBroadcaster
	logger   *zap.Logger
}

func newFixture(t *testing.T, view domain.SelectionView) fixture {
	t.Helper()
	dir := t.TempDir()
	pluginDir := filepath.Join(dir, "plugins")
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "filter.toml"), []byte(testPlugin), 0o600))
	path := filepath.Join(dir, "samplehost.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pluginPath: plugins\nautoActivate: [sampleloader]\n"), 0o600))

	logs := telemetry.NewLogBroadcaster(zapcore.DebugLevel)
	logger := zap.New(logs.Core())
	ctx := context.Background()
	hostApp, err := app.InitializeApplication(ctx, app.Options{ConfigPath: path, View: view}, app.LoggingConfig{
		Logger:      logger,
		Broadcaster: logs,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = hostApp.Close(ctx) })
	require.NoError(t, hostApp.Start(ctx))

	return fixture{
		registry: NewServiceRegistry(hostApp, logs, logger),
		app:      hostApp,
		logs:     logs,
		logger:   logger,
	}
}

func TestServiceRegistry_Services(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())
	assert.Len(t, f.registry.Services(), 4)
}

func TestSessionService_InvokeCommandRecordsRequest(t *testing.T) {
	f := newFixture(t, selection.Confirming("a.wav", "b.wav"))
	ctx := context.Background()

	forwarded := 0
	stop := f.app.Session().Subscribe(func(domain.SampleRequest) { forwarded++ })
	defer stop()
	stopForward := f.registry.Session.ForwardRequests()
	defer stopForward()

	cmds, err := f.registry.Session.ListCommands()
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, sampleloader.CommandID, cmds[0].ID)

	require.NoError(t, f.registry.Session.InvokeCommand(ctx, sampleloader.CommandID))
	requests, err := f.registry.Session.ListSampleRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, []string{"a.wav", "b.wav"}, requests[0].Paths)
	assert.Equal(t, 1, forwarded)
}

func TestSessionService_InvokeCommandErrors(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())
	ctx := context.Background()

	err := f.registry.Session.InvokeCommand(ctx, "")
	var uiErr *ui.Error
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeInvalidRequest, uiErr.Code)

	err = f.registry.Session.InvokeCommand(ctx, "missing")
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeCommandNotFound, uiErr.Code)
}

func TestParticipantService_Lifecycle(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())
	ctx := context.Background()
	svc := f.registry.Participant

	entries, err := svc.ListParticipants()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, sampleloader.Name, entries[0].Name)
	assert.Equal(t, string(domain.ParticipantActivated), entries[0].State)

	require.NoError(t, svc.DeactivateParticipant(ctx, sampleloader.Name))
	assert.Empty(t, f.app.Commands().List())

	err = svc.DeactivateParticipant(ctx, sampleloader.Name)
	var uiErr *ui.Error
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeInvalidState, uiErr.Code)

	require.NoError(t, svc.ActivateParticipant(ctx, sampleloader.Name))
	assert.Len(t, f.app.Commands().List(), 1)

	err = svc.ActivateParticipant(ctx, "missing")
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeParticipantNotFound, uiErr.Code)
}

func TestPluginService_ListPlugins(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())

	plugins, err := f.registry.Plugin.ListPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "urn:test:filter", plugins[0].URI)
	require.Len(t, plugins[0].Ports, 1)
	assert.Equal(t, []ScalePoint{{Label: "Low", Value: 0}, {Label: "High", Value: 1}}, plugins[0].Ports[0].ScalePoints)
}

func TestLogService_RejectsUnknownLevel(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())

	err := f.registry.Log.StartLogStream(context.Background(), "verbose")
	var uiErr *ui.Error
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeInvalidRequest, uiErr.Code)
}

func TestLogService_StartAndStop(t *testing.T) {
	f := newFixture(t, selection.NewScriptedView())
	svc := f.registry.Log

	require.NoError(t, svc.StartLogStream(context.Background(), string(domain.LogLevelInfo)))
	require.NoError(t, svc.StartLogStream(context.Background(), string(domain.LogLevelDebug)))
	f.logger.Info("streamed")
	svc.StopLogStream()
	svc.StopLogStream()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Nil(t, svc.cancel)
}

func TestLogService_WithoutBroadcaster(t *testing.T) {
	svc := NewLogService(NewServiceDeps(nil, nil, nil))
	err := svc.StartLogStream(context.Background(), "info")
	require.Error(t, err)
}

func TestServices_WithoutApplication(t *testing.T) {
	registry := NewServiceRegistry(nil, nil, nil)

	_, err := registry.Session.ListCommands()
	var uiErr *ui.Error
	require.ErrorAs(t, err, &uiErr)
	assert.Equal(t, ui.ErrCodeInternal, uiErr.Code)

	_, err = registry.Participant.ListParticipants()
	require.Error(t, err)
	_, err = registry.Plugin.ListPlugins()
	require.Error(t, err)

	stop := registry.Session.ForwardRequests()
	stop()
}
