package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
)

func TestExitFor(t *testing.T) {
	require.NoError(t, exitFor(nil))

	var exitErr exitError
	require.ErrorAs(t, exitFor(domain.E(domain.CodeFailedPrecond, "activate", "already active", domain.ErrParticipantActive)), &exitErr)
	assert.Equal(t, exitCodePrecondition, exitErr.code)

	require.ErrorAs(t, exitFor(domain.E(domain.CodeNotFound, "activate", "unknown", domain.ErrParticipantNotFound)), &exitErr)
	assert.Equal(t, exitCodeNotFound, exitErr.code)

	require.ErrorAs(t, exitFor(errors.New("boom")), &exitErr)
	assert.Equal(t, exitCodeFailure, exitErr.code)

	require.ErrorAs(t, exitFor(exitSilent(7)), &exitErr)
	assert.Equal(t, 7, exitErr.code)
	assert.True(t, exitErr.silent)
}

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "samplehost.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statePath: state.db\npluginPath: plugins\n"), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestImportWithPaths(t *testing.T) {
	path := writeCLIConfig(t)
	require.NoError(t, runCLI(t, "--config", path, "import", "--path", "a.wav", "--path", "b.wav"))
}

func TestWriteMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "samplehost_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, registry))
	assert.Contains(t, buf.String(), "samplehost_test_total 1")
}

func TestParticipantsActivateTwice(t *testing.T) {
	path := writeCLIConfig(t)
	require.NoError(t, runCLI(t, "--config", path, "participants", "activate", "sampleloader"))

	// The first activation persisted, so the next start restores it.
	err := runCLI(t, "--config", path, "participants", "activate", "sampleloader")
	var exitErr exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitCodePrecondition, exitErr.code)

	require.NoError(t, runCLI(t, "--config", path, "participants", "deactivate", "sampleloader"))
	require.NoError(t, runCLI(t, "--config", path, "--json", "state", "list"))
}

func TestParticipantsUnknown(t *testing.T) {
	path := writeCLIConfig(t)
	err := runCLI(t, "--config", path, "participants", "activate", "missing")
	var exitErr exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitCodeNotFound, exitErr.code)
}

func TestScalePointsFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gain.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
uri = "urn:test:gain"
name = "Gain"

[[ports]]
index = 0
symbol = "curve"
name = "Curve"

[[ports.scale_points]]
label = "Linear"
value = 0
`), 0o600))

	require.NoError(t, runCLI(t, "--config", writeCLIConfig(t), "scalepoints", "--file", file, "urn:test:gain", "curve"))

	err := runCLI(t, "--config", writeCLIConfig(t), "scalepoints", "--file", file, "urn:test:other", "curve")
	var exitErr exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitCodeNotFound, exitErr.code)
}
