package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, domain.DefaultStateFileName), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, domain.DefaultPluginPath), cfg.PluginPath)
	assert.Empty(t, cfg.AutoActivate)
	assert.False(t, cfg.Observability.Enabled)
	assert.Equal(t, domain.DefaultObservabilityListenAddress, cfg.Observability.ListenAddress)
	assert.Equal(t, "Add Samples...", cfg.SampleLoader.CommandLabel)
	assert.Equal(t, "Samples", cfg.SampleLoader.Menu)
	assert.Equal(t, "Add Samples", cfg.SampleLoader.DialogTitle)
	assert.Equal(t, domain.DefaultAudioFilters(), cfg.SampleLoader.Filters)
}

func TestLoader_Overrides(t *testing.T) {
	t.Setenv("SAMPLEHOST_TEST_LIBRARY", "/srv/library")
	path := writeConfig(t, `
statePath: /var/lib/samplehost/state.db
pluginPath: lv2
autoActivate: [sampleloader, sampleloader]
observability:
  enabled: true
  listenAddress: 0.0.0.0:9000
sampleLoader:
  commandLabel: Import Audio...
  menu: File
  dialogTitle: Import Audio
  directory: ${SAMPLEHOST_TEST_LIBRARY}/drums
  filters:
    - name: Wave
      patterns: ["*.wav", " "]
`)

	cfg, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/samplehost/state.db", cfg.StatePath)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "lv2"), cfg.PluginPath)
	assert.Equal(t, []string{"sampleloader"}, cfg.AutoActivate)
	assert.True(t, cfg.Observability.Enabled)
	assert.Equal(t, "0.0.0.0:9000", cfg.Observability.ListenAddress)
	assert.Equal(t, "Import Audio...", cfg.SampleLoader.CommandLabel)
	assert.Equal(t, "File", cfg.SampleLoader.Menu)
	assert.Equal(t, "/srv/library/drums", cfg.SampleLoader.Directory)
	assert.Equal(t, []domain.FileFilter{{Name: "Wave", Patterns: []string{"*.wav"}}}, cfg.SampleLoader.Filters)

	opts := cfg.SampleLoader.SelectionOptions()
	assert.Equal(t, "Import Audio", opts.Title)
	assert.Equal(t, "/srv/library/drums", opts.Directory)
}

func TestLoader_RejectsBlankAutoActivate(t *testing.T) {
	_, err := NewLoader(nil).Parse([]byte("autoActivate: [sampleloader, \" \"]\n"))
	require.ErrorContains(t, err, "autoActivate[1]: name is required")
}

func TestLoader_InvalidFilters(t *testing.T) {
	_, err := NewLoader(nil).Parse([]byte(`
sampleLoader:
  filters:
    - name: ""
      patterns: ["*.wav"]
    - name: Empty
      patterns: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampleLoader.filters[0]: name is required")
	assert.Contains(t, err.Error(), "sampleLoader.filters[1]: at least one pattern is required")
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), " ")
	require.Error(t, err)

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = loader.Parse([]byte("statePath: [unterminated"))
	require.ErrorContains(t, err, "parse config")
}

func TestLoader_CanceledContext(t *testing.T) {
	path := writeConfig(t, "menu: x\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}
