package lv2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
)

const oscillatorTOML = `
uri = "urn:samplehost:osc"
name = "Oscillator"

[[ports]]
index = 0
symbol = "waveform"
name = "Waveform"
default = 0.0
minimum = 0.0
maximum = 3.0

[[ports.scale_points]]
label = "Sine"
value = 0.0

[[ports.scale_points]]
label = "Square"
value = 1.0

[[ports.scale_points]]
label = "Saw"
value = 2.5

[[ports]]
index = 1
symbol = "gain"
name = "Gain"
`

func TestParse_ScalePointsInDeclarationOrder(t *testing.T) {
	plugin, err := Parse([]byte(oscillatorTOML))
	require.NoError(t, err)
	assert.Equal(t, "urn:samplehost:osc", plugin.URI)
	require.Len(t, plugin.Ports, 2)

	points, err := plugin.ScalePoints("waveform")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "Sine", points[0].Label())
	assert.Equal(t, float32(0.0), points[0].Value())
	assert.Equal(t, "Square", points[1].Label())
	assert.Equal(t, float32(2.5), points[2].Value())

	gain, err := plugin.ScalePoints("gain")
	require.NoError(t, err)
	assert.Empty(t, gain)
}

func TestPlugin_DescriptorsSurviveRecordMutation(t *testing.T) {
	plugin, err := Parse([]byte(oscillatorTOML))
	require.NoError(t, err)

	port, ok := plugin.Port("waveform")
	require.True(t, ok)
	points := port.Descriptors()

	port.ScalePoints[0].Label = "Triangle"
	port.ScalePoints[0].Value = 9

	assert.Equal(t, "Sine", points[0].Label())
	assert.Equal(t, float32(0.0), points[0].Value())
}

func TestPlugin_UnknownPort(t *testing.T) {
	plugin, err := Parse([]byte(oscillatorTOML))
	require.NoError(t, err)

	_, err = plugin.ScalePoints("cutoff")
	require.ErrorIs(t, err, domain.ErrPortNotFound)
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]string{
		"missing uri":       `name = "x"`,
		"missing symbol":    "uri = \"urn:x\"\n[[ports]]\nindex = 0\n",
		"duplicate symbol":  "uri = \"urn:x\"\n[[ports]]\nsymbol = \"a\"\n[[ports]]\nsymbol = \"a\"\n",
		"unlabelled point":  "uri = \"urn:x\"\n[[ports]]\nsymbol = \"a\"\n[[ports.scale_points]]\nvalue = 1.0\n",
		"unknown field key": "uri = \"urn:x\"\ncolour = \"red\"\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.ErrorIs(t, err, domain.ErrInvalidPluginDescription)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("uri = "))
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode plugin description")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "osc.toml"), []byte(oscillatorTOML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amp.toml"), []byte("uri = \"urn:samplehost:amp\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	plugins, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Equal(t, "urn:samplehost:amp", plugins[0].URI)
	assert.Equal(t, "urn:samplehost:osc", plugins[1].URI)
}

func TestLoadDir_DuplicateURI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.toml"), []byte(oscillatorTOML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.toml"), []byte(oscillatorTOML), 0o600))

	_, err := LoadDir(dir)
	require.ErrorIs(t, err, domain.ErrInvalidPluginDescription)
}

func TestLoadDir_Missing(t *testing.T) {
	plugins, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Empty(t, plugins)
}
