package domain

const (
	DefaultStateFileName              = "state.db"
	DefaultPluginPath                 = "plugins"
	DefaultObservabilityListenAddress = "127.0.0.1:9464"
	DefaultSampleLoaderCommandLabel   = "Add Samples..."
	DefaultSampleLoaderMenu           = "Samples"
	DefaultSampleLoaderDialogTitle    = "Add Samples"
)

// DefaultAudioFilters is the filter set offered by sample selection views.
func DefaultAudioFilters() []FileFilter {
	return []FileFilter{
		{Name: "Audio Files", Patterns: []string{"*.wav", "*.aif", "*.aiff", "*.flac", "*.ogg"}},
		{Name: "All Files", Patterns: []string{"*"}},
	}
}
