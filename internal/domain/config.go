package domain

// HostConfig is the resolved host configuration.
type HostConfig struct {
	StatePath     string
	PluginPath    string
	AutoActivate  []string
	Observability ObservabilityConfig
	SampleLoader  SampleLoaderConfig
}

type ObservabilityConfig struct {
	Enabled       bool
	ListenAddress string
}

type SampleLoaderConfig struct {
	CommandLabel string
	Menu         string
	DialogTitle  string
	Directory    string
	Filters      []FileFilter
}

// SelectionOptions returns the dialog options described by the config.
func (c SampleLoaderConfig) SelectionOptions() SelectionOptions {
	filters := c.Filters
	if len(filters) == 0 {
		filters = DefaultAudioFilters()
	}
	title := c.DialogTitle
	if title == "" {
		title = DefaultSampleLoaderDialogTitle
	}
	return SelectionOptions{
		Title:     title,
		Directory: c.Directory,
		Filters:   filters,
	}
}
