package app

import "samplehost/internal/domain"

// Options selects the config file and the selection view the sample loader
// presents. The view depends on the front end: the desktop app passes a
// native file dialog, samplehostctl a terminal picker.
type Options struct {
	ConfigPath   string
	CreateConfig bool
	View         domain.SelectionView
}

// optionsUpdater is implemented by selection views that accept new dialog
// options after construction.
type optionsUpdater interface {
	SetOptions(domain.SelectionOptions)
}
