package services

import (
	"go.uber.org/zap"

	"samplehost/internal/ui"
)

// PluginPort is a control port with its scale points.
type PluginPort struct {
	Index       int          `json:"index"`
	Symbol      string       `json:"symbol"`
	Name        string       `json:"name"`
	ScalePoints []ScalePoint `json:"scalePoints"`
}

type ScalePoint struct {
	Label string  `json:"label"`
	Value float32 `json:"value"`
}

// PluginEntry is an LV2 plugin description as shown by the frontend.
type PluginEntry struct {
	URI   string       `json:"uri"`
	Name  string       `json:"name"`
	Ports []PluginPort `json:"ports"`
}

// PluginService lists the LV2 plugin descriptions found under the plugin
// path.
type PluginService struct {
	deps   *ServiceDeps
	logger *zap.Logger
}

func NewPluginService(deps *ServiceDeps) *PluginService {
	return &PluginService{
		deps:   deps,
		logger: deps.loggerNamed("plugin-service"),
	}
}

func (s *PluginService) ListPlugins() ([]PluginEntry, error) {
	hostApp, err := s.deps.application()
	if err != nil {
		return nil, err
	}
	plugins, err := hostApp.Plugins()
	if err != nil {
		s.logger.Warn("load plugin descriptions failed", zap.Error(err))
		return nil, ui.NewErrorWithDetails(ui.ErrCodeInvalidRequest, "Invalid plugin description", err.Error())
	}

	entries := make([]PluginEntry, 0, len(plugins))
	for _, plugin := range plugins {
		entry := PluginEntry{URI: plugin.URI, Name: plugin.Name, Ports: make([]PluginPort, 0, len(plugin.Ports))}
		for _, port := range plugin.Ports {
			mapped := PluginPort{Index: port.Index, Symbol: port.Symbol, Name: port.Name, ScalePoints: []ScalePoint{}}
			for _, point := range port.Descriptors() {
				mapped.ScalePoints = append(mapped.ScalePoints, ScalePoint{Label: point.Label(), Value: point.Value()})
			}
			entry.Ports = append(entry.Ports, mapped)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
