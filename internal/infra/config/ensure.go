package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"samplehost/internal/domain"
)

type fileDocument struct {
	StatePath     string                `yaml:"statePath"`
	PluginPath    string                `yaml:"pluginPath"`
	AutoActivate  []string              `yaml:"autoActivate"`
	Observability observabilityDocument `yaml:"observability"`
	SampleLoader  sampleLoaderDocument  `yaml:"sampleLoader"`
}

type observabilityDocument struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listenAddress"`
}

type sampleLoaderDocument struct {
	CommandLabel string           `yaml:"commandLabel"`
	Menu         string           `yaml:"menu"`
	DialogTitle  string           `yaml:"dialogTitle"`
	Directory    string           `yaml:"directory,omitempty"`
	Filters      []filterDocument `yaml:"filters"`
}

type filterDocument struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns,flow"`
}

// Marshal renders cfg as a YAML config document.
func Marshal(cfg domain.HostConfig) ([]byte, error) {
	doc := fileDocument{
		StatePath:    cfg.StatePath,
		PluginPath:   cfg.PluginPath,
		AutoActivate: cfg.AutoActivate,
		Observability: observabilityDocument{
			Enabled:       cfg.Observability.Enabled,
			ListenAddress: cfg.Observability.ListenAddress,
		},
		SampleLoader: sampleLoaderDocument{
			CommandLabel: cfg.SampleLoader.CommandLabel,
			Menu:         cfg.SampleLoader.Menu,
			DialogTitle:  cfg.SampleLoader.DialogTitle,
			Directory:    cfg.SampleLoader.Directory,
		},
	}
	if doc.AutoActivate == nil {
		doc.AutoActivate = []string{}
	}
	for _, filter := range cfg.SampleLoader.Filters {
		doc.SampleLoader.Filters = append(doc.SampleLoader.Filters, filterDocument{
			Name:     filter.Name,
			Patterns: filter.Patterns,
		})
	}
	return yaml.Marshal(doc)
}

// EnsureFile writes the default config to path when nothing exists there.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, errors.New("config path is required")
	}
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, errors.New("config path must be a file")
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}

	payload, err := Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, payload, fileMode); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
