package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"samplehost/internal/domain"
)

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		return &Loader{logger: zap.NewNop()}
	}
	return &Loader{logger: logger.Named("config")}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("statePath", domain.DefaultStateFileName)
	v.SetDefault("pluginPath", domain.DefaultPluginPath)
	v.SetDefault("autoActivate", []string{})
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("sampleLoader.commandLabel", domain.DefaultSampleLoaderCommandLabel)
	v.SetDefault("sampleLoader.menu", domain.DefaultSampleLoaderMenu)
	v.SetDefault("sampleLoader.dialogTitle", domain.DefaultSampleLoaderDialogTitle)
	v.SetDefault("sampleLoader.directory", "")
}

type rawConfig struct {
	StatePath     string                 `mapstructure:"statePath"`
	PluginPath    string                 `mapstructure:"pluginPath"`
	AutoActivate  []string               `mapstructure:"autoActivate"`
	Observability rawObservabilityConfig `mapstructure:"observability"`
	SampleLoader  rawSampleLoaderConfig  `mapstructure:"sampleLoader"`
}

type rawObservabilityConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listenAddress"`
}

type rawSampleLoaderConfig struct {
	CommandLabel string          `mapstructure:"commandLabel"`
	Menu         string          `mapstructure:"menu"`
	DialogTitle  string          `mapstructure:"dialogTitle"`
	Directory    string          `mapstructure:"directory"`
	Filters      []rawFileFilter `mapstructure:"filters"`
}

type rawFileFilter struct {
	Name     string   `mapstructure:"name"`
	Patterns []string `mapstructure:"patterns"`
}

// Load reads the YAML config at path. Relative statePath and pluginPath
// values are resolved against the config file's directory.
func (l *Loader) Load(ctx context.Context, path string) (domain.HostConfig, error) {
	if strings.TrimSpace(path) == "" {
		return domain.HostConfig{}, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.HostConfig{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return domain.HostConfig{}, err
	}
	cfg.StatePath = resolvePath(path, cfg.StatePath)
	cfg.PluginPath = resolvePath(path, cfg.PluginPath)
	return cfg, ctx.Err()
}

// Parse decodes a YAML document without touching the filesystem.
func (l *Loader) Parse(data []byte) (domain.HostConfig, error) {
	expanded, missing, err := expandEnv(data)
	if err != nil {
		return domain.HostConfig{}, err
	}
	if len(missing) > 0 {
		l.logger.Warn("missing environment variables in config", zap.Strings("missing", missing))
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return domain.HostConfig{}, fmt.Errorf("parse config: %w", err)
	}
	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.HostConfig{}, fmt.Errorf("decode config: %w", err)
	}

	cfg, errs := normalize(raw)
	if len(errs) > 0 {
		return domain.HostConfig{}, errors.New(strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Default returns the configuration used when no file overrides anything.
func Default() domain.HostConfig {
	cfg, _ := normalize(rawConfig{})
	return cfg
}

func normalize(raw rawConfig) (domain.HostConfig, []string) {
	var errs []string

	cfg := domain.HostConfig{
		StatePath:  strings.TrimSpace(raw.StatePath),
		PluginPath: strings.TrimSpace(raw.PluginPath),
		Observability: domain.ObservabilityConfig{
			Enabled:       raw.Observability.Enabled,
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
		},
		SampleLoader: domain.SampleLoaderConfig{
			CommandLabel: strings.TrimSpace(raw.SampleLoader.CommandLabel),
			Menu:         strings.TrimSpace(raw.SampleLoader.Menu),
			DialogTitle:  strings.TrimSpace(raw.SampleLoader.DialogTitle),
			Directory:    strings.TrimSpace(raw.SampleLoader.Directory),
		},
	}
	if cfg.StatePath == "" {
		cfg.StatePath = domain.DefaultStateFileName
	}
	if cfg.PluginPath == "" {
		cfg.PluginPath = domain.DefaultPluginPath
	}
	if cfg.Observability.ListenAddress == "" {
		cfg.Observability.ListenAddress = domain.DefaultObservabilityListenAddress
	}
	if cfg.SampleLoader.CommandLabel == "" {
		cfg.SampleLoader.CommandLabel = domain.DefaultSampleLoaderCommandLabel
	}
	if cfg.SampleLoader.Menu == "" {
		cfg.SampleLoader.Menu = domain.DefaultSampleLoaderMenu
	}
	if cfg.SampleLoader.DialogTitle == "" {
		cfg.SampleLoader.DialogTitle = domain.DefaultSampleLoaderDialogTitle
	}

	seen := make(map[string]struct{})
	for i, name := range raw.AutoActivate {
		name = strings.TrimSpace(name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("autoActivate[%d]: name is required", i))
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cfg.AutoActivate = append(cfg.AutoActivate, name)
	}

	for i, filter := range raw.SampleLoader.Filters {
		name := strings.TrimSpace(filter.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("sampleLoader.filters[%d]: name is required", i))
			continue
		}
		var patterns []string
		for _, pattern := range filter.Patterns {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				patterns = append(patterns, pattern)
			}
		}
		if len(patterns) == 0 {
			errs = append(errs, fmt.Sprintf("sampleLoader.filters[%d]: at least one pattern is required", i))
			continue
		}
		cfg.SampleLoader.Filters = append(cfg.SampleLoader.Filters, domain.FileFilter{Name: name, Patterns: patterns})
	}
	if len(cfg.SampleLoader.Filters) == 0 && len(errs) == 0 {
		cfg.SampleLoader.Filters = domain.DefaultAudioFilters()
	}
	return cfg, errs
}
