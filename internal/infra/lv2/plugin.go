// Package lv2 reads LV2 plugin descriptions exported as TOML and builds scale
// point descriptors from their control ports.
package lv2

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"samplehost/internal/domain"
)

const descriptionExt = ".toml"

type Plugin struct {
	URI   string `toml:"uri"`
	Name  string `toml:"name"`
	Ports []Port `toml:"ports"`
}

type Port struct {
	Index       int                `toml:"index"`
	Symbol      string             `toml:"symbol"`
	Name        string             `toml:"name"`
	Default     *float64           `toml:"default"`
	Minimum     *float64           `toml:"minimum"`
	Maximum     *float64           `toml:"maximum"`
	ScalePoints []ScalePointRecord `toml:"scale_points"`
}

// ScalePointRecord is the metadata record of a single scale point.
type ScalePointRecord struct {
	Label string  `toml:"label"`
	Value float64 `toml:"value"`
}

func (r ScalePointRecord) ScalePointLabel() string {
	return r.Label
}

func (r ScalePointRecord) ScalePointValue() float32 {
	return float32(r.Value)
}

var _ domain.ScalePointRecord = ScalePointRecord{}

// Parse decodes and validates a plugin description.
func Parse(data []byte) (Plugin, error) {
	var plugin Plugin
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plugin); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Plugin{}, fmt.Errorf("%w: %s", domain.ErrInvalidPluginDescription, strict.String())
		}
		return Plugin{}, fmt.Errorf("decode plugin description: %w", err)
	}
	if err := plugin.validate(); err != nil {
		return Plugin{}, err
	}
	return plugin, nil
}

func LoadFile(path string) (Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plugin{}, fmt.Errorf("read plugin description: %w", err)
	}
	plugin, err := Parse(data)
	if err != nil {
		return Plugin{}, fmt.Errorf("%s: %w", path, err)
	}
	return plugin, nil
}

// LoadDir loads every description in dir, ordered by URI. A missing directory
// yields no plugins.
func LoadDir(dir string) ([]Plugin, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugin dir: %w", err)
	}
	plugins := make([]Plugin, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), descriptionExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		plugin, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[plugin.URI]; ok {
			return nil, fmt.Errorf("%w: %s declared by %s and %s", domain.ErrInvalidPluginDescription, plugin.URI, prev, path)
		}
		seen[plugin.URI] = path
		plugins = append(plugins, plugin)
	}
	sort.Slice(plugins, func(i, j int) bool { return plugins[i].URI < plugins[j].URI })
	return plugins, nil
}

func (p Plugin) Port(symbol string) (Port, bool) {
	for _, port := range p.Ports {
		if port.Symbol == symbol {
			return port, true
		}
	}
	return Port{}, false
}

// ScalePoints returns the descriptors of the port with the given symbol.
func (p Plugin) ScalePoints(symbol string) ([]domain.ScalePoint, error) {
	port, ok := p.Port(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no port %q", domain.ErrPortNotFound, p.URI, symbol)
	}
	return port.Descriptors(), nil
}

// Descriptors builds one descriptor per scale point in declaration order.
func (port Port) Descriptors() []domain.ScalePoint {
	points := make([]domain.ScalePoint, 0, len(port.ScalePoints))
	for _, record := range port.ScalePoints {
		points = append(points, domain.NewScalePoint(record))
	}
	return points
}

func (p Plugin) validate() error {
	if strings.TrimSpace(p.URI) == "" {
		return fmt.Errorf("%w: uri is required", domain.ErrInvalidPluginDescription)
	}
	symbols := make(map[string]struct{}, len(p.Ports))
	for _, port := range p.Ports {
		if strings.TrimSpace(port.Symbol) == "" {
			return fmt.Errorf("%w: port %d has no symbol", domain.ErrInvalidPluginDescription, port.Index)
		}
		if _, dup := symbols[port.Symbol]; dup {
			return fmt.Errorf("%w: duplicate port symbol %q", domain.ErrInvalidPluginDescription, port.Symbol)
		}
		symbols[port.Symbol] = struct{}{}
		for i, point := range port.ScalePoints {
			if strings.TrimSpace(point.Label) == "" {
				return fmt.Errorf("%w: port %q scale point %d has no label", domain.ErrInvalidPluginDescription, port.Symbol, i)
			}
		}
	}
	return nil
}
