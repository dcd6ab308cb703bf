// Package config loads pathmap run configuration from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/tilegrid"
)

// ErrUnsupportedFormat indicates a config file extension other than .toml, .yaml or .yml.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// ErrInvalid indicates a config value that can never describe a run.
var ErrInvalid = errors.New("config: invalid value")

// Config describes one pathmap run.
type Config struct {
	Grid      GridConfig     `toml:"grid" yaml:"grid"`
	Obstacles ObstacleConfig `toml:"obstacles" yaml:"obstacles"`
	Search    SearchConfig   `toml:"search" yaml:"search"`
	Logging   LoggingConfig  `toml:"logging" yaml:"logging"`
}

// GridConfig maps onto header.Header. World coordinates are in the same unit
// as spacing.
type GridConfig struct {
	MaxPathLength     float64    `toml:"max_path_length" yaml:"max_path_length"`
	Spacing           float64    `toml:"spacing" yaml:"spacing"`
	NeighborRadius    float64    `toml:"neighbor_radius" yaml:"neighbor_radius"`
	ObstacleThreshold float64    `toml:"obstacle_threshold" yaml:"obstacle_threshold"`
	PathOrigin        [3]float64 `toml:"path_origin" yaml:"path_origin"`
	Dimensions        [3]int     `toml:"dimensions" yaml:"dimensions"` // 0 = derived from max_path_length
}

// ObstacleConfig controls how atoms become obstacle density and how tiles are
// classified afterwards.
type ObstacleConfig struct {
	Binarize      bool         `toml:"binarize" yaml:"binarize"`
	Penalty       float64      `toml:"penalty" yaml:"penalty"`
	Density       float64      `toml:"density" yaml:"density"`               // value written inside atoms
	ExtraRadius   float64      `toml:"extra_radius" yaml:"extra_radius"`     // probe radius added to every atom
	ExcludeRadius float64      `toml:"exclude_radius" yaml:"exclude_radius"` // atoms this close to the path origin are dropped
	Atoms         []AtomConfig `toml:"atoms" yaml:"atoms"`
}

// AtomConfig is one obstacle sphere.
type AtomConfig struct {
	ID     string     `toml:"id" yaml:"id"`
	Center [3]float64 `toml:"center" yaml:"center"`
	Radius float64    `toml:"radius" yaml:"radius"`
}

// SearchConfig selects the search run from the path origin.
type SearchConfig struct {
	Target              *[3]float64 `toml:"target" yaml:"target"` // world point; nil = flood
	Mode                string      `toml:"mode" yaml:"mode"`     // "auto", "dijkstra" or "astar"
	ImpassableObstacles bool        `toml:"impassable_obstacles" yaml:"impassable_obstacles"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads path, picking the decoder by extension, on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the downstream constructors do not.
func (c *Config) Validate() error {
	if !(c.Obstacles.Penalty >= 0) {
		return fmt.Errorf("obstacles.penalty %v must be >= 0: %w", c.Obstacles.Penalty, ErrInvalid)
	}
	for i, a := range c.Obstacles.Atoms {
		if !(a.Radius > 0) {
			return fmt.Errorf("obstacles.atoms[%d] radius %v: %w", i, a.Radius, ErrInvalid)
		}
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalid)
	}
	return nil
}

// HasTarget reports whether a point-to-point search was requested.
func (c *Config) HasTarget() bool { return c.Search.Target != nil }

func defaults() *Config {
	return &Config{
		Grid: GridConfig{
			MaxPathLength:     20,
			Spacing:           0.5,
			NeighborRadius:    header.DefaultNeighborRadius,
			ObstacleThreshold: header.DefaultObstacleThreshold,
		},
		Obstacles: ObstacleConfig{
			Binarize: true,
			Penalty:  tilegrid.DefaultObstaclePenalty,
			Density:  1,
		},
		Search: SearchConfig{
			Mode: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
