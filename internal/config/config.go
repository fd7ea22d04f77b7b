package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/waypoints/internal/waypoint"
)

// Default values applied by Defaults.
const (
	DefaultGraphPath        = ".waypoints/graph"
	DefaultCheckConcurrency = 4
)

// ProjectConfig holds project-level settings loaded from waypoints.yml.
type ProjectConfig struct {
	ModelAsset       string `yaml:"modelAsset,omitempty"`
	AllowDangling    bool   `yaml:"allowDangling,omitempty"`
	GraphPath        string `yaml:"graphPath,omitempty"`
	CheckConcurrency int    `yaml:"checkConcurrency,omitempty"`
	Verbose          bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read waypoints.yml or waypoints.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"waypoints.yml", "waypoints.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Defaults returns a copy of c with empty fields filled in.
func (c ProjectConfig) Defaults() ProjectConfig {
	if c.ModelAsset == "" {
		c.ModelAsset = waypoint.DefaultModel
	}
	if c.GraphPath == "" {
		c.GraphPath = DefaultGraphPath
	}
	if c.CheckConcurrency <= 0 {
		c.CheckConcurrency = DefaultCheckConcurrency
	}
	return c
}

// ResolveGraphPath returns GraphPath joined to root unless it is absolute.
func (c ProjectConfig) ResolveGraphPath(root string) string {
	if filepath.IsAbs(c.GraphPath) {
		return c.GraphPath
	}
	return filepath.Join(root, c.GraphPath)
}
