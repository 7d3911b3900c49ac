// Package catalog holds the static game content: waste types, the daily mission
// target and the achievement list handed to new players.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog represents the complete game content configuration.
type Catalog struct {
	MissionTarget int           `yaml:"mission_target"`
	WasteTypes    []WasteType   `yaml:"waste_types"`
	Achievements  []Achievement `yaml:"achievements"`
}

// WasteType is a kind of waste the client offers for scanning.
// Points are informational; the client reports the points it awards.
type WasteType struct {
	Type   string `yaml:"type" json:"type"`
	Points int    `yaml:"points" json:"points"`
	Color  string `yaml:"color" json:"color"`
}

type Achievement struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load loads the catalog from a YAML file, or the built-in one when path is empty.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands environment variables in data and decodes it
func Parse(data []byte) (*Catalog, error) {
	expanded := expandEnvVars(string(data))

	var c Catalog
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}

	if c.MissionTarget == 0 {
		c.MissionTarget = state.DefaultMissionTarget
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Validate validates the catalog for common errors.
func (c *Catalog) Validate() error {
	if c.MissionTarget < 1 {
		return fmt.Errorf("mission target must be at least 1, got %d", c.MissionTarget)
	}

	types := make(map[string]bool)
	for _, w := range c.WasteTypes {
		if w.Type == "" {
			return fmt.Errorf("waste type with empty name found")
		}
		if types[w.Type] {
			return fmt.Errorf("duplicate waste type: %s", w.Type)
		}
		types[w.Type] = true

		if w.Points < 0 {
			return fmt.Errorf("waste type %s has negative points", w.Type)
		}
	}

	ids := make(map[int]bool)
	for _, a := range c.Achievements {
		if ids[a.ID] {
			return fmt.Errorf("duplicate achievement ID: %d", a.ID)
		}
		ids[a.ID] = true

		if a.Title == "" {
			return fmt.Errorf("achievement %d has empty title", a.ID)
		}
	}

	return nil
}

// WasteType looks up a waste type by name
func (c *Catalog) WasteType(name string) (WasteType, bool) {
	for _, w := range c.WasteTypes {
		if w.Type == name {
			return w, true
		}
	}
	return WasteType{}, false
}

// InitialAchievements returns the locked achievement list for a new player
func (c *Catalog) InitialAchievements() []state.Achievement {
	out := make([]state.Achievement, 0, len(c.Achievements))
	for _, a := range c.Achievements {
		out = append(out, state.Achievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
		})
	}
	return out
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		varName, defaultValue, _ := strings.Cut(key, ":")

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
