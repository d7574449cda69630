// Package config loads routeboard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"routeboard/connections"
	"routeboard/export"
	"routeboard/pathfinding"
	"routeboard/render"
)

// FileName is the per-user config file looked up in the home directory.
const FileName = ".routeboard.toml"

// Config holds every tunable setting.
type Config struct {
	Routing Routing `toml:"routing"`
	Render  Render  `toml:"render"`
	Viewer  Viewer  `toml:"viewer"`
}

// Routing configures the connector router. Distances are screen pixels.
type Routing struct {
	Standoff      float64 `toml:"standoff"`
	Margin        float64 `toml:"margin"`
	TurnPenalty   float64 `toml:"turn_penalty"`
	MaxExpansions int     `toml:"max_expansions"`
	GoalEpsilon   float64 `toml:"goal_epsilon"`
	AlignPorts    bool    `toml:"align_ports"`
}

// Render configures drawing and export.
type Render struct {
	CornerRadius float64 `toml:"corner_radius"`
	ArrowSize    float64 `toml:"arrow_size"`
	HaloWidth    float64 `toml:"halo_width"`
	HaloAlpha    float64 `toml:"halo_alpha"`
	HaloColor    string  `toml:"halo_color"`
	Scale        float64 `toml:"scale"`
	Padding      float64 `toml:"padding"`
	Background   string  `toml:"background"`
}

// Viewer configures the terminal viewer.
type Viewer struct {
	CellWidth  float64 `toml:"cell_width"`  // World units per column
	CellHeight float64 `toml:"cell_height"` // World units per row
	Step       float64 `toml:"step"`        // World units moved per arrow key
}

// Default returns the built-in configuration.
func Default() Config {
	routing := connections.DefaultConfig()
	opts := render.DefaultOptions()
	return Config{
		Routing: Routing{
			Standoff:      routing.Standoff,
			Margin:        routing.Margin,
			TurnPenalty:   routing.Costs.TurnPenalty,
			MaxExpansions: routing.Costs.MaxExpansions,
			GoalEpsilon:   routing.Costs.GoalEpsilon,
			AlignPorts:    routing.AlignPorts,
		},
		Render: Render{
			CornerRadius: opts.CornerRadius,
			ArrowSize:    opts.ArrowSize,
			HaloWidth:    opts.HaloWidth,
			HaloAlpha:    opts.HaloAlpha,
			HaloColor:    opts.HaloColor.Hex(),
			Scale:        1,
			Padding:      40,
			Background:   "#ffffff",
		},
		Viewer: Viewer{
			CellWidth:  8,
			CellHeight: 16,
			Step:       10,
		},
	}
}

// Load reads path on top of the defaults. Keys the file sets that Config does not
// know are reported as an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.routeboard.toml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// LoadDefault loads the per-user config file if it exists and the defaults otherwise.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	switch {
	case c.Routing.Standoff <= 0:
		return fmt.Errorf("routing.standoff must be positive, got %g", c.Routing.Standoff)
	case c.Routing.Margin < 0:
		return fmt.Errorf("routing.margin must not be negative, got %g", c.Routing.Margin)
	case c.Routing.Standoff <= c.Routing.Margin:
		return fmt.Errorf("routing.standoff (%g) must exceed routing.margin (%g)", c.Routing.Standoff, c.Routing.Margin)
	case c.Routing.TurnPenalty < 0:
		return fmt.Errorf("routing.turn_penalty must not be negative, got %g", c.Routing.TurnPenalty)
	case c.Routing.MaxExpansions <= 0:
		return fmt.Errorf("routing.max_expansions must be positive, got %d", c.Routing.MaxExpansions)
	case c.Routing.GoalEpsilon <= 0:
		return fmt.Errorf("routing.goal_epsilon must be positive, got %g", c.Routing.GoalEpsilon)
	case c.Render.CornerRadius < 0:
		return fmt.Errorf("render.corner_radius must not be negative, got %g", c.Render.CornerRadius)
	case c.Render.ArrowSize < 0:
		return fmt.Errorf("render.arrow_size must not be negative, got %g", c.Render.ArrowSize)
	case c.Render.HaloAlpha < 0 || c.Render.HaloAlpha > 1:
		return fmt.Errorf("render.halo_alpha must be within [0, 1], got %g", c.Render.HaloAlpha)
	case c.Render.Scale <= 0:
		return fmt.Errorf("render.scale must be positive, got %g", c.Render.Scale)
	case c.Render.Padding < 0:
		return fmt.Errorf("render.padding must not be negative, got %g", c.Render.Padding)
	case c.Viewer.CellWidth <= 0 || c.Viewer.CellHeight <= 0:
		return fmt.Errorf("viewer cell size must be positive, got %gx%g", c.Viewer.CellWidth, c.Viewer.CellHeight)
	case c.Viewer.Step <= 0:
		return fmt.Errorf("viewer.step must be positive, got %g", c.Viewer.Step)
	}
	if _, err := render.ParseColor(c.Render.HaloColor); err != nil {
		return fmt.Errorf("render.halo_color: %w", err)
	}
	if _, err := render.ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	return nil
}

// RouterConfig converts the routing section.
func (c Config) RouterConfig() connections.Config {
	return connections.Config{
		Standoff:   c.Routing.Standoff,
		Margin:     c.Routing.Margin,
		AlignPorts: c.Routing.AlignPorts,
		Costs: pathfinding.PathCost{
			TurnPenalty:   c.Routing.TurnPenalty,
			MaxExpansions: c.Routing.MaxExpansions,
			GoalEpsilon:   c.Routing.GoalEpsilon,
		},
	}
}

// RenderOptions converts the render section. Colors must already be valid.
func (c Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.CornerRadius = c.Render.CornerRadius
	opts.ArrowSize = c.Render.ArrowSize
	opts.HaloWidth = c.Render.HaloWidth
	opts.HaloAlpha = c.Render.HaloAlpha
	if col, err := render.ParseColor(c.Render.HaloColor); err == nil {
		opts.HaloColor = col
	}
	return opts
}

// ExportSettings converts the render and viewer sections for exporters.
func (c Config) ExportSettings() export.Settings {
	s := export.DefaultSettings()
	s.Render = c.RenderOptions()
	s.Scale = c.Render.Scale
	s.Padding = c.Render.Padding
	if col, err := render.ParseColor(c.Render.Background); err == nil {
		s.Background = col
	}
	s.CellWidth = c.Viewer.CellWidth
	s.CellHeight = c.Viewer.CellHeight
	return s
}
