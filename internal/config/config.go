// Package config loads the simulation settings from embedded defaults, an
// optional YAML file and command-line flags, in that order of precedence.
package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gol-canvas/internal/core"
	"gol-canvas/internal/render"
	"gol-canvas/internal/sims/life"
	"gol-canvas/internal/view"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the application.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	View      ViewConfig      `yaml:"view"`
	Window    WindowConfig    `yaml:"window"`
	Sim       SimConfig       `yaml:"sim"`
	Seed      SeedConfig      `yaml:"seed"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GridConfig fixes the grid dimensions for the session.
type GridConfig struct {
	Columns        int     `yaml:"columns"`
	Rows           int     `yaml:"rows"`
	CellSize       float64 `yaml:"cell_size"` // pixels per cell at scale 1
	NeighborPolicy string  `yaml:"neighbor_policy"`
}

// ViewConfig bounds the zoom.
type ViewConfig struct {
	InitialScale float64 `yaml:"initial_scale"`
	MinScale     float64 `yaml:"min_scale"`
	MaxScale     float64 `yaml:"max_scale"`
	ScrollSpeed  float64 `yaml:"scroll_speed"` // scale change per wheel unit
}

// WindowConfig sizes the initial window.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	TPS    int `yaml:"tps"`
}

// SimConfig holds the shell-controlled simulation inputs.
type SimConfig struct {
	TickRate    int  `yaml:"tick_rate"` // frames per generation
	MinTickRate int  `yaml:"min_tick_rate"`
	MaxTickRate int  `yaml:"max_tick_rate"`
	Paused      bool `yaml:"paused"`
	DrawMode    bool `yaml:"draw_mode"`
}

// SeedConfig selects the starting generation.
type SeedConfig struct {
	Pattern string   `yaml:"pattern"`
	Seed    int64    `yaml:"seed"`
	Density float64  `yaml:"density"`
	Cells   [][2]int `yaml:"cells"` // extra live cells as [column, row]
}

// RenderConfig holds colors as #rrggbb or #rrggbbaa.
type RenderConfig struct {
	CullOffscreen bool   `yaml:"cull_offscreen"`
	Background    string `yaml:"background"`
	Live          string `yaml:"live"`
}

// TelemetryConfig enables the per-generation statistics export.
type TelemetryConfig struct {
	CSV string `yaml:"csv"`
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads the defaults and overlays the YAML file at path, if any.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bind registers a flag for each command-line tunable, defaulting to the
// current values.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Grid.Columns, "cols", c.Grid.Columns, "grid columns")
	fs.IntVar(&c.Grid.Rows, "rows", c.Grid.Rows, "grid rows")
	fs.Float64Var(&c.Grid.CellSize, "cell", c.Grid.CellSize, "cell size in pixels at scale 1")
	fs.StringVar(&c.Grid.NeighborPolicy, "neighbors", c.Grid.NeighborPolicy, "edge policy: edge-clamp, bounded or wrap")
	fs.Float64Var(&c.View.InitialScale, "scale", c.View.InitialScale, "initial scale factor")
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "window width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "window height")
	fs.IntVar(&c.Window.TPS, "tps", c.Window.TPS, "frames per second")
	fs.IntVar(&c.Sim.TickRate, "tick-rate", c.Sim.TickRate, "frames per generation")
	fs.BoolVar(&c.Sim.Paused, "paused", c.Sim.Paused, "start paused")
	fs.StringVar(&c.Seed.Pattern, "pattern", c.Seed.Pattern, "seed pattern: "+strings.Join(life.Patterns(), ", "))
	fs.Int64Var(&c.Seed.Seed, "seed", c.Seed.Seed, "seed for the random pattern")
	fs.Float64Var(&c.Seed.Density, "density", c.Seed.Density, "live cell density for the random pattern")
	fs.BoolVar(&c.Render.CullOffscreen, "cull", c.Render.CullOffscreen, "paint only visible cells")
	fs.StringVar(&c.Telemetry.CSV, "stats", c.Telemetry.CSV, "write per-generation statistics to this CSV file")
}

// Merge overlays the YAML file at path and then re-applies every flag that was
// set explicitly on fs, so the command line wins over the file.
func (c *Config) Merge(path string, fs *flag.FlagSet) error {
	explicit := map[string]string{}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })
	}
	if err := c.mergeFile(path); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("reapplying flag -%s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	// Unmarshal into the same struct so only fields present in the file change.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.Columns > 0, "grid.columns must be positive, got %d", c.Grid.Columns)
	check(c.Grid.Rows > 0, "grid.rows must be positive, got %d", c.Grid.Rows)
	check(c.Grid.CellSize > 0, "grid.cell_size must be positive, got %v", c.Grid.CellSize)
	if _, err := life.ParsePolicy(c.Grid.NeighborPolicy); err != nil {
		errs = append(errs, fmt.Errorf("grid.neighbor_policy: %w", err))
	}

	check(c.View.MinScale > 0, "view.min_scale must be positive, got %v", c.View.MinScale)
	check(c.View.MaxScale >= c.View.MinScale, "view.max_scale %v below min_scale %v", c.View.MaxScale, c.View.MinScale)
	check(c.View.ScrollSpeed >= 0, "view.scroll_speed must not be negative, got %v", c.View.ScrollSpeed)

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps must be positive, got %d", c.Window.TPS)

	check(c.Sim.MinTickRate >= 1, "sim.min_tick_rate must be at least 1, got %d", c.Sim.MinTickRate)
	check(c.Sim.MaxTickRate >= c.Sim.MinTickRate, "sim.max_tick_rate %d below min_tick_rate %d", c.Sim.MaxTickRate, c.Sim.MinTickRate)
	check(c.Sim.TickRate >= c.Sim.MinTickRate && c.Sim.TickRate <= c.Sim.MaxTickRate,
		"sim.tick_rate %d outside [%d, %d]", c.Sim.TickRate, c.Sim.MinTickRate, c.Sim.MaxTickRate)

	check(c.Seed.Pattern == "" || slices.Contains(life.Patterns(), c.Seed.Pattern), "seed.pattern %q is not registered", c.Seed.Pattern)
	check(c.Seed.Density >= 0 && c.Seed.Density <= 1, "seed.density must be within [0, 1], got %v", c.Seed.Density)
	for _, cell := range c.Seed.Cells {
		check(cell[0] >= 0 && cell[0] < c.Grid.Columns && cell[1] >= 0 && cell[1] < c.Grid.Rows,
			"seed.cells entry %v outside %dx%d grid", cell, c.Grid.Columns, c.Grid.Rows)
	}

	if _, err := ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}
	if _, err := ParseColor(c.Render.Live); err != nil {
		errs = append(errs, fmt.Errorf("render.live: %w", err))
	}
	return errors.Join(errs...)
}

// Policy returns the configured neighbor policy. Call Validate first.
func (c *Config) Policy() life.NeighborPolicy {
	p, _ := life.ParsePolicy(c.Grid.NeighborPolicy)
	return p
}

// ViewportConfig converts the grid and view sections for view.New.
func (c *Config) ViewportConfig() view.Config {
	return view.Config{
		Columns:     c.Grid.Columns,
		Rows:        c.Grid.Rows,
		CellSize:    c.Grid.CellSize,
		MinScale:    c.View.MinScale,
		MaxScale:    c.View.MaxScale,
		ScrollSpeed: c.View.ScrollSpeed,
	}
}

// SeedOptions converts the seed section for life.Seed.
func (c *Config) SeedOptions() life.SeedOptions {
	return life.SeedOptions{Seed: c.Seed.Seed, Density: c.Seed.Density}
}

// SeedCells returns the explicit live cells.
func (c *Config) SeedCells() []core.Cell {
	cells := make([]core.Cell, 0, len(c.Seed.Cells))
	for _, p := range c.Seed.Cells {
		cells = append(cells, core.Cell{Col: p[0], Row: p[1]})
	}
	return cells
}

// RenderOptions converts the render section. Call Validate first.
func (c *Config) RenderOptions() render.Options {
	bg, _ := ParseColor(c.Render.Background)
	live, _ := ParseColor(c.Render.Live)
	return render.Options{Background: bg, Live: live, Cull: c.Render.CullOffscreen}
}

// NewGrid builds the starting generation.
func (c *Config) NewGrid() (*core.Grid, error) {
	g := core.NewGrid(c.Grid.Columns, c.Grid.Rows)
	if err := life.Seed(g, c.Seed.Pattern, c.SeedOptions(), c.SeedCells()); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteYAML saves the effective configuration.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
