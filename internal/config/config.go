// Package config loads the optional YAML viewer configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"curvelab/plot/chart"
	"curvelab/plot/engine"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 320
	DefaultHeight = 320
	DefaultScale  = 2

	DefaultWatchInterval = 500 * time.Millisecond

	maxDimension  = 4096
	maxResolution = 1024
)

// Config is the whole viewer configuration file.
type Config struct {
	Window Window `yaml:"window"`
	Theme  Theme  `yaml:"theme"`
	Grid   Grid   `yaml:"grid"`
	Watch  Watch  `yaml:"watch"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

// Theme colors accept anything chart.ParseColor does. Empty fields keep the
// built-in color.
type Theme struct {
	Background string `yaml:"background"`
	Panel      string `yaml:"panel"`
	Grid       string `yaml:"grid"`
	Axis       string `yaml:"axis"`
	Text       string `yaml:"text"`
	Dim        string `yaml:"dim"`
	Error      string `yaml:"error"`
}

type Grid struct {
	// Resolution is the implicit-mode cell count per axis.
	Resolution int `yaml:"resolution"`
}

type Watch struct {
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads path and fills unset fields with defaults. An empty path
// returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultHeight
	}
	if c.Window.Scale == 0 {
		c.Window.Scale = DefaultScale
	}
	if c.Grid.Resolution == 0 {
		c.Grid.Resolution = engine.DefaultGridResolution
	}
	if c.Watch.Interval == 0 {
		c.Watch.Interval = DefaultWatchInterval
	}
}

func (c Config) validate() error {
	if c.Window.Width < 0 || c.Window.Width > maxDimension {
		return fmt.Errorf("window.width %d out of range", c.Window.Width)
	}
	if c.Window.Height < 0 || c.Window.Height > maxDimension {
		return fmt.Errorf("window.height %d out of range", c.Window.Height)
	}
	if c.Window.Scale < 0 {
		return fmt.Errorf("window.scale %d out of range", c.Window.Scale)
	}
	if c.Grid.Resolution < 0 || c.Grid.Resolution > maxResolution {
		return fmt.Errorf("grid.resolution %d out of range", c.Grid.Resolution)
	}
	if c.Watch.Interval < 0 {
		return fmt.Errorf("watch.interval %v is negative", c.Watch.Interval)
	}
	if _, err := c.Theme.Style(); err != nil {
		return err
	}
	return nil
}

// Style applies the theme to chart.DefaultStyle.
func (t Theme) Style() (chart.Style, error) {
	s := chart.DefaultStyle()
	fields := []struct {
		name string
		val  string
		dst  *color.RGBA
	}{
		{"background", t.Background, &s.Background},
		{"panel", t.Panel, &s.Panel},
		{"grid", t.Grid, &s.Grid},
		{"axis", t.Axis, &s.Axis},
		{"text", t.Text, &s.Text},
		{"dim", t.Dim, &s.Dim},
		{"error", t.Error, &s.Error},
	}
	for _, f := range fields {
		if f.val == "" {
			continue
		}
		c, ok := chart.ParseColor(f.val)
		if !ok {
			return chart.Style{}, fmt.Errorf("theme.%s: bad color %q", f.name, f.val)
		}
		*f.dst = c
	}
	return s, nil
}
