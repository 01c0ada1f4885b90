package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"DoodleBoard/internal/state"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "DOODLEBOARD_CONFIG"

// MaxDimension caps the canvas width and height.
const MaxDimension = 8192

// Config holds the application settings.
type Config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Color      string `toml:"color"`
	LineWidth  int    `toml:"line_width"`
	SaveDir    string `toml:"save_dir"`
	OutboxDir  string `toml:"outbox_dir"`
	PDF        bool   `toml:"pdf"`
}

// New returns the defaults: an 800x600 white canvas, black pen at width 5.
func New() *Config {
	return &Config{
		Width:      800,
		Height:     600,
		Background: "#ffffff",
		Color:      "#000000",
		LineWidth:  5,
		SaveDir:    defaultDir(os.UserHomeDir, "Pictures", "doodles"),
		OutboxDir:  defaultDir(os.UserConfigDir, "doodleboard", "outbox"),
	}
}

// Parse reads TOML from r on top of the defaults. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Load reads the config at path. An empty path falls back to $DOODLEBOARD_CONFIG
// and then the user config dir; a missing default file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPath)
		explicit = path != ""
	}
	if !explicit {
		path = defaultDir(os.UserConfigDir, "doodleboard", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[CONFIG] Loaded %s", path)
	return cfg, nil
}

// Normalize replaces out-of-range values with usable ones.
func (c *Config) Normalize() {
	def := New()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		log.Printf("[CONFIG] Canvas %dx%d too large, capping at %d", c.Width, c.Height, MaxDimension)
		c.Width = min(c.Width, MaxDimension)
		c.Height = min(c.Height, MaxDimension)
	}
	if norm, err := state.ParseColor(c.Background); err == nil {
		c.Background = norm
	} else {
		log.Printf("[CONFIG] Bad background %q, using %s", c.Background, def.Background)
		c.Background = def.Background
	}
	if norm, err := state.ParseColor(c.Color); err == nil {
		c.Color = norm
	} else {
		log.Printf("[CONFIG] Bad color %q, using %s", c.Color, def.Color)
		c.Color = def.Color
	}
	c.LineWidth = state.ClampWidth(c.LineWidth)
	if c.SaveDir == "" {
		c.SaveDir = def.SaveDir
	}
	if c.OutboxDir == "" {
		c.OutboxDir = def.OutboxDir
	}
}

// Tools is the initial tool selection.
func (c *Config) Tools() state.ToolSelection {
	return state.ToolSelection{Color: c.Color, Width: c.LineWidth}
}

// BackgroundColor decodes Background, falling back to white.
func (c *Config) BackgroundColor() color.Color {
	bg, err := state.DecodeColor(c.Background)
	if err != nil {
		return color.White
	}
	return bg
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func defaultDir(base func() (string, error), elem ...string) string {
	dir, err := base()
	if err != nil {
		dir = "."
	}
	return filepath.Join(append([]string{dir}, elem...)...)
}
