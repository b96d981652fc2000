package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/glquad/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window      *WindowCfg
	Shaders     *ShadersCfg
	FrameRate   *int   `yaml:"frame_rate"`
	ClearColour string `yaml:"clear_colour"`
	Quad        *QuadCfg
	LogLevel    string `yaml:"log_level"`
	Api         *ApiCfg
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool `yaml:"vsync"`
}

type ShadersCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
	// Strict turns compile and link errors into a fatal error at startup
	Strict bool
}

type QuadCfg struct {
	Size   float32
	Colour string
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default is what runs when no config file is given: a 1280x800 window
// showing a small red square, shaders read from the working directory.
func Default() *Config {
	frameRate := 60
	return &Config{
		Window: &WindowCfg{
			Title:  "openGL",
			Width:  1280,
			Height: 800,
		},
		Shaders: &ShadersCfg{
			Vertex:   "vertex.glsl",
			Fragment: "fragment.glsl",
		},
		FrameRate:   &frameRate,
		ClearColour: "#000000ff",
		Quad: &QuadCfg{
			Size:   0.1,
			Colour: "#ff0000ff",
		},
		LogLevel: "info",
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), slog.String("module", "config"))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	cfg.fillDefaults(UnmarshalBase)
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

// fillDefaults sets everything the file left out. Default shader paths
// are taken relative to base.
func (c *Config) fillDefaults(base string) {
	d := Default()
	if c.Window == nil {
		c.Window = d.Window
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 && c.Window.Height == 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Shaders == nil {
		c.Shaders = &ShadersCfg{}
	}
	if c.Shaders.Vertex == "" {
		c.Shaders.Vertex = CfgPath(filepath.Join(base, string(d.Shaders.Vertex)))
	}
	if c.Shaders.Fragment == "" {
		c.Shaders.Fragment = CfgPath(filepath.Join(base, string(d.Shaders.Fragment)))
	}
	if c.FrameRate == nil {
		c.FrameRate = d.FrameRate
	}
	if c.ClearColour == "" {
		c.ClearColour = d.ClearColour
	}
	if c.Quad == nil {
		c.Quad = d.Quad
	}
	if c.Quad.Size == 0 {
		c.Quad.Size = d.Quad.Size
	}
	if c.Quad.Colour == "" {
		c.Quad.Colour = d.Quad.Colour
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

func (c *Config) Validate() error {
	if c.Window == nil {
		return fmt.Errorf("window must be specified")
	}
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	if c.Shaders == nil {
		return fmt.Errorf("shaders must be specified")
	}
	if err := c.Shaders.Validate(); err != nil {
		return fmt.Errorf("shaders are invalid: %w", err)
	}
	if c.Quad == nil {
		return fmt.Errorf("quad must be specified")
	}
	if err := c.Quad.Validate(); err != nil {
		return fmt.Errorf("quad is invalid: %w", err)
	}
	if c.FrameRate == nil {
		return fmt.Errorf("frame_rate must be specified")
	} else if *c.FrameRate < 0 {
		return fmt.Errorf("frame_rate must be nonnegative")
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api.bind must be set when api is configured")
	}
	return nil
}

// Level maps log_level onto a slog level; empty means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level %q is invalid: %w", c.LogLevel, err)
	}
	return l, nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %s (%dx%d)\n", c.Window.Title, c.Window.Width, c.Window.Height))

	b.WriteString("\nShaders:\n")
	b.WriteString(fmt.Sprintf("  vertex:   %s\n", c.Shaders.Vertex))
	b.WriteString(fmt.Sprintf("  fragment: %s\n", c.Shaders.Fragment))

	b.WriteString("\nQuad:\n")
	b.WriteString(fmt.Sprintf("  size %g, colour %s\n", c.Quad.Size, c.Quad.Colour))

	b.WriteString(fmt.Sprintf("\nFrame rate: %d\n", *c.FrameRate))
	if c.Api != nil {
		b.WriteString(fmt.Sprintf("API: %s\n", c.Api.Bind))
	}

	return b.String()
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("width and height must be positive (got %dx%d)", w.Width, w.Height)
	}
	return nil
}

func (s *ShadersCfg) Validate() error {
	if s.Vertex == "" {
		return fmt.Errorf("vertex shader path must be specified")
	}
	if s.Fragment == "" {
		return fmt.Errorf("fragment shader path must be specified")
	}
	return nil
}

func (q *QuadCfg) Validate() error {
	if q.Size <= 0 || q.Size > 1 {
		return fmt.Errorf("size must be in (0, 1], got %g", q.Size)
	}
	if !utils.ColourValidate(q.Colour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", q.Colour)
	}
	return nil
}
