package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "glquad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFull(t *testing.T) {
	path := writeConfig(t, `
window:
  title: quad
  width: 640
  height: 480
  vsync: true
shaders:
  vertex: shaders/quad.vert
  fragment: /opt/shaders/quad.frag
  strict: true
frame_rate: 30
clear_colour: "#102030ff"
quad:
  size: 0.5
  colour: "#00ff00ff"
log_level: debug
api:
  bind: localhost:8080
  enable_profiler: true
`)
	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "quad", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, CfgPath(filepath.Join(filepath.Dir(path), "shaders/quad.vert")), cfg.Shaders.Vertex)
	assert.Equal(t, CfgPath("/opt/shaders/quad.frag"), cfg.Shaders.Fragment)
	assert.True(t, cfg.Shaders.Strict)
	assert.Equal(t, 30, *cfg.FrameRate)
	assert.Equal(t, "#102030ff", cfg.ClearColour)
	assert.Equal(t, float32(0.5), cfg.Quad.Size)
	assert.Equal(t, "#00ff00ff", cfg.Quad.Colour)
	require.NotNil(t, cfg.Api)
	assert.Equal(t, "localhost:8080", cfg.Api.Bind)
	assert.True(t, cfg.Api.EnableProfiler)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseFillsDefaults(t *testing.T) {
	path := writeConfig(t, "frame_rate: 0\n")
	cfg, err := Parse(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, "openGL", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, CfgPath(filepath.Join(dir, "vertex.glsl")), cfg.Shaders.Vertex)
	assert.Equal(t, CfgPath(filepath.Join(dir, "fragment.glsl")), cfg.Shaders.Fragment)
	assert.Equal(t, 0, *cfg.FrameRate, "an explicit 0 disables pacing and must survive")
	assert.Equal(t, "#000000ff", cfg.ClearColour)
	assert.Equal(t, float32(0.1), cfg.Quad.Size)
	assert.Equal(t, "#ff0000ff", cfg.Quad.Colour)
	assert.Nil(t, cfg.Api)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad clear colour": "clear_colour: black\n",
		"bad quad colour":  "quad:\n  size: 0.2\n  colour: \"#ff0000\"\n",
		"quad too big":     "quad:\n  size: 2\n  colour: \"#ff0000ff\"\n",
		"negative rate":    "frame_rate: -1\n",
		"bad log level":    "log_level: chatty\n",
		"bad window":       "window:\n  width: -1\n  height: 10\n",
		"api without bind": "api:\n  enable_profiler: true\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "could not open")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Contains(t, cfg.String(), "openGL (1280x800)")
}
