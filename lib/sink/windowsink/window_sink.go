package windowsink

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glquad/lib/config"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowSink struct {
	Name   string
	Width  int
	Height int
	Window *glfw.Window

	cfg *config.WindowCfg
}

func New(cfg *config.WindowCfg) *WindowSink {
	return &WindowSink{
		Name:   cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		cfg:    cfg,
	}
}

// Start opens the window and makes its GL context current on the calling
// thread.
func (w *WindowSink) Start() error {
	if w.Window != nil {
		return nil
	}
	window, err := w.makeWindow()
	if err != nil {
		return err
	}
	w.Window = window
	return nil
}

func (w *WindowSink) makeWindow() (*glfw.Window, error) {
	w.debug("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfwBool(w.cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(w.Width, w.Height, w.Name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}

	window.MakeContextCurrent()
	if w.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return window, nil
}

// LogGLInfo must run after rendering.Init has loaded the GL functions.
func (w *WindowSink) LogGLInfo() {
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))

	w.log("OpenGL version %s / %s / %s", vendor, renderer, version)
}

func (w *WindowSink) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *WindowSink) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *WindowSink) Destroy() {
	if w.Window != nil {
		w.Window.Destroy()
		w.Window = nil
	}
	glfw.Terminate()
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *WindowSink) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", w.Name))
}

func (w *WindowSink) debug(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...), slog.String("module", w.Name))
}
