package kbdctl

import (
	"log/slog"

	"github.com/fosdem/glquad/lib/sink/windowsink"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Quitter is whatever should stop when the user asks to quit.
type Quitter interface {
	RequestShutdown()
}

func SetupShortcutKeys(q Quitter, ws *windowsink.WindowSink) {
	ws.Window.SetKeyCallback(keyCallback(q))
}

func Poll() {
	glfw.PollEvents()
}

func keyCallback(q Quitter) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if isQuit(key, action, mods) {
			slog.Info("told to quit, exiting", slog.String("module", "kbdctl"))
			q.RequestShutdown()
		}
	}
}

// isQuit matches Escape or Ctrl+Q on release.
func isQuit(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	if action != glfw.Release {
		return false
	}
	return key == glfw.KeyEscape || (key == glfw.KeyQ && mods&glfw.ModControl != 0)
}
