package rendering

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glquad/lib/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	slog.Info(fmt.Sprintf("OpenGL version '%s'", version), slog.String("module", "rendering"))

	return nil
}

// Clear fills the current framebuffer with c.
func Clear(c utils.Colour) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
