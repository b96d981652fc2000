package viewer

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fosdem/glquad/lib/api"
	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/kbdctl"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/fosdem/glquad/lib/sink/windowsink"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/fosdem/glquad/lib/utils"
)

// Viewer owns the window, the program and the quad. Everything except
// RequestShutdown and ShaderResult must run on the GL thread.
type Viewer struct {
	cfg    *config.Config
	Stats  *stats.Stats
	Window *windowsink.WindowSink

	shutdownRequested atomic.Bool
	shaderResult      atomic.Pointer[shaders.Result]
}

func New(cfg *config.Config) *Viewer {
	return &Viewer{
		cfg:    cfg,
		Stats:  stats.New(),
		Window: windowsink.New(cfg.Window),
	}
}

func (v *Viewer) RequestShutdown() {
	v.shutdownRequested.Store(true)
}

func (v *Viewer) ShutdownRequested() bool {
	return v.shutdownRequested.Load()
}

// ShaderResult is the outcome of the last program load, or nil before
// the first one.
func (v *Viewer) ShaderResult() *shaders.Result {
	return v.shaderResult.Load()
}

// CheckShaderResult decides whether a load outcome is good enough to
// start rendering with. Unreadable sources always are fatal; compile and
// link errors only when strict is set.
func CheckShaderResult(r *shaders.Result, strict bool) error {
	switch {
	case r.Status == shaders.IOFailed:
		return fmt.Errorf("could not read shader sources: %w", r.Err())
	case !r.Usable() && strict:
		return fmt.Errorf("shader program is broken: %w", r.Err())
	case !r.Usable():
		slog.Warn(
			fmt.Sprintf("continuing with a broken shader program (%s)", r.Status),
			slog.String("module", "viewer"),
		)
	}
	return nil
}

func (v *Viewer) loadProgram() (uint32, error) {
	r := shaders.Load(shaders.GLDriver{}, string(v.cfg.Shaders.Vertex), string(v.cfg.Shaders.Fragment))
	v.shaderResult.Store(r)
	metrics.RecordShaderLoad(r)

	if err := CheckShaderResult(r, v.cfg.Shaders.Strict); err != nil {
		if r.Program != 0 {
			shaders.GLDriver{}.DeleteProgram(r.Program)
		}
		return 0, err
	}
	return r.Program, nil
}

// Run opens the window and renders the quad until the window is closed or
// a shutdown is requested.
func (v *Viewer) Run() error {
	err := v.Window.Start()
	if err != nil {
		return fmt.Errorf("could not open window: %w", err)
	}
	defer v.Window.Destroy()

	err = rendering.Init()
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}
	v.Window.LogGLInfo()

	theApi := api.ServeInBackground(v.cfg.Api, v, v.Stats)
	if theApi != nil {
		defer theApi.Close()
	}

	program, err := v.loadProgram()
	if err != nil {
		return err
	}
	defer shaders.GLDriver{}.DeleteProgram(program)

	quad := rendering.NewQuad(v.cfg.Quad.Size, utils.ColourParse(v.cfg.Quad.Colour))
	quad.Upload()
	defer quad.Delete()

	kbdctl.SetupShortcutKeys(v, v.Window)

	clearColour := utils.ColourParse(v.cfg.ClearColour)
	pacer := utils.NewFramePacer(*v.cfg.FrameRate)
	var deltaTimer utils.DeltaTimer

	v.log("rendering at %d fps", *v.cfg.FrameRate)
	for !v.ShutdownRequested() {
		pacer.Start()

		rendering.Clear(clearColour)
		quad.Draw(program)
		v.Window.SwapBuffers()

		kbdctl.Poll()
		if v.Window.ShouldClose() {
			v.RequestShutdown()
		}

		overrun := pacer.Wait()
		v.Stats.Update(deltaTimer.Next(), overrun)
		metrics.RecordFrame(overrun)
	}
	v.log("shutting down")

	return nil
}

func (v *Viewer) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "viewer"))
}
