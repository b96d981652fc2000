package metrics

import (
	"net/http"

	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ShaderLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glquad_shader_loads_total",
		Help: "Total number of shader program loads by outcome",
	}, []string{"status"})
	ShaderDiagnostics = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glquad_shader_diagnostics_total",
		Help: "Total number of shader diagnostics reported, by stage",
	}, []string{"stage"})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_frames_rendered_total",
		Help: "Total number of frames rendered",
	})
	FrameOverruns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_frame_overruns_total",
		Help: "Total number of frames that took longer than the frame interval",
	})
)

// RecordShaderLoad counts one Load outcome and its diagnostics. IO
// diagnostics have no stage and are counted under "FILE".
func RecordShaderLoad(r *shaders.Result) {
	ShaderLoads.WithLabelValues(r.Status.String()).Inc()
	for _, d := range r.Diagnostics {
		stage := string(d.Stage)
		if stage == "" {
			stage = "FILE"
		}
		ShaderDiagnostics.WithLabelValues(stage).Inc()
	}
}

// RecordFrame counts a rendered frame.
func RecordFrame(overrun bool) {
	FramesRendered.Inc()
	if overrun {
		FrameOverruns.Inc()
	}
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
