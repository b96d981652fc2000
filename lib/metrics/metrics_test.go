package metrics

import (
	"testing"

	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordShaderLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(ShaderLoads.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(ShaderLoads.WithLabelValues("compile_failed"))
	fragBefore := testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("FRAGMENT"))
	progBefore := testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("PROGRAM"))
	fileBefore := testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("FILE"))

	RecordShaderLoad(&shaders.Result{Program: 3, Status: shaders.OK})
	RecordShaderLoad(&shaders.Result{
		Program: 4,
		Status:  shaders.CompileFailed,
		Diagnostics: []shaders.Diagnostic{
			{Kind: shaders.CompileError, Stage: shaders.FragmentStage},
			{Kind: shaders.LinkError, Stage: shaders.ProgramStage},
		},
	})
	RecordShaderLoad(&shaders.Result{
		Status:      shaders.IOFailed,
		Diagnostics: []shaders.Diagnostic{{Kind: shaders.IOError, Path: "x.glsl"}},
	})

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ShaderLoads.WithLabelValues("ok")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(ShaderLoads.WithLabelValues("compile_failed")))
	assert.Equal(t, fragBefore+1, testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("FRAGMENT")))
	assert.Equal(t, progBefore+1, testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("PROGRAM")))
	assert.Equal(t, fileBefore+1, testutil.ToFloat64(ShaderDiagnostics.WithLabelValues("FILE")))
}

func TestRecordFrame(t *testing.T) {
	frames := testutil.ToFloat64(FramesRendered)
	overruns := testutil.ToFloat64(FrameOverruns)

	RecordFrame(false)
	RecordFrame(true)

	assert.Equal(t, frames+2, testutil.ToFloat64(FramesRendered))
	assert.Equal(t, overruns+1, testutil.ToFloat64(FrameOverruns))
}
