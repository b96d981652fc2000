package shaders

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver is the slice of the GL API needed to build a program. All calls
// must happen on the thread that owns the GL context.
type Driver interface {
	CreateShader(stage Stage) uint32
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
}

// GLDriver talks to the current OpenGL 4.1 core context.
type GLDriver struct{}

func (GLDriver) CreateShader(stage Stage) uint32 {
	switch stage {
	case FragmentStage:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (GLDriver) CompileShader(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)
}

func (GLDriver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ShaderInfoLog(shader uint32) string {
	clog := strings.Repeat("\x00", InfoLogSize)
	gl.GetShaderInfoLog(shader, InfoLogSize, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (GLDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (GLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (GLDriver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ProgramInfoLog(program uint32) string {
	logmsg := strings.Repeat("\x00", InfoLogSize)
	gl.GetProgramInfoLog(program, InfoLogSize, nil, gl.Str(logmsg))
	return strings.TrimRight(logmsg, "\x00")
}

func (GLDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}
