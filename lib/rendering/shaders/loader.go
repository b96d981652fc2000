package shaders

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// InfoLogSize bounds the compiler and linker logs kept per diagnostic.
const InfoLogSize = 1024

type Status int

const (
	OK Status = iota
	IOFailed
	CompileFailed
	LinkFailed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case IOFailed:
		return "io_failed"
	case CompileFailed:
		return "compile_failed"
	case LinkFailed:
		return "link_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Stage string

const (
	VertexStage   Stage = "VERTEX"
	FragmentStage Stage = "FRAGMENT"
	ProgramStage  Stage = "PROGRAM"
)

type DiagnosticKind int

const (
	IOError DiagnosticKind = iota
	CompileError
	LinkError
)

// Diagnostic is one problem found while loading a program. String gives
// the line written to the error log.
type Diagnostic struct {
	Kind  DiagnosticKind
	Stage Stage
	Path  string
	Log   string
	// Empty is set on an IOError for a file that was read but had no content
	Empty bool
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case IOError:
		if d.Empty {
			return fmt.Sprintf("Shader source is empty: %s", d.Path)
		}
		return fmt.Sprintf("Failed to open file: %s", d.Path)
	case CompileError:
		return fmt.Sprintf("Shader Compilation Error of type: %s\n%s", d.Stage, d.Log)
	default:
		return fmt.Sprintf("Program Linking Error of type: %s\n%s", d.Stage, d.Log)
	}
}

func (d Diagnostic) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Result is what Load hands back. Program is 0 exactly when Status is
// IOFailed. For CompileFailed and LinkFailed the program exists but is
// probably unusable; it is up to the caller whether that is fatal.
type Result struct {
	Program     uint32       `json:"program"`
	Status      Status       `json:"status"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r *Result) Usable() bool {
	return r.Status == OK
}

// Err joins all diagnostics into one error, or returns nil when loading
// went fine.
func (r *Result) Err() error {
	if r.Status == OK {
		return nil
	}
	errs := make([]error, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		errs = append(errs, errors.New(d.String()))
	}
	return fmt.Errorf("%s: %w", r.Status, errors.Join(errs...))
}

// Load reads a vertex and a fragment shader from disk, compiles both and
// links them into a program. Only unreadable or empty files abort early.
// Compile errors still lead to a link attempt so every diagnostic shows
// up in one go. Both stage objects are always deleted before returning.
func Load(drv Driver, vertexPath, fragmentPath string) *Result {
	r := &Result{}

	vertexSrc, vertexOK := r.readSource(vertexPath)
	fragmentSrc, fragmentOK := r.readSource(fragmentPath)
	if !vertexOK || !fragmentOK {
		r.Status = IOFailed
		return r
	}

	vertexShader := r.compile(drv, vertexSrc, VertexStage)
	fragmentShader := r.compile(drv, fragmentSrc, FragmentStage)

	program := drv.CreateProgram()
	drv.AttachShader(program, vertexShader)
	drv.AttachShader(program, fragmentShader)
	drv.LinkProgram(program)
	if !drv.ProgramLinked(program) {
		r.report(Diagnostic{
			Kind:  LinkError,
			Stage: ProgramStage,
			Log:   truncate(drv.ProgramInfoLog(program)),
		})
		if r.Status == OK {
			r.Status = LinkFailed
		}
	}

	drv.DeleteShader(vertexShader)
	drv.DeleteShader(fragmentShader)

	r.Program = program
	return r
}

// LoadProgram is Load without the tagged result: 0 when a source could
// not be read, otherwise the program handle, usable or not.
func LoadProgram(vertexPath, fragmentPath string) uint32 {
	return Load(GLDriver{}, vertexPath, fragmentPath).Program
}

func (r *Result) readSource(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		r.report(Diagnostic{Kind: IOError, Path: path})
		return "", false
	}
	if len(b) == 0 {
		r.report(Diagnostic{Kind: IOError, Path: path, Empty: true})
		return "", false
	}
	return string(b), true
}

func (r *Result) compile(drv Driver, source string, stage Stage) uint32 {
	shader := drv.CreateShader(stage)
	drv.CompileShader(shader, source)
	if !drv.ShaderCompiled(shader) {
		r.report(Diagnostic{
			Kind:  CompileError,
			Stage: stage,
			Log:   truncate(drv.ShaderInfoLog(shader)),
		})
		r.Status = CompileFailed
	}
	return shader
}

func (r *Result) report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	slog.Error(d.String(), slog.String("module", "shaders"))
}

func truncate(log string) string {
	if len(log) >= InfoLogSize {
		return log[:InfoLogSize-1]
	}
	return log
}
