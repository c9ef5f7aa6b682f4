package shader

import (
	"fmt"

	"github.com/richinsley/gltriangle/diag"
	"github.com/richinsley/gltriangle/graphics"
)

// Kind is a programmable pipeline stage.
type Kind int

const (
	Vertex Kind = iota
	Fragment
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Enum returns the GL shader type for k.
func (k Kind) Enum() uint32 {
	if k == Fragment {
		return graphics.FragmentShader
	}
	return graphics.VertexShader
}

// Compile creates a shader object of the given kind and compiles source
// into it. A source that fails to compile is logged, its shader object is
// deleted and 0 is returned with a nil error. A non-nil error is always a
// *graphics.GPUFault.
func Compile(g *graphics.Guard, rec diag.Recorder, kind Kind, source string) (uint32, error) {
	gl := g.GL()

	id, err := graphics.Call(g, func() uint32 { return gl.CreateShader(kind.Enum()) })
	if err != nil {
		return 0, fmt.Errorf("create %s shader: %w", kind, err)
	}
	if id == 0 {
		rec.Record(diag.Error, "could not create new shader")
	}

	if err := g.Do(func() { gl.ShaderSource(id, source) }); err != nil {
		return 0, fmt.Errorf("source %s shader: %w", kind, err)
	}
	if err := g.Do(func() { gl.CompileShader(id) }); err != nil {
		return 0, fmt.Errorf("compile %s shader: %w", kind, err)
	}
	status, err := graphics.Call(g, func() int32 { return gl.GetShaderiv(id, graphics.CompileStatus) })
	if err != nil {
		return 0, fmt.Errorf("query %s compile status: %w", kind, err)
	}

	if status == graphics.False {
		infoLog, err := graphics.Call(g, func() string { return gl.GetShaderInfoLog(id) })
		if err != nil {
			return 0, fmt.Errorf("read %s info log: %w", kind, err)
		}
		diag.Recordf(rec, diag.Error, "could not compile shader %s:", kind)
		rec.Record(diag.Error, " "+infoLog)
		if err := g.Do(func() { gl.DeleteShader(id) }); err != nil {
			return 0, fmt.Errorf("delete %s shader: %w", kind, err)
		}
		return 0, nil
	}
	return id, nil
}

// Link attaches a vertex and a fragment shader to a new program and links
// it. Stages are not checked. A zero shader handle is skipped, which leaves
// the link to fail. A failed link is logged, the program is deleted and 0 is
// returned with a nil error.
func Link(g *graphics.Guard, rec diag.Recorder, vertex, fragment uint32) (uint32, error) {
	gl := g.GL()

	program, err := graphics.Call(g, gl.CreateProgram)
	if err != nil {
		return 0, fmt.Errorf("create program: %w", err)
	}
	if program == 0 {
		rec.Record(diag.Error, "could not create program")
	}

	for _, s := range []uint32{vertex, fragment} {
		if s == 0 {
			rec.Record(diag.Warn, "skipping attach of invalid shader handle 0")
			continue
		}
		if err := g.Do(func() { gl.AttachShader(program, s) }); err != nil {
			return 0, fmt.Errorf("attach shader %d: %w", s, err)
		}
	}

	if err := g.Do(func() { gl.LinkProgram(program) }); err != nil {
		return 0, fmt.Errorf("link program: %w", err)
	}
	status, err := graphics.Call(g, func() int32 { return gl.GetProgramiv(program, graphics.LinkStatus) })
	if err != nil {
		return 0, fmt.Errorf("query link status: %w", err)
	}

	if status != graphics.True {
		infoLog, err := graphics.Call(g, func() string { return gl.GetProgramInfoLog(program) })
		if err != nil {
			return 0, fmt.Errorf("read program info log: %w", err)
		}
		rec.Record(diag.Error, "could not link program: ")
		rec.Record(diag.Error, infoLog)
		if err := g.Do(func() { gl.DeleteProgram(program) }); err != nil {
			return 0, fmt.Errorf("delete program: %w", err)
		}
		return 0, nil
	}
	return program, nil
}
