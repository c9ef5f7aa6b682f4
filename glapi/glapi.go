// Package glapi implements graphics.GL on top of the go-gl OpenGL 4.1 core
// bindings. All methods must be called on the thread that owns the current
// context.
package glapi

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/gltriangle/graphics"
)

var glInitOnce sync.Once

var _ graphics.GL = (*GL)(nil)

// GL forwards to the OpenGL function pointers loaded for the current
// context.
type GL struct {
	vao uint32
}

// New loads the GL function pointers once per process and binds a vertex
// array object, which core profiles require before any attribute setup. The
// caller must have made a context current.
func New() (*GL, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	g := &GL{}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	return g, nil
}

// Version returns the GL_VERSION string of the current context.
func (g *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Destroy releases the vertex array object created by New.
func (g *GL) Destroy() {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &g.vao)
}

func (g *GL) GetError() uint32 { return gl.GetError() }

func (g *GL) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (g *GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (g *GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (g *GL) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (g *GL) CreateProgram() uint32 { return gl.CreateProgram() }

func (g *GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (g *GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (g *GL) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (g *GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (g *GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (g *GL) Enable(capability uint32) { gl.Enable(capability) }

func (g *GL) ClearColor(r, gr, b, a float32) { gl.ClearColor(r, gr, b, a) }

func (g *GL) Clear(mask uint32) { gl.Clear(mask) }

func (g *GL) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (g *GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (g *GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (g *GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (g *GL) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (g *GL) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}
