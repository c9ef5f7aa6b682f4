// Package glfake provides an in-memory graphics.GL that records every call
// and models the object and error-flag semantics the renderer relies on.
package glfake

import (
	"fmt"
	"strings"

	"github.com/richinsley/gltriangle/graphics"
)

type Shader struct {
	Kind     uint32
	Source   string
	Compiled bool
	Deleted  bool
}

type Program struct {
	Attached []uint32
	Linked   bool
	Deleted  bool
}

// AttribPointer is the layout last given to VertexAttribPointer.
type AttribPointer struct {
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// Draw is one recorded draw call.
type Draw struct {
	Mode    uint32
	Count   int32
	Indexed bool
	Program uint32
	Vertex  uint32
	Index   uint32
}

// GL is a fake graphics.GL. The zero value is not usable; call New.
type GL struct {
	// Calls lists the name of every GL function invoked, in order.
	Calls []string

	// FailCompile decides whether a source compiles. By default a source
	// compiles when it declares main and its braces balance.
	FailCompile func(source string) bool
	// FailCreate makes CreateShader and CreateProgram return 0.
	FailCreate bool
	// Faults latches the given error code after the named call runs once.
	Faults map[string]uint32

	Shaders  map[uint32]*Shader
	Programs map[uint32]*Program
	Buffers  map[uint32][]byte
	Bound    map[uint32]uint32
	Enabled  map[uint32]bool
	Attribs  map[uint32]bool
	Pointers map[uint32]AttribPointer

	CurrentProgram uint32
	ViewportRect   [4]int32
	ClearRGBA      [4]float32
	ClearedMask    uint32
	Draws          []Draw

	next uint32
	err  uint32
}

func New() *GL {
	return &GL{
		Faults:   map[string]uint32{},
		Shaders:  map[uint32]*Shader{},
		Programs: map[uint32]*Program{},
		Buffers:  map[uint32][]byte{},
		Bound:    map[uint32]uint32{},
		Enabled:  map[uint32]bool{},
		Attribs:  map[uint32]bool{},
		Pointers: map[uint32]AttribPointer{},
	}
}

// CallsSince returns the calls recorded after the first n.
func (g *GL) CallsSince(n int) []string {
	return append([]string(nil), g.Calls[n:]...)
}

func (g *GL) record(name string) {
	g.Calls = append(g.Calls, name)
	if code, ok := g.Faults[name]; ok {
		delete(g.Faults, name)
		g.raise(code)
	}
}

// raise latches code unless an earlier error is still pending, as GL does.
func (g *GL) raise(code uint32) {
	if g.err == graphics.NoError {
		g.err = code
	}
}

func (g *GL) name() uint32 {
	g.next++
	return g.next
}

func (g *GL) GetError() uint32 {
	g.Calls = append(g.Calls, "GetError")
	code := g.err
	g.err = graphics.NoError
	return code
}

func (g *GL) CreateShader(kind uint32) uint32 {
	g.record("CreateShader")
	if kind != graphics.VertexShader && kind != graphics.FragmentShader {
		g.raise(graphics.InvalidEnum)
		return 0
	}
	if g.FailCreate {
		return 0
	}
	id := g.name()
	g.Shaders[id] = &Shader{Kind: kind}
	return id
}

func (g *GL) shader(id uint32) *Shader {
	s, ok := g.Shaders[id]
	if !ok || s.Deleted {
		g.raise(graphics.InvalidValue)
		return nil
	}
	return s
}

func (g *GL) program(id uint32) *Program {
	p, ok := g.Programs[id]
	if !ok || p.Deleted {
		g.raise(graphics.InvalidValue)
		return nil
	}
	return p
}

func (g *GL) ShaderSource(id uint32, source string) {
	g.record("ShaderSource")
	if s := g.shader(id); s != nil {
		s.Source = source
	}
}

func (g *GL) CompileShader(id uint32) {
	g.record("CompileShader")
	s := g.shader(id)
	if s == nil {
		return
	}
	fail := g.FailCompile
	if fail == nil {
		fail = malformed
	}
	s.Compiled = !fail(s.Source)
}

func malformed(source string) bool {
	return !strings.Contains(source, "void main(") ||
		strings.Count(source, "{") != strings.Count(source, "}")
}

func (g *GL) GetShaderiv(id, pname uint32) int32 {
	g.record("GetShaderiv")
	s := g.shader(id)
	if s == nil {
		return 0
	}
	switch pname {
	case graphics.CompileStatus:
		if s.Compiled {
			return graphics.True
		}
		return graphics.False
	case graphics.InfoLogLength:
		return int32(len(g.shaderLog(s)))
	}
	g.raise(graphics.InvalidEnum)
	return 0
}

func (g *GL) shaderLog(s *Shader) string {
	if s.Compiled {
		return ""
	}
	return "ERROR: 0:1: syntax error"
}

func (g *GL) GetShaderInfoLog(id uint32) string {
	g.record("GetShaderInfoLog")
	if s := g.shader(id); s != nil {
		return g.shaderLog(s)
	}
	return ""
}

func (g *GL) DeleteShader(id uint32) {
	g.record("DeleteShader")
	if id == 0 {
		return
	}
	if s := g.shader(id); s != nil {
		s.Deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	g.record("CreateProgram")
	if g.FailCreate {
		return 0
	}
	id := g.name()
	g.Programs[id] = &Program{}
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader")
	p := g.program(program)
	s := g.shader(shader)
	if p == nil || s == nil {
		return
	}
	for _, a := range p.Attached {
		if a == shader {
			g.raise(graphics.InvalidOperation)
			return
		}
	}
	p.Attached = append(p.Attached, shader)
}

func (g *GL) LinkProgram(program uint32) {
	g.record("LinkProgram")
	p := g.program(program)
	if p == nil {
		return
	}
	var vertex, fragment int
	compiled := true
	for _, id := range p.Attached {
		s := g.Shaders[id]
		compiled = compiled && s.Compiled
		switch s.Kind {
		case graphics.VertexShader:
			vertex++
		case graphics.FragmentShader:
			fragment++
		}
	}
	p.Linked = compiled && vertex == 1 && fragment == 1
}

func (g *GL) GetProgramiv(program, pname uint32) int32 {
	g.record("GetProgramiv")
	p := g.program(program)
	if p == nil {
		return 0
	}
	switch pname {
	case graphics.LinkStatus:
		if p.Linked {
			return graphics.True
		}
		return graphics.False
	case graphics.InfoLogLength:
		return int32(len(g.programLog(p)))
	}
	g.raise(graphics.InvalidEnum)
	return 0
}

func (g *GL) programLog(p *Program) string {
	if p.Linked {
		return ""
	}
	return fmt.Sprintf("error: linking requires one compiled vertex and fragment shader, have %d attached", len(p.Attached))
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	g.record("GetProgramInfoLog")
	if p := g.program(program); p != nil {
		return g.programLog(p)
	}
	return ""
}

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram")
	if program == 0 {
		return
	}
	if p := g.program(program); p != nil {
		p.Deleted = true
		if g.CurrentProgram == program {
			g.CurrentProgram = 0
		}
	}
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram")
	if program != 0 && g.program(program) == nil {
		return
	}
	g.CurrentProgram = program
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.record("Viewport")
	if width < 0 || height < 0 {
		g.raise(graphics.InvalidValue)
		return
	}
	g.ViewportRect = [4]int32{x, y, width, height}
}

func (g *GL) Enable(capability uint32) {
	g.record("Enable")
	g.Enabled[capability] = true
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.record("ClearColor")
	g.ClearRGBA = [4]float32{r, gr, b, a}
}

func (g *GL) Clear(mask uint32) {
	g.record("Clear")
	g.ClearedMask = mask
}

func (g *GL) GenBuffer() uint32 {
	g.record("GenBuffer")
	id := g.name()
	g.Buffers[id] = nil
	return id
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer")
	delete(g.Buffers, buffer)
	for target, b := range g.Bound {
		if b == buffer {
			g.Bound[target] = 0
		}
	}
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.record("BindBuffer")
	if _, ok := g.Buffers[buffer]; buffer != 0 && !ok {
		g.raise(graphics.InvalidValue)
		return
	}
	g.Bound[target] = buffer
}

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	g.record("BufferData")
	b := g.Bound[target]
	if b == 0 {
		g.raise(graphics.InvalidOperation)
		return
	}
	g.Buffers[b] = append([]byte(nil), data...)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.record("VertexAttribPointer")
	if size < 1 || size > 4 || stride < 0 {
		g.raise(graphics.InvalidValue)
		return
	}
	vbo := g.Bound[graphics.ArrayBuffer]
	if vbo == 0 {
		g.raise(graphics.InvalidOperation)
		return
	}
	g.Pointers[index] = AttribPointer{
		Size: size, Type: xtype, Normalized: normalized,
		Stride: stride, Offset: offset, Buffer: vbo,
	}
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray")
	g.Attribs[index] = true
}

func (g *GL) DisableVertexAttribArray(index uint32) {
	g.record("DisableVertexAttribArray")
	g.Attribs[index] = false
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.record("DrawArrays")
	if count < 0 {
		g.raise(graphics.InvalidValue)
		return
	}
	g.Draws = append(g.Draws, Draw{
		Mode: mode, Count: count, Program: g.CurrentProgram,
		Vertex: g.Pointers[0].Buffer,
	})
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.record("DrawElements")
	ibo := g.Bound[graphics.ElementArrayBuffer]
	if ibo == 0 {
		g.raise(graphics.InvalidOperation)
		return
	}
	g.Draws = append(g.Draws, Draw{
		Mode: mode, Count: count, Indexed: true, Program: g.CurrentProgram,
		Vertex: g.Pointers[0].Buffer, Index: ibo,
	})
}
