package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/richinsley/gltriangle/buffers"
	"github.com/richinsley/gltriangle/diag"
	"github.com/richinsley/gltriangle/graphics"
	"github.com/richinsley/gltriangle/shader"
)

var (
	ErrNoSurface = errors.New("surface has not been created")
	ErrNotSized  = errors.New("surface has not been sized")
	ErrTooLarge  = errors.New("surface size exceeds the GL viewport range")
)

// State is the lifecycle position of a Renderer.
type State int

const (
	Uninitialized State = iota
	SurfaceReady
	Sized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case SurfaceReady:
		return "surface-ready"
	case Sized:
		return "sized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	positionAttrib  = 0
	floatsPerVertex = 3
)

// Triangle returns the default vertex positions, three floats per vertex.
func Triangle() *buffers.FloatBuffer {
	return buffers.FloatsOf(
		0.0, 0.5, 0.0,
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
	)
}

// TriangleIndices returns the index list drawing Triangle in order.
func TriangleIndices() *buffers.IntBuffer {
	return buffers.IntsOf(0, 1, 2)
}

// Config holds the construction-time choices of a Renderer. Zero fields get
// defaults: indexed drawing of Triangle with a discarding recorder.
type Config struct {
	Strategy DrawStrategy
	Vertices *buffers.FloatBuffer
	Indices  *buffers.IntBuffer
	Recorder diag.Recorder
}

// Renderer owns the program, buffers and viewport of one host surface and
// drives them through the created, changed and draw-frame callbacks. The
// host must invoke the callbacks serially on the thread owning the GL
// context.
type Renderer struct {
	gl       graphics.GL
	guard    *graphics.Guard
	rec      diag.Recorder
	sources  shader.Source
	strategy DrawStrategy
	vertices *buffers.FloatBuffer
	indices  *buffers.IntBuffer

	state    State
	program  uint32
	vbo      uint32
	ibo      uint32
	viewport Viewport
	frames   uint64
}

func New(gl graphics.GL, sources shader.Source, cfg Config) *Renderer {
	if cfg.Recorder == nil {
		cfg.Recorder = diag.Discard
	}
	if cfg.Vertices == nil {
		cfg.Vertices = Triangle()
	}
	if cfg.Indices == nil {
		cfg.Indices = TriangleIndices()
	}
	return &Renderer{
		gl:       gl,
		guard:    graphics.NewGuard(gl, cfg.Recorder),
		rec:      cfg.Recorder,
		sources:  sources,
		strategy: cfg.Strategy,
		vertices: cfg.Vertices,
		indices:  cfg.Indices,
	}
}

func (r *Renderer) State() State { return r.state }
func (r *Renderer) Program() uint32 { return r.program }
func (r *Renderer) Viewport() Viewport { return r.viewport }
func (r *Renderer) Strategy() DrawStrategy { return r.strategy }
func (r *Renderer) FramesDrawn() uint64 { return r.frames }
func (r *Renderer) VertexBuffer() uint32 { return r.vbo }
func (r *Renderer) IndexBuffer() uint32 { return r.ibo }

// OnSurfaceCreated compiles and links the shader program for a freshly
// created surface. Handles from an earlier surface belong to a lost context
// and are forgotten, not deleted. A program that fails to compile or link
// leaves the renderer degraded: it still accepts size and frame callbacks,
// but frames draw nothing useful until the surface is recreated.
func (r *Renderer) OnSurfaceCreated() error {
	r.rec.Record(diag.Info, "onSurfaceCreated")
	r.state = Uninitialized
	r.program, r.vbo, r.ibo = 0, 0, 0
	r.viewport = Viewport{}

	vertexSource, err := r.sources.Source(shader.Vertex)
	if err != nil {
		return fmt.Errorf("surface setup: %w", err)
	}
	fragmentSource, err := r.sources.Source(shader.Fragment)
	if err != nil {
		return fmt.Errorf("surface setup: %w", err)
	}

	vs, err := shader.Compile(r.guard, r.rec, shader.Vertex, vertexSource)
	if err != nil {
		return fmt.Errorf("surface setup: %w", err)
	}
	fs, err := shader.Compile(r.guard, r.rec, shader.Fragment, fragmentSource)
	if err != nil {
		r.releaseShaders(vs)
		return fmt.Errorf("surface setup: %w", err)
	}
	program, err := shader.Link(r.guard, r.rec, vs, fs)
	if err != nil {
		r.releaseShaders(vs, fs)
		return fmt.Errorf("surface setup: %w", err)
	}
	r.program = program

	// attached shaders stay alive until the program is deleted
	for _, id := range []uint32{vs, fs} {
		if id == 0 {
			continue
		}
		if err := r.guard.Do(func() { r.gl.DeleteShader(id) }); err != nil {
			return fmt.Errorf("surface setup: %w", err)
		}
	}

	if program == 0 {
		r.rec.Record(diag.Warn, "shader program unavailable, frames will not render")
	}
	r.state = SurfaceReady
	return nil
}

// releaseShaders deletes the shaders compiled by an aborted setup. Faults are
// recorded by the guard and otherwise ignored.
func (r *Renderer) releaseShaders(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			_ = r.guard.Do(func() { r.gl.DeleteShader(id) })
		}
	}
}

// OnSurfaceChanged applies a new surface size and uploads the geometry into
// a fresh vertex buffer, replacing the one from the previous size event.
// Frames are refused until a size event completes without error.
func (r *Renderer) OnSurfaceChanged(width, height int) error {
	diag.Recordf(r.rec, diag.Info, "onSurfaceChanged %dx%d", width, height)
	if r.state == Uninitialized {
		return ErrNoSurface
	}
	r.state = SurfaceReady
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	g, gl := r.guard, r.gl

	if err := g.Do(func() { gl.Viewport(0, 0, int32(width), int32(height)) }); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	r.viewport = Viewport{Width: width, Height: height}
	if err := g.Do(func() { gl.Enable(graphics.DepthTest) }); err != nil {
		return fmt.Errorf("enable depth test: %w", err)
	}
	r.viewport.DepthTest = true
	if err := g.Do(func() { gl.Enable(graphics.Blend) }); err != nil {
		return fmt.Errorf("enable blending: %w", err)
	}
	r.viewport.Blend = true

	vbo, err := r.upload(graphics.ArrayBuffer, &r.vbo, r.vertices.Rewind, r.vertices.Bytes)
	if err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	if err := g.Do(func() {
		gl.VertexAttribPointer(positionAttrib, floatsPerVertex, graphics.Float, false, 0, 0)
	}); err != nil {
		return fmt.Errorf("describe vertex buffer %d: %w", vbo, err)
	}

	if r.strategy == DrawIndexed {
		if _, err := r.upload(graphics.ElementArrayBuffer, &r.ibo, r.indices.Rewind, r.indices.Bytes); err != nil {
			return fmt.Errorf("upload indices: %w", err)
		}
	}

	r.state = Sized
	return nil
}

// upload replaces the buffer stored in slot with a new one bound to target
// and filled with the bytes returned by data.
func (r *Renderer) upload(target uint32, slot *uint32, rewind func(), data func() []byte) (uint32, error) {
	g, gl := r.guard, r.gl
	if old := *slot; old != 0 {
		*slot = 0
		if err := g.Do(func() { gl.DeleteBuffer(old) }); err != nil {
			return 0, err
		}
	}
	id, err := graphics.Call(g, gl.GenBuffer)
	if err != nil {
		return 0, err
	}
	*slot = id
	if err := g.Do(func() { gl.BindBuffer(target, id) }); err != nil {
		return 0, err
	}
	rewind()
	bytes := data()
	if err := g.Do(func() { gl.BufferData(target, bytes, graphics.StaticDraw) }); err != nil {
		return 0, err
	}
	diag.Recordf(r.rec, diag.Debug, "uploaded %d bytes to buffer %d", len(bytes), id)
	return id, nil
}

// OnDrawFrame clears the surface and draws the geometry with the stored
// program, leaving no program bound and the position attribute disabled.
func (r *Renderer) OnDrawFrame() error {
	if r.state != Sized {
		return ErrNotSized
	}
	gl := r.gl
	vertexCount := int32(r.vertices.Capacity() / floatsPerVertex)
	indexCount := int32(r.indices.Capacity())

	steps := []struct {
		name string
		fn   func()
	}{
		{"clear color", func() { gl.ClearColor(0, 0, 0, 0) }},
		{"clear", func() { gl.Clear(graphics.DepthBufferBit | graphics.ColorBufferBit) }},
		{"enable position attribute", func() { gl.EnableVertexAttribArray(positionAttrib) }},
		{"use program", func() { gl.UseProgram(r.program) }},
		{"draw " + r.strategy.String(), func() { r.strategy.draw(gl, vertexCount, indexCount) }},
		{"disable position attribute", func() { gl.DisableVertexAttribArray(positionAttrib) }},
		{"release program", func() { gl.UseProgram(0) }},
	}
	for _, step := range steps {
		if err := r.guard.Do(step.fn); err != nil {
			return fmt.Errorf("draw frame %d: %s: %w", r.frames, step.name, err)
		}
	}
	r.frames++
	return nil
}

// Destroy deletes the GL objects the renderer created and returns it to
// Uninitialized.
func (r *Renderer) Destroy() error {
	var errs []error
	for _, id := range []uint32{r.vbo, r.ibo} {
		if id != 0 {
			errs = append(errs, r.guard.Do(func() { r.gl.DeleteBuffer(id) }))
		}
	}
	if r.program != 0 {
		errs = append(errs, r.guard.Do(func() { r.gl.DeleteProgram(r.program) }))
	}
	r.program, r.vbo, r.ibo = 0, 0, 0
	r.state = Uninitialized
	return errors.Join(errs...)
}
