package shader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gltriangle/diag"
	"github.com/richinsley/gltriangle/graphics"
	"github.com/richinsley/gltriangle/graphics/glfake"
)

const (
	goodVertex   = "#version 300 es\nlayout (location = 0) in vec3 a_position;\nvoid main() { gl_Position = vec4(a_position, 1.0); }\n"
	goodFragment = "#version 300 es\nprecision mediump float;\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
	badVertex    = "#version 300 es\nlayout (location = 0) in vec3 a_position;\nvoid main() { gl_Position = vec4(a_position, 1.0);\n"
)

func setup() (*glfake.GL, *graphics.Guard, *diag.Capture) {
	gl := glfake.New()
	rec := &diag.Capture{}
	return gl, graphics.NewGuard(gl, rec), rec
}

func TestCompile(t *testing.T) {
	gl, g, rec := setup()

	vs, err := Compile(g, rec, Vertex, goodVertex)
	require.NoError(t, err)
	require.NotZero(t, vs)
	assert.Equal(t, uint32(graphics.VertexShader), gl.Shaders[vs].Kind)
	assert.True(t, gl.Shaders[vs].Compiled)
	assert.Equal(t, goodVertex, gl.Shaders[vs].Source)

	fs, err := Compile(g, rec, Fragment, goodFragment)
	require.NoError(t, err)
	assert.Equal(t, uint32(graphics.FragmentShader), gl.Shaders[fs].Kind)
	assert.Empty(t, rec.Entries())
}

func TestCompileSyntaxError(t *testing.T) {
	gl, g, rec := setup()

	var id uint32
	var err error
	require.NotPanics(t, func() { id, err = Compile(g, rec, Vertex, badVertex) })
	require.NoError(t, err)
	assert.Zero(t, id)

	msgs := rec.Messages(diag.Error)
	require.Len(t, msgs, 2)
	assert.Equal(t, "could not compile shader VERTEX:", msgs[0])
	assert.Contains(t, msgs[1], "syntax error")

	require.Len(t, gl.Shaders, 1)
	for _, s := range gl.Shaders {
		assert.True(t, s.Deleted)
	}
}

func TestCompileZeroIffStatusFails(t *testing.T) {
	for _, fail := range []bool{false, true} {
		gl, g, rec := setup()
		gl.FailCompile = func(string) bool { return fail }
		id, err := Compile(g, rec, Fragment, "anything")
		require.NoError(t, err)
		assert.Equal(t, fail, id == 0)
	}
}

func TestCompileCreateFailureContinues(t *testing.T) {
	gl, g, rec := setup()
	gl.FailCreate = true

	id, err := Compile(g, rec, Vertex, goodVertex)
	assert.Zero(t, id)
	fault, ok := graphics.IsGPUFault(err)
	require.True(t, ok)
	assert.Equal(t, uint32(graphics.InvalidValue), fault.Code)

	msgs := rec.Messages(diag.Error)
	assert.Equal(t, "could not create new shader", msgs[0])
	assert.Equal(t, []string{"CreateShader", "GetError", "ShaderSource", "GetError"}, gl.Calls)
}

func TestCompileFaultAborts(t *testing.T) {
	gl, g, rec := setup()
	gl.Faults["CompileShader"] = graphics.OutOfMemory

	id, err := Compile(g, rec, Vertex, goodVertex)
	assert.Zero(t, id)
	fault, ok := graphics.IsGPUFault(err)
	require.True(t, ok)
	assert.Equal(t, uint32(graphics.OutOfMemory), fault.Code)
	assert.NotContains(t, gl.Calls, "GetShaderiv")
}

func TestLink(t *testing.T) {
	gl, g, rec := setup()
	vs, _ := Compile(g, rec, Vertex, goodVertex)
	fs, _ := Compile(g, rec, Fragment, goodFragment)

	p, err := Link(g, rec, vs, fs)
	require.NoError(t, err)
	require.NotZero(t, p)
	assert.True(t, gl.Programs[p].Linked)
	assert.Equal(t, []uint32{vs, fs}, gl.Programs[p].Attached)
	assert.Empty(t, rec.Entries())
}

func TestLinkWithZeroHandle(t *testing.T) {
	for _, tc := range []struct {
		name       string
		vertex     bool
		fragment   bool
		wantAttach int
	}{
		{"missing vertex", false, true, 1},
		{"missing fragment", true, false, 1},
		{"missing both", false, false, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gl, g, rec := setup()
			var vs, fs uint32
			if tc.vertex {
				vs, _ = Compile(g, rec, Vertex, goodVertex)
			}
			if tc.fragment {
				fs, _ = Compile(g, rec, Fragment, goodFragment)
			}

			p, err := Link(g, rec, vs, fs)
			require.NoError(t, err)
			assert.Zero(t, p)
			assert.Contains(t, gl.Calls, "LinkProgram")

			msgs := rec.Messages(diag.Error)
			require.Len(t, msgs, 2)
			assert.Equal(t, "could not link program: ", msgs[0])

			require.Len(t, gl.Programs, 1)
			for _, prog := range gl.Programs {
				assert.True(t, prog.Deleted)
				assert.Len(t, prog.Attached, tc.wantAttach)
			}
		})
	}
}

func TestLinkDoesNotCheckStages(t *testing.T) {
	gl, g, rec := setup()
	a, _ := Compile(g, rec, Vertex, goodVertex)
	b, _ := Compile(g, rec, Vertex, goodVertex)

	p, err := Link(g, rec, a, b)
	require.NoError(t, err)
	assert.Zero(t, p)
	assert.Equal(t, 2, strings.Count(strings.Join(gl.Calls, " "), "AttachShader"))
}

func TestLinkZeroIffStatusFails(t *testing.T) {
	gl, g, rec := setup()
	vs, _ := Compile(g, rec, Vertex, goodVertex)
	gl.FailCompile = func(string) bool { return false }
	fs, _ := Compile(g, rec, Fragment, goodFragment)
	p, err := Link(g, rec, vs, fs)
	require.NoError(t, err)
	assert.NotZero(t, p)

	// a shader that slipped through uncompiled fails the link
	gl.Shaders[fs].Compiled = false
	p, err = Link(g, rec, vs, fs)
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestLinkCreateFailure(t *testing.T) {
	gl, g, rec := setup()
	vs, _ := Compile(g, rec, Vertex, goodVertex)
	fs, _ := Compile(g, rec, Fragment, goodFragment)
	gl.FailCreate = true

	p, err := Link(g, rec, vs, fs)
	assert.Zero(t, p)
	_, ok := graphics.IsGPUFault(err)
	assert.True(t, ok)
	assert.Equal(t, "could not create program", rec.Messages(diag.Error)[0])
}

func TestKind(t *testing.T) {
	assert.Equal(t, "VERTEX", Vertex.String())
	assert.Equal(t, "FRAGMENT", Fragment.String())
	assert.Equal(t, uint32(graphics.FragmentShader), Fragment.Enum())
	assert.Equal(t, uint32(graphics.VertexShader), Vertex.Enum())
}

func TestEmbeddedSourcesCompile(t *testing.T) {
	gl, g, rec := setup()
	src := Embedded()
	for _, kind := range []Kind{Vertex, Fragment} {
		text, err := src.Source(kind)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(text, "#version 300 es"))
		id, err := Compile(g, rec, kind, text)
		require.NoError(t, err)
		assert.NotZero(t, id)
	}
	assert.Len(t, gl.Shaders, 2)
}

func TestResources(t *testing.T) {
	fsys := fstest.MapFS{
		"tri.vert": {Data: []byte(goodVertex)},
		"tri.frag": {Data: []byte(goodFragment)},
		"bad.frag": {Data: []byte{0xff, 0xfe}},
	}
	r := Resources{FS: fsys, Vertex: "tri.vert", Fragment: "tri.frag"}
	text, err := r.Source(Vertex)
	require.NoError(t, err)
	assert.Equal(t, goodVertex, text)
	text, err = r.Source(Fragment)
	require.NoError(t, err)
	assert.Equal(t, goodFragment, text)

	_, err = Dir(fsys).Source(Vertex)
	assert.ErrorContains(t, err, "vertex_shader.glsl")

	r.Fragment = "bad.frag"
	_, err = r.Source(Fragment)
	assert.ErrorContains(t, err, "UTF-8")
}
