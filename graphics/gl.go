package graphics

// Enum values shared by OpenGL 4.1 core and OpenGL ES 3.0.
const (
	NoError          = 0
	InvalidEnum      = 0x0500
	InvalidValue     = 0x0501
	InvalidOperation = 0x0502
	OutOfMemory      = 0x0505

	False = 0
	True  = 1

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	Float       = 0x1406
	UnsignedInt = 0x1405
	Triangles   = 0x0004

	DepthTest = 0x0B71
	Blend     = 0x0BE2

	DepthBufferBit = 0x00000100
	ColorBufferBit = 0x00004000
)

// GL is the subset of the OpenGL state machine the renderer drives. Calls
// do not report errors themselves; failures latch into a flag read by
// GetError.
type GL interface {
	GetError() uint32

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	Viewport(x, y, width, height int32)
	Enable(capability uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)

	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}
