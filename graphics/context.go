package graphics

// Context defines the interface for the host surface that owns the OpenGL
// context the renderer draws into.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
}
