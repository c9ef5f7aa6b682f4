package graphics

import (
	"errors"
	"fmt"

	"github.com/richinsley/gltriangle/diag"
)

// GPUFault is returned when a guarded call leaves the GL error flag set.
type GPUFault struct {
	Code uint32
}

func (f *GPUFault) Error() string {
	return fmt.Sprintf("glError 0x%x", f.Code)
}

// IsGPUFault reports whether err carries a GPUFault and returns it.
func IsGPUFault(err error) (*GPUFault, bool) {
	var fault *GPUFault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}

// Guard runs GL work and checks the error flag after every unit.
type Guard struct {
	gl  GL
	rec diag.Recorder
}

func NewGuard(gl GL, rec diag.Recorder) *Guard {
	if rec == nil {
		rec = diag.Discard
	}
	return &Guard{gl: gl, rec: rec}
}

// GL returns the API the guard checks.
func (g *Guard) GL() GL { return g.gl }

// Do runs fn and returns a *GPUFault if it raised a GL error.
func (g *Guard) Do(fn func()) error {
	fn()
	return g.check()
}

// Call runs fn through g and returns its result alongside any GPU fault.
func Call[T any](g *Guard, fn func() T) (T, error) {
	v := fn()
	return v, g.check()
}

func (g *Guard) check() error {
	code := g.gl.GetError()
	if code == NoError {
		return nil
	}
	fault := &GPUFault{Code: code}
	g.rec.Record(diag.Error, fault.Error())
	return fault
}
