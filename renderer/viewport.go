package renderer

import "github.com/richinsley/gltriangle/ndc"

// Viewport is the surface size last applied by OnSurfaceChanged together
// with the capabilities enabled for it.
type Viewport struct {
	Width     int
	Height    int
	DepthTest bool
	Blend     bool
}

// Normalize maps a pixel position on the surface to normalized device
// coordinates.
func (v Viewport) Normalize(x, y float32) (float32, float32, error) {
	nx, err := ndc.NormalizeX(x, v.Width)
	if err != nil {
		return 0, 0, err
	}
	ny, err := ndc.NormalizeY(y, v.Height)
	if err != nil {
		return 0, 0, err
	}
	return nx, ny, nil
}

// Denormalize maps normalized device coordinates back to surface pixels.
func (v Viewport) Denormalize(x, y float32) (float32, float32, error) {
	px, err := ndc.DenormalizeX(x, v.Width)
	if err != nil {
		return 0, 0, err
	}
	py, err := ndc.DenormalizeY(y, v.Height)
	if err != nil {
		return 0, 0, err
	}
	return px, py, nil
}
