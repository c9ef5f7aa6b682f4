// Package ndc maps surface pixels to normalized device coordinates and holds
// the small matrix helpers the pipeline needs.
package ndc

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrZeroDimension is returned when a surface axis has no extent.
var ErrZeroDimension = errors.New("surface dimension must be positive")

func checkDim(dim int) error {
	if dim <= 0 {
		return fmt.Errorf("%w: got %d", ErrZeroDimension, dim)
	}
	return nil
}

// NormalizeX maps a pixel column in [0, width] to [-1, 1].
func NormalizeX(screenX float32, width int) (float32, error) {
	if err := checkDim(width); err != nil {
		return 0, err
	}
	return screenX/float32(width)*2 - 1, nil
}

// NormalizeY maps a pixel row in [0, height] to [1, -1]; screen Y grows
// downward, normalized Y grows upward.
func NormalizeY(screenY float32, height int) (float32, error) {
	if err := checkDim(height); err != nil {
		return 0, err
	}
	return 1 - screenY/float32(height)*2, nil
}

func DenormalizeX(x float32, width int) (float32, error) {
	if err := checkDim(width); err != nil {
		return 0, err
	}
	return (x + 1) / 2 * float32(width), nil
}

func DenormalizeY(y float32, height int) (float32, error) {
	if err := checkDim(height); err != nil {
		return 0, err
	}
	return (1 - y) / 2 * float32(height), nil
}

// Nearer reports which of a and b lies closer to target: -1 for a, 1 for b,
// 0 when they are equally distant.
func Nearer(target, a, b float32) int {
	da := math.Abs(float64(target - a))
	db := math.Abs(float64(target - b))
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	}
	return 0
}

var identity = mgl32.Ident4()

// Identity4 returns a fresh 4x4 identity matrix.
func Identity4() mgl32.Mat4 { return mgl32.Ident4() }

// IsIdentity4 reports whether all 16 components of m have the identity's
// exact bit pattern, so -0 is not accepted for 0.
func IsIdentity4(m mgl32.Mat4) bool {
	for i, v := range m {
		if math.Float32bits(v) != math.Float32bits(identity[i]) {
			return false
		}
	}
	return true
}

// Vector4 returns the homogeneous point (x, y, z, 1).
func Vector4(x, y, z float32) mgl32.Vec4 { return mgl32.Vec4{x, y, z, 1} }
