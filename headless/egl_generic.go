//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/gltriangle/graphics"
)

// Headless is unavailable off Linux.
type Headless struct {
	graphics.Context
}

func NewHeadless(width, height int) (*Headless, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
