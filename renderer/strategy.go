package renderer

import (
	"fmt"
	"strings"

	"github.com/richinsley/gltriangle/graphics"
)

// DrawStrategy selects how the triangle is submitted each frame.
type DrawStrategy int

const (
	// DrawIndexed draws through an unsigned-int index buffer.
	DrawIndexed DrawStrategy = iota
	// DrawArrays draws the first vertices of the vertex buffer directly.
	DrawArrays
)

func (s DrawStrategy) String() string {
	switch s {
	case DrawIndexed:
		return "elements"
	case DrawArrays:
		return "arrays"
	}
	return fmt.Sprintf("DrawStrategy(%d)", int(s))
}

// ParseDrawStrategy accepts "elements" (or "indexed") and "arrays".
func ParseDrawStrategy(s string) (DrawStrategy, error) {
	switch strings.ToLower(s) {
	case "elements", "indexed":
		return DrawIndexed, nil
	case "arrays":
		return DrawArrays, nil
	}
	return 0, fmt.Errorf("unknown draw strategy %q", s)
}

func (s DrawStrategy) draw(gl graphics.GL, vertexCount, indexCount int32) {
	if s == DrawIndexed {
		gl.DrawElements(graphics.Triangles, indexCount, graphics.UnsignedInt, 0)
		return
	}
	gl.DrawArrays(graphics.Triangles, 0, vertexCount)
}
