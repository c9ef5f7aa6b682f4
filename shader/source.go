package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"unicode/utf8"
)

//go:embed glsl/*.glsl
var bundled embed.FS

// Source supplies the complete text of a shader stage.
type Source interface {
	Source(kind Kind) (string, error)
}

// Resources reads stage sources from a file system. Vertex and Fragment are
// the resource identifiers of each stage.
type Resources struct {
	FS       fs.FS
	Vertex   string
	Fragment string
}

// Embedded returns the GLSL ES 3.00 sources compiled into the binary.
func Embedded() Resources {
	sub, err := fs.Sub(bundled, "glsl")
	if err != nil {
		panic(err)
	}
	return Dir(sub)
}

// Dir returns Resources reading vertex_shader.glsl and fragment_shader.glsl
// from fsys.
func Dir(fsys fs.FS) Resources {
	return Resources{FS: fsys, Vertex: "vertex_shader.glsl", Fragment: "fragment_shader.glsl"}
}

func (r Resources) Source(kind Kind) (string, error) {
	name := r.Vertex
	if kind == Fragment {
		name = r.Fragment
	}
	b, err := fs.ReadFile(r.FS, name)
	if err != nil {
		return "", fmt.Errorf("load %s shader %q: %w", kind, name, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("load %s shader %q: not valid UTF-8", kind, name)
	}
	return string(b), nil
}
