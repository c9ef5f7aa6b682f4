// Package translator rewrites GLSL ES 3.00 shader sources into desktop
// GLSL 3.30 so the same sources run on an OpenGL core profile.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"

	"github.com/richinsley/gltriangle/shader"
)

var (
	translatorOnce sync.Once
	translator     *gst.ShaderTranslator
	translatorErr  error
)

// GetTranslator returns the process-wide translator, starting it on first
// use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

func stage(kind shader.Kind) string {
	if kind == shader.Fragment {
		return "fragment"
	}
	return "vertex"
}

// Source translates the text supplied by Next.
type Source struct {
	Next shader.Source
}

func (s Source) Source(kind shader.Kind) (string, error) {
	text, err := s.Next.Source(kind)
	if err != nil {
		return "", err
	}
	tr, err := GetTranslator()
	if err != nil {
		return "", fmt.Errorf("start shader translator: %w", err)
	}
	out, err := tr.TranslateShader(text, stage(kind), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return "", fmt.Errorf("%s shader translation failed: %w", stage(kind), err)
	}
	return out.Code, nil
}
