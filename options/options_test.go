package options

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gltriangle/renderer"
)

func TestDefaults(t *testing.T) {
	o, err := Parse("gltriangle", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1280, *o.Width)
	assert.Equal(t, 720, *o.Height)
	assert.False(t, *o.Headless)
	assert.Zero(t, *o.Frames)
	assert.True(t, *o.Translate)
	assert.Equal(t, renderer.DrawIndexed, o.Strategy())
}

func TestFlags(t *testing.T) {
	o, err := Parse("gltriangle", []string{"-width", "640", "-height", "480", "-draw", "arrays", "-headless", "-frames", "10"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 640, *o.Width)
	assert.Equal(t, 480, *o.Height)
	assert.True(t, *o.Headless)
	assert.Equal(t, 10, *o.Frames)
	assert.Equal(t, renderer.DrawArrays, o.Strategy())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gltriangle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := writeConfig(t, "width: 320\nheight: 200\ndraw: arrays\ntranslate: false\nshaders: ./glsl\n")

	o, err := Parse("gltriangle", []string{"-config", path, "-width", "1024"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1024, *o.Width)
	assert.Equal(t, 200, *o.Height)
	assert.Equal(t, "arrays", *o.DrawMode)
	assert.False(t, *o.Translate)
	assert.Equal(t, "./glsl", *o.ShaderDir)
}

func TestConfigFileErrors(t *testing.T) {
	_, err := Parse("gltriangle", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard)
	assert.ErrorContains(t, err, "read config")

	path := writeConfig(t, "width: [1, 2\n")
	_, err = Parse("gltriangle", []string{"-config", path}, io.Discard)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	for _, args := range [][]string{
		{"-width", "0"},
		{"-height", "-5"},
		{"-frames", "-1"},
		{"-draw", "points"},
	} {
		_, err := Parse("gltriangle", args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestHelpSkipsValidation(t *testing.T) {
	o, err := Parse("gltriangle", []string{"-help", "-width", "0"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, *o.Help)
}
