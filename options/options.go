package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/richinsley/gltriangle/renderer"
)

type ShaderOptions struct {
	ConfigFile *string
	Width      *int
	Height     *int
	Headless   *bool
	Frames     *int    // stop after this many frames, 0 runs until the window closes
	DrawMode   *string // "elements" or "arrays"
	ShaderDir  *string // directory holding vertex_shader.glsl and fragment_shader.glsl; empty uses the bundled sources
	Translate  *bool   // translate GLSL ES 3.00 sources to GLSL 3.30 before compiling
	Verbose    *bool
	Help       *bool
}

// fileConfig mirrors the flags that may also be set from a YAML file.
type fileConfig struct {
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	Headless  *bool   `yaml:"headless"`
	Frames    *int    `yaml:"frames"`
	DrawMode  *string `yaml:"draw"`
	ShaderDir *string `yaml:"shaders"`
	Translate *bool   `yaml:"translate"`
	Verbose   *bool   `yaml:"verbose"`
}

// NewFlagSet registers every option on a new flag set.
func NewFlagSet(name string, output io.Writer) (*flag.FlagSet, *ShaderOptions) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	o := &ShaderOptions{
		ConfigFile: fs.String("config", "", "YAML file with option defaults; flags override it"),
		Width:      fs.Int("width", 1280, "Width of the surface"),
		Height:     fs.Int("height", 720, "Height of the surface"),
		Headless:   fs.Bool("headless", false, "Render into an off-screen EGL surface instead of a window"),
		Frames:     fs.Int("frames", 0, "Number of frames to render (0 = until the window is closed)"),
		DrawMode:   fs.String("draw", "elements", "Draw strategy: elements or arrays"),
		ShaderDir:  fs.String("shaders", "", "Directory with vertex_shader.glsl and fragment_shader.glsl (default: bundled)"),
		Translate:  fs.Bool("translate", true, "Translate GLSL ES 3.00 sources to GLSL 3.30"),
		Verbose:    fs.Bool("verbose", false, "Log debug diagnostics"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
	return fs, o
}

// Parse reads args, then fills every option not given on the command line
// from the config file named by -config, if any.
func Parse(name string, args []string, output io.Writer) (*ShaderOptions, error) {
	fs, o := NewFlagSet(name, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Help {
		fmt.Fprintln(fs.Output(), "Minimal OpenGL triangle renderer")
		fs.PrintDefaults()
		return o, nil
	}

	if *o.ConfigFile != "" {
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := o.loadFile(*o.ConfigFile, set); err != nil {
			return nil, err
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *ShaderOptions) loadFile(path string, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	apply(fc.Width, o.Width, set["width"])
	apply(fc.Height, o.Height, set["height"])
	apply(fc.Headless, o.Headless, set["headless"])
	apply(fc.Frames, o.Frames, set["frames"])
	apply(fc.DrawMode, o.DrawMode, set["draw"])
	apply(fc.ShaderDir, o.ShaderDir, set["shaders"])
	apply(fc.Translate, o.Translate, set["translate"])
	apply(fc.Verbose, o.Verbose, set["verbose"])
	return nil
}

func apply[T any](from, to *T, onCommandLine bool) {
	if from != nil && !onCommandLine {
		*to = *from
	}
}

// Validate rejects option values the renderer cannot run with.
func (o *ShaderOptions) Validate() error {
	var errs []error
	if *o.Width <= 0 || *o.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface size must be positive, got %dx%d", *o.Width, *o.Height))
	}
	if *o.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", *o.Frames))
	}
	if _, err := renderer.ParseDrawStrategy(*o.DrawMode); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Strategy returns the parsed draw strategy. Call after Validate.
func (o *ShaderOptions) Strategy() renderer.DrawStrategy {
	s, _ := renderer.ParseDrawStrategy(*o.DrawMode)
	return s
}
