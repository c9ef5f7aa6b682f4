package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/gltriangle/diag"
	"github.com/richinsley/gltriangle/glapi"
	"github.com/richinsley/gltriangle/glfwcontext"
	"github.com/richinsley/gltriangle/graphics"
	"github.com/richinsley/gltriangle/headless"
	"github.com/richinsley/gltriangle/options"
	"github.com/richinsley/gltriangle/renderer"
	"github.com/richinsley/gltriangle/shader"
	"github.com/richinsley/gltriangle/translator"
)

func init() {
	runtime.LockOSThread()
}

func shaderSource(opts *options.ShaderOptions) shader.Source {
	var src shader.Source = shader.Embedded()
	if *opts.ShaderDir != "" {
		src = shader.Dir(os.DirFS(*opts.ShaderDir))
	}
	if *opts.Translate {
		src = translator.Source{Next: src}
	}
	return src
}

func runTriangle(ctx graphics.Context, opts *options.ShaderOptions, rec diag.Recorder) *renderer.Renderer {
	ctx.MakeCurrent()
	api, err := glapi.New()
	if err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}
	defer api.Destroy()
	log.Printf("OpenGL version: %s", api.Version())

	r := renderer.New(api, shaderSource(opts), renderer.Config{
		Strategy: opts.Strategy(),
		Recorder: rec,
	})
	defer func() {
		if err := r.Destroy(); err != nil {
			log.Printf("Failed to release renderer resources: %v", err)
		}
	}()

	if win, ok := ctx.(*glfwcontext.Context); ok {
		// Space reports the cursor in normalized device coordinates.
		win.RegisterKeyCallback(glfw.KeySpace, func() {
			x, y := win.CursorPos()
			nx, ny, err := r.Viewport().Normalize(x, y)
			if err != nil {
				log.Printf("Cursor (%.0f, %.0f): %v", x, y, err)
				return
			}
			log.Printf("Cursor (%.0f, %.0f) -> (%.3f, %.3f)", x, y, nx, ny)
		})
	}

	log.Printf("Starting render loop (%s)...", r.Strategy())
	if err := r.Run(ctx, *opts.Frames); err != nil {
		log.Fatalf("Failed to set up surface: %v", err)
	}
	log.Printf("Renderer stopped: %s", r.Describe())
	return r
}

func main() {
	opts, err := options.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if *opts.Help {
		return
	}

	minLevel := diag.Info
	if *opts.Verbose {
		minLevel = diag.Debug
	}
	rec := diag.NewLogger(nil, minLevel)

	if *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless surface: %v", err)
		}
		defer h.Shutdown()
		if *opts.Frames == 0 {
			*opts.Frames = 1
		}
		runTriangle(h, opts, rec)
		return
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(*opts.Width, *opts.Height, "gltriangle", true)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer win.Shutdown()

	start := win.Time()
	r := runTriangle(win, opts, rec)
	if elapsed := win.Time() - start; elapsed > 0 {
		log.Printf("Average frame rate: %.1f fps", float64(r.FramesDrawn())/elapsed)
	}
}
