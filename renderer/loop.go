package renderer

import (
	"fmt"

	"github.com/richinsley/gltriangle/diag"
	"github.com/richinsley/gltriangle/graphics"
)

// Run plays the host role for ctx: it creates the surface once, reports a
// size change before the first frame and whenever the framebuffer size
// moves, retrying a size change that failed, then draws until ctx asks to close or frames frames have been
// presented (0 means no limit). Size and frame errors are recorded and the
// loop carries on; only a failed surface setup stops it.
func (r *Renderer) Run(ctx graphics.Context, frames int) error {
	if err := r.OnSurfaceCreated(); err != nil {
		return err
	}

	width, height := -1, -1
	for n := 0; frames <= 0 || n < frames; n++ {
		if ctx.ShouldClose() {
			break
		}

		// a failed resize is retried on the next frame
		fbWidth, fbHeight := ctx.GetFramebufferSize()
		if fbWidth != width || fbHeight != height || r.state != Sized {
			diag.Recordf(r.rec, diag.Debug, "framebuffer size %dx%d -> %dx%d", width, height, fbWidth, fbHeight)
			if err := r.OnSurfaceChanged(fbWidth, fbHeight); err != nil {
				diag.Recordf(r.rec, diag.Error, "resize to %dx%d failed: %v", fbWidth, fbHeight, err)
			} else {
				width, height = fbWidth, fbHeight
			}
		}

		if err := r.OnDrawFrame(); err != nil {
			r.rec.Record(diag.Error, err.Error())
		}
		ctx.EndFrame()
	}
	diag.Recordf(r.rec, diag.Info, "render loop finished after %d frames", r.frames)
	return nil
}

// Describe summarizes the renderer for log output.
func (r *Renderer) Describe() string {
	return fmt.Sprintf("state=%s strategy=%s program=%d viewport=%dx%d",
		r.state, r.strategy, r.program, r.viewport.Width, r.viewport.Height)
}
