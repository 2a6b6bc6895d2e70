package renderer

import "github.com/framefx/framefx/graphics"

// Config controls surface creation and the intermediate render resolution.
// Render and output resolutions are independent: effects run at the render
// resolution and the final pass scales to the output target.
type Config struct {
	RenderWidth  int
	RenderHeight int
	OutputWidth  int
	OutputHeight int

	// Format is the pixel format of pool-owned intermediate targets.
	Format graphics.PixelFormat

	// Multisample requests an MSAA default framebuffer. Samples is clamped
	// to the context's reported maximum after initialization.
	Multisample bool
	Samples     int

	// Profile enables per-frame stats collection from the first frame.
	Profile bool

	// Headless selects an EGL pbuffer surface instead of a GLFW window.
	// Only supported on Linux.
	Headless bool

	// Visible shows the preview window. Ignored when Headless is set.
	Visible bool

	Title string
}

func (c Config) withDefaults() Config {
	if c.RenderWidth <= 0 {
		c.RenderWidth = 1280
	}
	if c.RenderHeight <= 0 {
		c.RenderHeight = 720
	}
	if c.OutputWidth <= 0 {
		c.OutputWidth = c.RenderWidth
	}
	if c.OutputHeight <= 0 {
		c.OutputHeight = c.RenderHeight
	}
	if !c.Format.Valid() {
		c.Format = graphics.RGBA8
	}
	if c.Multisample && c.Samples <= 0 {
		c.Samples = 4
	}
	if c.Title == "" {
		c.Title = "framefx"
	}
	return c
}
