// Package glfwcontext provides the windowed (or hidden-window) GL surface.
// Init must run on the main thread before any surface is created.
package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/framefx/framefx/graphics"
)

// Surface is a GLFW window carrying an OpenGL 4.1 core context. It satisfies
// graphics.Surface; the extra methods (ShouldClose, Window) serve the
// interactive preview loop.
type Surface struct {
	window *glfw.Window
}

// Options controls window creation.
type Options struct {
	Width   int
	Height  int
	Title   string
	Visible bool // hidden windows back offscreen/record pipelines
	Samples int  // default framebuffer MSAA sample count, 0 disables
}

// New creates a window with a 4.1 core profile context. The context is not
// made current; graphics.Context.Initialize does that on the render thread.
func New(o Options) (*Surface, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if o.Samples > 0 {
		glfw.WindowHint(glfw.Samples, o.Samples)
	}

	if o.Visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	title := o.Title
	if title == "" {
		title = "framefx"
	}

	win, err := glfw.CreateWindow(o.Width, o.Height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %v: %w", err, graphics.ErrAllocationFailed)
	}

	s := &Surface{window: win}
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return s, nil
}

// MakeCurrent binds the window's GL context to the calling thread.
func (s *Surface) MakeCurrent() {
	s.window.MakeContextCurrent()
}

// DetachCurrent makes no context current on the calling thread.
func (s *Surface) DetachCurrent() {
	glfw.DetachCurrentContext()
}

// SwapBuffers presents the default framebuffer and pumps window events.
func (s *Surface) SwapBuffers() {
	s.window.SwapBuffers()
	glfw.PollEvents()
}

// FramebufferSize returns the window framebuffer size in pixels.
func (s *Surface) FramebufferSize() (int, int) {
	return s.window.GetFramebufferSize()
}

// Time returns seconds since Init.
func (s *Surface) Time() float64 {
	return glfw.GetTime()
}

// ShouldClose reports whether the user asked to close the window.
func (s *Surface) ShouldClose() bool {
	return s.window.ShouldClose()
}

// Window exposes the underlying GLFW window for callers that need to hook
// additional input callbacks.
func (s *Surface) Window() *glfw.Window {
	return s.window
}

// Shutdown destroys the window.
func (s *Surface) Shutdown() {
	s.window.Destroy()
}

// Init initializes GLFW and pins the goroutine to its OS thread. Must be
// called from the main thread.
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %v: %w", err, graphics.ErrUnsupportedPlatform)
	}
	log.Printf("GLFW initialized")
	return nil
}

// Terminate shuts GLFW down. Must be called from the main thread after every
// surface has been destroyed.
func Terminate() {
	glfw.Terminate()
	log.Printf("GLFW terminated")
}
