package graphics

// Surface abstracts the platform object that carries a GL context: a GLFW
// window (visible or hidden) or an EGL pbuffer on display-less machines.
// All methods must be called from the rendering thread.
type Surface interface {
	// MakeCurrent binds the surface's GL context to the calling thread.
	MakeCurrent()
	// DetachCurrent unbinds any GL context from the calling thread.
	DetachCurrent()
	// SwapBuffers presents the default framebuffer. A no-op for offscreen
	// surfaces.
	SwapBuffers()
	// FramebufferSize returns the default framebuffer size in pixels.
	FramebufferSize() (int, int)
	// Time returns seconds since the windowing system was initialized.
	Time() float64
	// Shutdown destroys the surface and its GL context.
	Shutdown()
}
