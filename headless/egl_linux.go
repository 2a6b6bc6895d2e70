//go:build linux

// Package headless creates a display-less GL surface through EGL pbuffers,
// for rendering inside containers and on machines without a window system.
package headless

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/framefx/framefx/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>
#include <time.h>

static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}

static double monotonic_seconds() {
    struct timespec ts;
    clock_gettime(CLOCK_MONOTONIC, &ts);
    return (double)ts.tv_sec + (double)ts.tv_nsec / 1e9;
}
*/
import "C"

// Surface is an EGL pbuffer carrying a desktop OpenGL context. It satisfies
// graphics.Surface; SwapBuffers is a flush-only no-op since nothing is shown.
type Surface struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface
	width   int
	height  int
	epoch   float64
}

// getEGLDisplay tries device enumeration first (the path that finds the GPU
// inside a container), falling back to the default display.
func getEGLDisplay() (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Println("EGL device enumeration unavailable, using EGL_DEFAULT_DISPLAY")
		display := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), graphics.ErrUnsupportedPlatform
		}
		return display, nil
	}

	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("querying EGL devices: %w", graphics.ErrUnsupportedPlatform)
	}

	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Printf("EGL display acquired from device %d of %d", i, int(numDevices))
			return display, nil
		}
	}

	return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("no usable EGL device: %w", graphics.ErrUnsupportedPlatform)
}

// New creates a pbuffer-backed desktop GL context of the given size.
func New(width, height int) (*Surface, error) {
	s := &Surface{width: width, height: height}

	var err error
	s.display, err = getEGLDisplay()
	if err != nil {
		return nil, fmt.Errorf("getting EGL display: %w", err)
	}

	var major, minor C.EGLint
	if C.eglInitialize(s.display, &major, &minor) == C.EGL_FALSE {
		return nil, fmt.Errorf("initializing EGL: %w", graphics.ErrUnsupportedPlatform)
	}
	log.Printf("EGL %d.%d initialized", major, minor)

	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		return nil, fmt.Errorf("binding desktop GL API: %w", graphics.ErrUnsupportedPlatform)
	}

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(s.display, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return nil, fmt.Errorf("choosing EGL config: %w", graphics.ErrUnsupportedPlatform)
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	s.surface = C.eglCreatePbufferSurface(s.display, config, &pbufferAttribs[0])
	if s.surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return nil, fmt.Errorf("creating pbuffer surface: %w", graphics.ErrAllocationFailed)
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	s.context = C.eglCreateContext(s.display, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if s.context == C.EGLContext(C.EGL_NO_CONTEXT) {
		return nil, fmt.Errorf("creating GL 4.1 context: %w", graphics.ErrUnsupportedPlatform)
	}

	s.epoch = float64(C.monotonic_seconds())
	return s, nil
}

// MakeCurrent binds the pbuffer context to the calling thread.
func (s *Surface) MakeCurrent() {
	C.eglMakeCurrent(s.display, s.surface, s.surface, s.context)
}

// DetachCurrent makes no context current on the calling thread.
func (s *Surface) DetachCurrent() {
	C.eglMakeCurrent(s.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
}

// SwapBuffers flushes the pbuffer; there is no display to present to.
func (s *Surface) SwapBuffers() {
	C.eglSwapBuffers(s.display, s.surface)
}

// FramebufferSize returns the pbuffer dimensions.
func (s *Surface) FramebufferSize() (int, int) {
	return s.width, s.height
}

// Time returns seconds since the surface was created.
func (s *Surface) Time() float64 {
	return float64(C.monotonic_seconds()) - s.epoch
}

// Shutdown tears down the EGL context, surface and display binding.
func (s *Surface) Shutdown() {
	if s.display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
		s.DetachCurrent()
		if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
			C.eglDestroyContext(s.display, s.context)
		}
		if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
			C.eglDestroySurface(s.display, s.surface)
		}
		C.eglTerminate(s.display)
	}
}
