//go:build !linux

package headless

import (
	"fmt"

	"github.com/framefx/framefx/graphics"
)

// Surface is unavailable off Linux; use a hidden glfwcontext window instead.
type Surface struct{}

// New always fails on this platform.
func New(width, height int) (*Surface, error) {
	return nil, fmt.Errorf("egl headless rendering requires linux: %w", graphics.ErrUnsupportedPlatform)
}

func (s *Surface) MakeCurrent()                {}
func (s *Surface) DetachCurrent()              {}
func (s *Surface) SwapBuffers()                {}
func (s *Surface) FramebufferSize() (int, int) { return 0, 0 }
func (s *Surface) Time() float64               { return 0 }
func (s *Surface) Shutdown()                   {}
