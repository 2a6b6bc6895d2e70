package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized means RenderFrame or a registration call arrived
	// before Initialize or after Shutdown. This is a caller bug, not a
	// recoverable runtime condition.
	ErrNotInitialized = errors.New("renderer: not initialized")

	// ErrContextInitFailed wraps the graphics error that kept Initialize from
	// establishing a context. The renderer stays uninitialized.
	ErrContextInitFailed = errors.New("renderer: graphics context initialization failed")

	// ErrDuplicateEffect means AddEffect saw a name already registered.
	ErrDuplicateEffect = errors.New("renderer: effect name already registered")
)

// EffectError reports which effect failed mid-frame. The frame is dropped;
// the renderer remains usable and the caller moves on to the next frame.
type EffectError struct {
	Name string
	Err  error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("renderer: effect %q failed: %v", e.Name, e.Err)
}

func (e *EffectError) Unwrap() error { return e.Err }
