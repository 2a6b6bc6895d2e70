package graphics

import "errors"

// Context-level failures. Initialize and resource creation wrap these with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	// ErrUnsupportedPlatform means no compatible GL capability was found on
	// this machine (no display server and no EGL device, or GL version too old).
	ErrUnsupportedPlatform = errors.New("graphics: unsupported platform")

	// ErrAllocationFailed means the initial render surface could not be allocated.
	ErrAllocationFailed = errors.New("graphics: surface allocation failed")

	// ErrOutOfMemory means the device rejected a texture or framebuffer
	// allocation with GL_OUT_OF_MEMORY.
	ErrOutOfMemory = errors.New("graphics: device out of memory")

	// ErrContextLost means the device reclaimed the context. Every handle
	// issued by the context is invalid; recovery is Destroy + re-create.
	ErrContextLost = errors.New("graphics: context lost")

	// ErrStaleHandle means a handle refers to a resource that was already
	// deleted, or to a slot that has since been reused.
	ErrStaleHandle = errors.New("graphics: stale resource handle")

	// ErrWrongContext means a handle was issued by a different Context.
	ErrWrongContext = errors.New("graphics: handle from another context")

	// ErrNotCurrent means a GL operation was attempted while the context was
	// not current on the calling thread.
	ErrNotCurrent = errors.New("graphics: context not current")
)
