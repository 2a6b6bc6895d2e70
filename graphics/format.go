package graphics

import "github.com/go-gl/gl/v4.1-core/gl"

// PixelFormat selects the storage layout of a texture or render target.
type PixelFormat int

const (
	// RGBA8 is 8-bit normalized color, the format of decoded video frames.
	RGBA8 PixelFormat = iota
	// RGBA16F is half-float color, enough headroom for HDR grading.
	RGBA16F
	// RGBA32F is full-float color, used for intermediate accumulation.
	RGBA32F
)

func (f PixelFormat) String() string {
	switch f {
	case RGBA8:
		return "rgba8"
	case RGBA16F:
		return "rgba16f"
	case RGBA32F:
		return "rgba32f"
	}
	return "invalid"
}

// Valid reports whether f is one of the declared formats.
func (f PixelFormat) Valid() bool {
	return f >= RGBA8 && f <= RGBA32F
}

// BytesPerPixel returns the CPU-side size of one pixel when uploading or
// reading back in this format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGBA8:
		return 4
	case RGBA16F:
		return 8
	case RGBA32F:
		return 16
	}
	return 0
}

// Compatible reports whether a texture of format f may be sampled by an
// effect that renders into a target of format out. All declared formats are
// plain float color and can feed one another; anything undeclared cannot.
func (f PixelFormat) Compatible(out PixelFormat) bool {
	return f.Valid() && out.Valid()
}

// glInternal returns the GL internal format, upload format and component type.
func (f PixelFormat) glInternal() (internal int32, format uint32, xtype uint32) {
	switch f {
	case RGBA16F:
		return gl.RGBA16F, gl.RGBA, gl.FLOAT
	case RGBA32F:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}
