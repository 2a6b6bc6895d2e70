// Package effects implements the parameterized visual transformations the
// renderer chains over a frame. Every effect is one full-screen fragment
// shader pass; concrete effects differ only in shader source and parameter
// schema.
package effects

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/framefx/framefx/graphics"
	"github.com/framefx/framefx/shader"
)

var (
	// ErrInvalidShader means the effect's program failed to compile or link
	// and the effect cannot be applied.
	ErrInvalidShader = errors.New("effects: shader program is not valid")

	// ErrIncompatibleFormat means the input texture and output target formats
	// cannot be used together in one pass.
	ErrIncompatibleFormat = errors.New("effects: incompatible input/output formats")
)

// Pass carries everything an effect needs for one application: the context
// that owns the handles, the shared full-screen geometry, the borrowed input
// texture, the draw destination and the frame clock. The input texture is
// read-only for the duration of the pass.
type Pass struct {
	Ctx    *graphics.Context
	Quad   *graphics.Quad
	Input  graphics.TextureHandle
	Target graphics.RenderTargetHandle // zero value draws to the default framebuffer
	Width  int
	Height int
	Time   float64
	Frame  int64
}

// Effect is one parameterized transformation in the chain.
//
// The mutating methods (SetParameter, SetIntensity, SetEnabled) only touch
// plain fields; the renderer serializes them against the frame loop, so
// effects themselves carry no locks. Compile and Apply are render-thread only.
type Effect interface {
	// Name identifies the effect; unique within one renderer.
	Name() string
	// Category groups related effects for parameter UIs ("color", "stylize", ...).
	Category() string

	// Parameters returns the declared parameters in declaration order.
	Parameters() []*Param
	// SetParameter clamps and stores a scalar value; false if the name is
	// unknown or not a scalar.
	SetParameter(name string, v float32) bool
	// SetVec3Parameter clamps and stores a vector value; false if the name is
	// unknown or not a vector.
	SetVec3Parameter(name string, v mgl32.Vec3) bool

	// Intensity is the 0..1 blend between the input (0) and the full effect (1).
	// Distinct from Enabled: a disabled effect costs nothing, an enabled
	// effect at intensity 0 still runs and blends to a no-op.
	Intensity() float32
	SetIntensity(v float32)

	Enabled() bool
	SetEnabled(on bool)

	// Compile builds the effect's program through the library. Must run on
	// the render thread before the first Apply, normally at registration.
	Compile(lib *shader.Library) error

	// Apply binds the program, uploads intensity and parameters, samples
	// p.Input and draws into p.Target.
	Apply(p *Pass) error

	// Destroy drops the program reference; the library owns actual deletion.
	Destroy()
}
