package effects

import "github.com/go-gl/mathgl/mgl32"

// ParamKind distinguishes scalar from vector parameters.
type ParamKind int

const (
	KindFloat ParamKind = iota
	KindVec3
)

// Param is one tunable value of an effect: a name, a current value, a valid
// range and a default. Values are clamped to [Min, Max] (per component for
// vectors) before they are stored, so nothing out of range ever reaches the
// shader. The Name doubles as the uniform name in the effect's fragment source.
type Param struct {
	Name string
	Kind ParamKind
	Min  float32
	Max  float32

	value    float32
	vec      mgl32.Vec3
	defValue float32
	defVec   mgl32.Vec3
}

// FloatParam declares a scalar parameter. The default is clamped like any
// other value.
func FloatParam(name string, def, min, max float32) *Param {
	p := &Param{Name: name, Kind: KindFloat, Min: min, Max: max}
	p.defValue = clamp(def, min, max)
	p.value = p.defValue
	return p
}

// Vec3Param declares a three-component parameter (colors, offsets). The range
// applies to each component independently.
func Vec3Param(name string, def mgl32.Vec3, min, max float32) *Param {
	p := &Param{Name: name, Kind: KindVec3, Min: min, Max: max}
	p.defVec = clampVec(def, min, max)
	p.vec = p.defVec
	return p
}

// Float returns the current scalar value.
func (p *Param) Float() float32 { return p.value }

// Vec3 returns the current vector value.
func (p *Param) Vec3() mgl32.Vec3 { return p.vec }

// Default returns the declared scalar default.
func (p *Param) Default() float32 { return p.defValue }

// DefaultVec3 returns the declared vector default.
func (p *Param) DefaultVec3() mgl32.Vec3 { return p.defVec }

func (p *Param) set(v float32) {
	p.value = clamp(v, p.Min, p.Max)
}

func (p *Param) setVec(v mgl32.Vec3) {
	p.vec = clampVec(v, p.Min, p.Max)
}

// Reset restores the declared default.
func (p *Param) Reset() {
	p.value = p.defValue
	p.vec = p.defVec
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampVec(v mgl32.Vec3, min, max float32) mgl32.Vec3 {
	return mgl32.Vec3{
		clamp(v.X(), min, max),
		clamp(v.Y(), min, max),
		clamp(v.Z(), min, max),
	}
}
