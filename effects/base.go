package effects

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/framefx/framefx/graphics"
	"github.com/framefx/framefx/shader"
)

// base carries the behavior shared by every effect: the parameter map,
// intensity and enabled state, program binding and the standard full-screen
// draw. Concrete effects are a constructor around newBase with their own
// fragment source and parameter schema.
type base struct {
	name     string
	category string
	fragSrc  string

	params []*Param
	index  map[string]*Param

	intensity float32
	enabled   bool

	prog *shader.Program

	// uniformName remaps logical parameter names to the names the compiled
	// program actually declares. Nil means identity; the translated custom
	// effect populates it.
	uniformName map[string]string
}

func newBase(name, category, fragSrc string, params ...*Param) base {
	b := base{
		name:      name,
		category:  category,
		fragSrc:   fragSrc,
		params:    params,
		index:     make(map[string]*Param, len(params)),
		intensity: 1,
		enabled:   true,
	}
	for _, p := range params {
		b.index[p.Name] = p
	}
	return b
}

func (b *base) Name() string     { return b.name }
func (b *base) Category() string { return b.category }

func (b *base) Parameters() []*Param { return b.params }

func (b *base) SetParameter(name string, v float32) bool {
	p, ok := b.index[name]
	if !ok || p.Kind != KindFloat {
		return false
	}
	p.set(v)
	return true
}

func (b *base) SetVec3Parameter(name string, v mgl32.Vec3) bool {
	p, ok := b.index[name]
	if !ok || p.Kind != KindVec3 {
		return false
	}
	p.setVec(v)
	return true
}

func (b *base) Intensity() float32 { return b.intensity }

func (b *base) SetIntensity(v float32) {
	b.intensity = clamp(v, 0, 1)
}

func (b *base) Enabled() bool { return b.enabled }

func (b *base) SetEnabled(on bool) { b.enabled = on }

func (b *base) Compile(lib *shader.Library) error {
	prog, err := lib.GetOrCreate(b.name, shader.VertexSource, b.fragSrc)
	b.prog = prog
	return err
}

// uniform resolves a logical name to the program's uniform name.
func (b *base) uniform(name string) string {
	if b.uniformName == nil {
		return name
	}
	if mapped, ok := b.uniformName[name]; ok {
		return mapped
	}
	return name
}

func (b *base) Apply(p *Pass) error {
	if b.prog == nil || !b.prog.Valid() {
		return ErrInvalidShader
	}

	_, _, inFmt, ok := p.Ctx.TextureInfo(p.Input)
	if !ok {
		return graphics.ErrStaleHandle
	}
	outFmt, ok := p.Ctx.TargetFormat(p.Target)
	if !ok {
		return graphics.ErrStaleHandle
	}
	if !inFmt.Compatible(outFmt) {
		return fmt.Errorf("%s into %s: %w", inFmt, outFmt, ErrIncompatibleFormat)
	}

	texID, err := p.Ctx.TextureID(p.Input)
	if err != nil {
		return err
	}
	if err := p.Ctx.BindTarget(p.Target); err != nil {
		return err
	}

	b.prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	b.prog.SetInt(b.uniform("uInput"), 0)
	b.prog.SetVec2(b.uniform("uResolution"), mgl32.Vec2{float32(p.Width), float32(p.Height)})
	b.prog.SetFloat(b.uniform("uIntensity"), b.intensity)
	b.prog.SetFloat(b.uniform("uTime"), float32(p.Time))
	b.prog.SetInt(b.uniform("uFrame"), int32(p.Frame))

	for _, param := range b.params {
		switch param.Kind {
		case KindVec3:
			b.prog.SetVec3(b.uniform(param.Name), param.Vec3())
		default:
			b.prog.SetFloat(b.uniform(param.Name), param.Float())
		}
	}

	p.Quad.Draw()

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (b *base) Destroy() {
	b.prog = nil
}
