package effects

import (
	"github.com/framefx/framefx/shader"
)

// custom is an effect whose fragment stage arrives as GLSL ES 300 source
// (the WebGL2 dialect effect authors typically write) and is translated to
// desktop GLSL at registration time. The translator renames uniforms, so the
// base's uniform remapping carries the logical-to-emitted name table.
type custom struct {
	base
	esSource string
}

// NewCustom wraps user-supplied GLSL ES 300 fragment source as a chain
// effect. The source must declare the standard uniforms it uses (uInput,
// uResolution, uIntensity, uTime, uFrame) plus one uniform per declared
// parameter, matching the parameter names. The translator renames varyings,
// so sources derive UVs from gl_FragCoord and uResolution rather than a
// vertex-stage output.
func NewCustom(name string, esFragmentSource string, params ...*Param) Effect {
	b := newBase(name, "custom", "", params...)
	return &custom{base: b, esSource: esFragmentSource}
}

// Compile translates the ES source first, then feeds the result through the
// library like any other effect. Translation failures surface as the same
// *CompileError a direct compile would produce.
func (c *custom) Compile(lib *shader.Library) error {
	if c.fragSrc == "" {
		code, names, err := shader.TranslateES(c.esSource)
		if err != nil {
			return err
		}
		c.fragSrc = code
		c.uniformName = names
	}
	return c.base.Compile(lib)
}
