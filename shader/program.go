package shader

import (
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a compiled and linked vertex/fragment pair plus the uniform
// locations cached at link time. A Program is either fully valid or fully
// invalid; an invalid one carries the compiler diagnostic and every GL-facing
// method on it is a logged no-op.
//
// Programs are immutable after Compile apart from the once-per-name warning
// bookkeeping. Like all GL-facing state they belong to the render thread.
type Program struct {
	id       uint32
	valid    bool
	diag     string
	stage    string
	uniforms map[string]int32
	warned   map[string]struct{}
}

// Compile builds a program from GLSL sources. On failure it returns an
// invalid, unusable Program alongside a *CompileError carrying the stage and
// diagnostic; the invalid instance is safe to hold and call.
func Compile(vertexSource, fragmentSource string) (*Program, error) {
	p := &Program{warned: make(map[string]struct{})}

	vs, err := compileStage(vertexSource, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		p.fail(err)
		return p, err
	}
	fs, err := compileStage(fragmentSource, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		gl.DeleteShader(vs)
		p.fail(err)
		return p, err
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		text := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(text))
		gl.DeleteProgram(id)
		cerr := &CompileError{Stage: StageLink, Log: strings.TrimRight(text, "\x00")}
		p.fail(cerr)
		return p, cerr
	}

	p.id = id
	p.valid = true
	p.uniforms = cacheUniforms(id)
	return p, nil
}

func (p *Program) fail(err error) {
	if cerr, ok := err.(*CompileError); ok {
		p.stage = cerr.Stage
		p.diag = cerr.Log
	} else {
		p.diag = err.Error()
	}
}

func compileStage(source string, glType uint32, stage string) (uint32, error) {
	id := gl.CreateShader(glType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		text := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(text))
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(text, "\x00")}
	}
	return id, nil
}

// cacheUniforms enumerates the program's active uniforms once so SetFloat and
// friends are map lookups, never GL queries, in the per-frame path.
func cacheUniforms(id uint32) map[string]int32 {
	var count int32
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORMS, &count)
	uniforms := make(map[string]int32, count)

	buf := make([]uint8, 256)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(id, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		// Array uniforms report as "name[0]"; register the bare name too.
		loc := gl.GetUniformLocation(id, gl.Str(name+"\x00"))
		uniforms[name] = loc
		if idx := strings.Index(name, "["); idx > 0 {
			uniforms[name[:idx]] = loc
		}
	}
	return uniforms
}

// Valid reports whether the program compiled and linked.
func (p *Program) Valid() bool { return p.valid }

// Diagnostic returns the compiler output for a failed program, empty when valid.
func (p *Program) Diagnostic() string { return p.diag }

// Use binds the program for subsequent draws. A no-op on invalid programs.
func (p *Program) Use() {
	if !p.valid {
		p.warnOnce("", "use of invalid program skipped (%s stage: %s)", p.stage, firstLine(p.diag))
		return
	}
	gl.UseProgram(p.id)
}

// location resolves a uniform name against the link-time cache. Unknown names
// warn once and are otherwise ignored, so an effect built against a superset
// of a shader's uniforms keeps working.
func (p *Program) location(name string) (int32, bool) {
	if !p.valid {
		return 0, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		p.warnOnce(name, "uniform %q not found in program, value ignored", name)
		return 0, false
	}
	return loc, true
}

func (p *Program) warnOnce(key, format string, args ...any) {
	if _, seen := p.warned[key]; seen {
		return
	}
	p.warned[key] = struct{}{}
	log.Printf("shader: "+format, args...)
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1f(loc, v)
	}
}

// SetInt uploads an int (or sampler unit) uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1i(loc, v)
	}
}

// SetVec2 uploads a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	if loc, ok := p.location(name); ok {
		gl.Uniform2f(loc, v.X(), v.Y())
	}
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc, ok := p.location(name); ok {
		gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
	}
}

// SetVec4 uploads a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc, ok := p.location(name); ok {
		gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
	}
}

// Destroy deletes the GL program. Safe on invalid programs.
func (p *Program) Destroy() {
	if p.valid {
		gl.DeleteProgram(p.id)
		p.valid = false
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
