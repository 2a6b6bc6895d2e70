package graphics

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Capabilities describes what the device can do. Queried once at context
// initialization so callers can fail fast instead of attempting unsupported
// operations mid-frame.
type Capabilities struct {
	Renderer         string
	Version          string
	MaxTextureSize   int
	MaxRenderTargets int
	MaxSamples       int
	TimerQueries     bool
	extensions       map[string]struct{}
}

// HasExtension reports whether the driver advertises the named GL extension.
func (c *Capabilities) HasExtension(name string) bool {
	_, ok := c.extensions[name]
	return ok
}

// Extensions returns the advertised extension names, unordered.
func (c *Capabilities) Extensions() []string {
	out := make([]string, 0, len(c.extensions))
	for name := range c.extensions {
		out = append(out, name)
	}
	return out
}

// queryCapabilities reads device limits from the current context.
func queryCapabilities() Capabilities {
	caps := Capabilities{extensions: make(map[string]struct{})}

	caps.Renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	caps.Version = gl.GoStr(gl.GetString(gl.VERSION))

	var v int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &v)
	caps.MaxTextureSize = int(v)
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &v)
	caps.MaxRenderTargets = int(v)
	gl.GetIntegerv(gl.MAX_SAMPLES, &v)
	caps.MaxSamples = int(v)

	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		name := gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))
		caps.extensions[name] = struct{}{}
	}

	// Timer queries are core since 3.3; trust the version string and fall
	// back to the extension flag for ES-flavored drivers.
	caps.TimerQueries = !strings.HasPrefix(caps.Version, "OpenGL ES") ||
		caps.HasExtension("GL_EXT_disjoint_timer_query")

	return caps
}
