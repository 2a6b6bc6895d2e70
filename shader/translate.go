package shader

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

// The translator boots a WASM toolchain, so it is created once on first use
// and shared; it holds no GL state and is independent of any context.
var translator *gst.ShaderTranslator

// TranslateES converts a GLSL ES 300 (WebGL2-dialect) fragment shader to
// desktop GLSL 3.30, which links cleanly against VertexSource. It returns the
// translated code and the mapping from the source's uniform names to the
// names the translator emitted, which callers need to address their uniforms.
func TranslateES(fragmentSource string) (code string, uniformNames map[string]string, err error) {
	if translator == nil {
		translator, err = gst.NewShaderTranslator(context.Background())
		if err != nil {
			return "", nil, fmt.Errorf("starting shader translator: %w", err)
		}
	}

	out, err := translator.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return "", nil, &CompileError{Stage: StageFragment, Log: err.Error()}
	}

	names := make(map[string]string, len(out.Variables))
	for logical, v := range out.Variables {
		names[logical] = v.MappedName
	}
	return out.Code, names, nil
}
