package effects

import "github.com/go-gl/mathgl/mgl32"

const grayscaleSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;
uniform vec3 weights;

void main() {
    vec4 src = texture(uInput, frag_uv);
    float luma = dot(src.rgb, weights / max(weights.r + weights.g + weights.b, 1e-4));
    fragColor = vec4(mix(src.rgb, vec3(luma), uIntensity), src.a);
}
`

// NewGrayscale reduces the frame to luma. The channel weights default to
// Rec.709 and are normalized in-shader, so any positive mix works.
func NewGrayscale() Effect {
	b := newBase("grayscale", "color", grayscaleSrc,
		Vec3Param("weights", mgl32.Vec3{0.2126, 0.7152, 0.0722}, 0, 1),
	)
	return &grayscale{base: b}
}

type grayscale struct{ base }
