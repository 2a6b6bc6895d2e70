package effects

const chromaticSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform vec2 uResolution;
uniform float uIntensity;
uniform float offset;
uniform float angle;

void main() {
    vec4 src = texture(uInput, frag_uv);
    vec2 dir = vec2(cos(angle), sin(angle)) * (offset / uResolution);
    vec3 split = vec3(
        texture(uInput, frag_uv + dir).r,
        src.g,
        texture(uInput, frag_uv - dir).b);
    fragColor = vec4(mix(src.rgb, split, uIntensity), src.a);
}
`

// NewChromaticAberration separates the red and blue channels along a
// direction, in source pixels.
func NewChromaticAberration() Effect {
	b := newBase("chromatic", "distort", chromaticSrc,
		FloatParam("offset", 3, 0, 20),
		FloatParam("angle", 0, 0, 6.2831853),
	)
	return &chromatic{base: b}
}

type chromatic struct{ base }
