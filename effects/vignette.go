package effects

const vignetteSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;
uniform float radius;
uniform float softness;
uniform float darkness;

void main() {
    vec4 src = texture(uInput, frag_uv);
    float d = distance(frag_uv, vec2(0.5)) * 1.4142135;
    float mask = smoothstep(radius, radius - max(softness, 1e-4), d);
    vec3 shaded = src.rgb * mix(1.0 - darkness, 1.0, mask);
    fragColor = vec4(mix(src.rgb, shaded, uIntensity), src.a);
}
`

// NewVignette darkens the frame edges with a soft radial falloff.
func NewVignette() Effect {
	b := newBase("vignette", "stylize", vignetteSrc,
		FloatParam("radius", 0.75, 0, 1.5),
		FloatParam("softness", 0.45, 0, 1),
		FloatParam("darkness", 0.8, 0, 1),
	)
	return &vignette{base: b}
}

type vignette struct{ base }
