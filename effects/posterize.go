package effects

const posterizeSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;
uniform float levels;

void main() {
    vec4 src = texture(uInput, frag_uv);
    float n = max(levels, 2.0);
    vec3 q = floor(src.rgb * n) / (n - 1.0);
    fragColor = vec4(mix(src.rgb, clamp(q, 0.0, 1.0), uIntensity), src.a);
}
`

// NewPosterize quantizes each channel to a fixed number of levels.
func NewPosterize() Effect {
	b := newBase("posterize", "stylize", posterizeSrc,
		FloatParam("levels", 6, 2, 32),
	)
	return &posterize{base: b}
}

type posterize struct{ base }
