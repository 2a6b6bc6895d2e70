package effects

const blurSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform vec2 uResolution;
uniform float uIntensity;
uniform float radius;

// 9-tap gaussian run along both axes in one pass. Cheaper than a true
// separable blur at the cost of slight anisotropy on large radii.
const float WEIGHTS[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

void main() {
    vec4 src = texture(uInput, frag_uv);
    if (radius <= 0.0) {
        fragColor = src;
        return;
    }

    vec2 texel = radius / (4.0 * uResolution);
    vec3 acc = src.rgb * WEIGHTS[0] * 2.0;
    for (int i = 1; i < 5; i++) {
        float o = float(i);
        acc += texture(uInput, frag_uv + vec2(texel.x * o, 0.0)).rgb * WEIGHTS[i];
        acc += texture(uInput, frag_uv - vec2(texel.x * o, 0.0)).rgb * WEIGHTS[i];
        acc += texture(uInput, frag_uv + vec2(0.0, texel.y * o)).rgb * WEIGHTS[i];
        acc += texture(uInput, frag_uv - vec2(0.0, texel.y * o)).rgb * WEIGHTS[i];
    }
    acc *= 0.5;

    fragColor = vec4(mix(src.rgb, acc, uIntensity), src.a);
}
`

// NewBlur builds a gaussian blur with a radius in source pixels.
func NewBlur() Effect {
	b := newBase("blur", "focus", blurSrc,
		FloatParam("radius", 4, 0, 50),
	)
	return &blur{base: b}
}

type blur struct{ base }
