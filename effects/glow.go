package effects

const glowSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform vec2 uResolution;
uniform float uIntensity;
uniform float threshold;
uniform float radius;
uniform float strength;

// Bright-pass plus a sparse 12-sample disc blur, composited additively.
const vec2 TAPS[12] = vec2[](
    vec2(-0.326, -0.406), vec2(-0.840, -0.074), vec2(-0.696,  0.457),
    vec2(-0.203,  0.621), vec2( 0.962, -0.195), vec2( 0.473, -0.480),
    vec2( 0.519,  0.767), vec2( 0.185, -0.893), vec2( 0.507,  0.064),
    vec2( 0.896,  0.412), vec2(-0.322, -0.933), vec2(-0.792, -0.598));

vec3 brightPass(vec2 uv) {
    vec3 c = texture(uInput, uv).rgb;
    float luma = dot(c, vec3(0.2126, 0.7152, 0.0722));
    return c * smoothstep(threshold, threshold + 0.1, luma);
}

void main() {
    vec4 src = texture(uInput, frag_uv);
    vec2 scale = radius / uResolution;

    vec3 halo = brightPass(frag_uv);
    for (int i = 0; i < 12; i++) {
        halo += brightPass(frag_uv + TAPS[i] * scale);
    }
    halo /= 13.0;

    vec3 lit = src.rgb + halo * strength;
    fragColor = vec4(mix(src.rgb, clamp(lit, 0.0, 1.0), uIntensity), src.a);
}
`

// NewGlow lifts bright regions into a soft additive halo.
func NewGlow() Effect {
	b := newBase("glow", "stylize", glowSrc,
		FloatParam("threshold", 0.7, 0, 1),
		FloatParam("radius", 8, 0, 32),
		FloatParam("strength", 1.2, 0, 3),
	)
	return &glow{base: b}
}

type glow struct{ base }
