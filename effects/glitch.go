package effects

const glitchSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;
uniform float uTime;
uniform float amount;
uniform float blockiness;
uniform float speed;

float hash(vec2 p) {
    return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453);
}

void main() {
    vec4 src = texture(uInput, frag_uv);

    float t = floor(uTime * speed * 8.0);
    float row = floor(frag_uv.y * blockiness);
    float jitter = hash(vec2(row, t));

    // Only a fraction of rows shift; amount scales both count and distance.
    float shift = 0.0;
    if (jitter > 1.0 - amount * 0.5) {
        shift = (hash(vec2(t, row)) - 0.5) * amount * 0.2;
    }

    vec2 uv = vec2(fract(frag_uv.x + shift), frag_uv.y);
    vec3 displaced = texture(uInput, uv).rgb;

    // Occasional color channel tear on shifted rows.
    if (shift != 0.0) {
        displaced.r = texture(uInput, vec2(fract(uv.x + amount * 0.05), uv.y)).r;
    }

    fragColor = vec4(mix(src.rgb, displaced, uIntensity), src.a);
}
`

// NewGlitch produces animated digital tearing driven by the frame clock.
func NewGlitch() Effect {
	b := newBase("glitch", "distort", glitchSrc,
		FloatParam("amount", 0.35, 0, 1),
		FloatParam("blockiness", 16, 1, 64),
		FloatParam("speed", 2, 0, 10),
	)
	return &glitch{base: b}
}

type glitch struct{ base }
