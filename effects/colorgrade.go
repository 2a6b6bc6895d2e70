package effects

const colorGradeSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;
uniform float brightness;
uniform float contrast;
uniform float saturation;
uniform float gamma;
uniform float temperature;

// Rec.709 luma weights.
const vec3 LUMA = vec3(0.2126, 0.7152, 0.0722);

void main() {
    vec4 src = texture(uInput, frag_uv);
    vec3 c = src.rgb;

    c += brightness;
    c = (c - 0.5) * contrast + 0.5;

    float luma = dot(c, LUMA);
    c = mix(vec3(luma), c, saturation);

    // Warm shifts red up and blue down, cool the reverse.
    c.r += temperature * 0.1;
    c.b -= temperature * 0.1;

    c = pow(max(c, 0.0), vec3(1.0 / gamma));

    fragColor = vec4(mix(src.rgb, clamp(c, 0.0, 1.0), uIntensity), src.a);
}
`

// NewColorGrade builds the primary color correction pass: brightness,
// contrast, saturation, gamma and color temperature.
func NewColorGrade() Effect {
	b := newBase("colorgrade", "color", colorGradeSrc,
		FloatParam("brightness", 0, -1, 1),
		FloatParam("contrast", 1, 0, 2),
		FloatParam("saturation", 1, 0, 2),
		FloatParam("gamma", 1, 0.2, 3),
		FloatParam("temperature", 0, -1, 1),
	)
	return &colorGrade{base: b}
}

type colorGrade struct{ base }
