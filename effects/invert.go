package effects

const invertSrc = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
uniform float uIntensity;

void main() {
    vec4 src = texture(uInput, frag_uv);
    fragColor = vec4(mix(src.rgb, 1.0 - src.rgb, uIntensity), src.a);
}
`

// NewInvert flips every color channel.
func NewInvert() Effect {
	b := newBase("invert", "color", invertSrc)
	return &invert{base: b}
}

type invert struct{ base }
