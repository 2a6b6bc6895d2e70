package shader

// VertexSource is the shared full-screen pass vertex stage. Every effect and
// the blit program link against it; UVs are derived from clip-space position.
const VertexSource = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// BlitSource copies a texture unchanged; the pass-through path and
// intermediate copies use it.
const BlitSource = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
void main() { fragColor = texture(uInput, frag_uv); }
`

// FlipBlitSource copies with a vertical flip, for presenting FBO content on
// a window whose origin convention is inverted relative to the pipeline.
const FlipBlitSource = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D uInput;
void main() { fragColor = texture(uInput, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`
