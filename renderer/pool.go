package renderer

import "github.com/framefx/framefx/graphics"

// frameTarget pairs a render target with its color texture so a pass can be
// both rendered into and sampled on the next hop without extra lookups.
// The final target of a frame is caller-owned and carries no texture.
type frameTarget struct {
	handle graphics.RenderTargetHandle
	tex    graphics.TextureHandle
}

// targetPool recycles intermediate render targets between frames. A chain of
// any length ping-pongs through at most two pooled targets, so the pool never
// grows past that under normal operation.
type targetPool struct {
	alloc func() (*frameTarget, error)
	free  func(*frameTarget)

	idle []*frameTarget
	live int
	peak int
}

func (p *targetPool) acquire() (*frameTarget, error) {
	if n := len(p.idle); n > 0 {
		t := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.live++
		return t, nil
	}
	t, err := p.alloc()
	if err != nil {
		return nil, err
	}
	p.live++
	if total := p.live + len(p.idle); total > p.peak {
		p.peak = total
	}
	return t, nil
}

func (p *targetPool) recycle(t *frameTarget) {
	if t == nil {
		return
	}
	p.idle = append(p.idle, t)
	p.live--
}

func (p *targetPool) destroy() {
	for _, t := range p.idle {
		p.free(t)
	}
	p.idle = nil
	p.live = 0
}
