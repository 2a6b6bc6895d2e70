// Package renderer drives the effect pipeline: it owns the graphics context,
// the registered effect chain and the pool of intermediate targets, and turns
// one input texture into one rendered output per RenderFrame call.
package renderer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/framefx/framefx/effects"
	"github.com/framefx/framefx/glfwcontext"
	"github.com/framefx/framefx/graphics"
	"github.com/framefx/framefx/headless"
	"github.com/framefx/framefx/shader"
)

type state int

const (
	stateUninitialized state = iota
	stateInitialized
	stateRendering
)

// Renderer chains effects over frames. Initialize, AddEffect, RenderFrame and
// Shutdown must run on the rendering thread (the one holding the GL context).
// Parameter, intensity and enable mutations may come from any goroutine; they
// are staged and take effect at the start of the next frame, never mid-frame.
type Renderer struct {
	mu    sync.Mutex
	state state
	cfg   Config

	ctx  *graphics.Context
	lib  *shader.Library
	quad *graphics.Quad

	chain   []effects.Effect
	pending []func()

	pool  *targetPool
	timer *gpuTimer

	profiling    bool
	frame        int64
	lastFrameEnd time.Time
	stats        Stats

	// The frame loop runs through these indirections so the chain logic can
	// be exercised without a GL context.
	applyFn func(fx effects.Effect, input graphics.TextureHandle, dst *frameTarget, width, height int) error
	blitFn  func(input graphics.TextureHandle, dst *frameTarget) error
	clock   func() float64
}

// New builds an uninitialized renderer. No GL work happens until Initialize.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg.withDefaults()}
}

// Initialize creates the surface (window or EGL pbuffer), establishes the GL
// context on the calling thread and compiles the built-in blit program. On
// failure the renderer stays uninitialized and owns no resources.
func (r *Renderer) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateUninitialized {
		return fmt.Errorf("renderer: Initialize called twice")
	}

	surface, err := newSurface(r.cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContextInitFailed, err)
	}
	ctx := graphics.NewContext(surface)
	if err := ctx.Initialize(); err != nil {
		ctx.Destroy()
		return fmt.Errorf("%w: %v", ErrContextInitFailed, err)
	}

	caps := ctx.Capabilities()
	if r.cfg.Multisample && r.cfg.Samples > caps.MaxSamples {
		log.Printf("renderer: clamping %dx MSAA to device maximum %dx", r.cfg.Samples, caps.MaxSamples)
		r.cfg.Samples = caps.MaxSamples
	}
	if r.cfg.RenderWidth > caps.MaxTextureSize || r.cfg.RenderHeight > caps.MaxTextureSize {
		ctx.Destroy()
		return fmt.Errorf("%w: render size %dx%d exceeds device limit %d",
			ErrContextInitFailed, r.cfg.RenderWidth, r.cfg.RenderHeight, caps.MaxTextureSize)
	}

	lib := shader.NewLibrary()
	blit, err := lib.GetOrCreate("blit", shader.VertexSource, shader.BlitSource)
	if err != nil {
		lib.Destroy()
		ctx.Destroy()
		return fmt.Errorf("%w: blit program: %v", ErrContextInitFailed, err)
	}

	r.ctx = ctx
	r.lib = lib
	r.quad = graphics.NewQuad()
	if caps.TimerQueries {
		r.timer = newGPUTimer()
	}
	r.pool = &targetPool{
		alloc: func() (*frameTarget, error) {
			h, err := ctx.CreateRenderTarget(r.cfg.RenderWidth, r.cfg.RenderHeight, r.cfg.Format)
			if err != nil {
				return nil, err
			}
			tex, _ := ctx.TargetTexture(h)
			return &frameTarget{handle: h, tex: tex}, nil
		},
		free: func(t *frameTarget) {
			if err := ctx.DeleteRenderTarget(t.handle); err != nil {
				log.Printf("renderer: releasing pooled target: %v", err)
			}
		},
	}
	r.applyFn = func(fx effects.Effect, input graphics.TextureHandle, dst *frameTarget, width, height int) error {
		return fx.Apply(&effects.Pass{
			Ctx:    ctx,
			Quad:   r.quad,
			Input:  input,
			Target: dst.handle,
			Width:  width,
			Height: height,
			Time:   r.clock(),
			Frame:  r.frame,
		})
	}
	r.blitFn = func(input graphics.TextureHandle, dst *frameTarget) error {
		return r.drawBlit(blit, input, dst)
	}
	r.clock = surface.Time
	r.profiling = r.cfg.Profile
	r.state = stateInitialized
	return nil
}

func newSurface(cfg Config) (graphics.Surface, error) {
	if cfg.Headless {
		s, err := headless.New(cfg.OutputWidth, cfg.OutputHeight)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := glfwcontext.New(glfwcontext.Options{
		Width:   cfg.OutputWidth,
		Height:  cfg.OutputHeight,
		Title:   cfg.Title,
		Visible: cfg.Visible,
		Samples: cfg.Samples,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// drawBlit copies input into dst with the pass-through program. BindTarget
// sets the viewport, so the copy scales to whatever size dst has.
func (r *Renderer) drawBlit(prog *shader.Program, input graphics.TextureHandle, dst *frameTarget) error {
	texID, err := r.ctx.TextureID(input)
	if err != nil {
		return err
	}
	if err := r.ctx.BindTarget(dst.handle); err != nil {
		return err
	}
	prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	prog.SetInt("uInput", 0)
	r.quad.Draw()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// Context exposes the graphics context for texture uploads and readback.
// Nil until Initialize succeeds.
func (r *Renderer) Context() *graphics.Context { return r.ctx }

// Library exposes the shader library so custom tooling can inspect compiles.
func (r *Renderer) Library() *shader.Library { return r.lib }

// AddEffect compiles and registers an effect at the end of the chain. Must
// run on the rendering thread. If compilation fails the effect is registered
// disabled and the compile error is returned; the rest of the chain keeps
// rendering.
func (r *Renderer) AddEffect(fx effects.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateUninitialized {
		return ErrNotInitialized
	}
	for _, have := range r.chain {
		if have.Name() == fx.Name() {
			return fmt.Errorf("%w: %q", ErrDuplicateEffect, fx.Name())
		}
	}
	err := fx.Compile(r.lib)
	if err != nil {
		fx.SetEnabled(false)
		r.chain = append(r.chain, fx)
		return fmt.Errorf("renderer: effect %q registered disabled: %w", fx.Name(), err)
	}
	r.chain = append(r.chain, fx)
	return nil
}

// RemoveEffect unregisters an effect by name. False if the name is unknown.
func (r *Renderer) RemoveEffect(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, fx := range r.chain {
		if fx.Name() == name {
			fx.Destroy()
			r.chain = append(r.chain[:i], r.chain[i+1:]...)
			return true
		}
	}
	return false
}

// ClearEffects unregisters the whole chain. Subsequent frames pass through.
func (r *Renderer) ClearEffects() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fx := range r.chain {
		fx.Destroy()
	}
	r.chain = nil
}

// Effects returns the registered effect names in chain order.
func (r *Renderer) Effects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.chain))
	for i, fx := range r.chain {
		names[i] = fx.Name()
	}
	return names
}

// Effect returns a registered effect by name for direct inspection.
func (r *Renderer) Effect(name string) (effects.Effect, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(name)
}

func (r *Renderer) findLocked(name string) (effects.Effect, bool) {
	for _, fx := range r.chain {
		if fx.Name() == name {
			return fx, true
		}
	}
	return nil, false
}

// SetEffectEnabled toggles an effect. Takes effect at the next frame; a frame
// already in flight is not affected.
func (r *Renderer) SetEffectEnabled(name string, on bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	fx, ok := r.findLocked(name)
	if !ok {
		return false
	}
	r.pending = append(r.pending, func() { fx.SetEnabled(on) })
	return true
}

// SetEffectParameter stages a clamped scalar parameter change for the next
// frame. False if the effect or parameter is unknown.
func (r *Renderer) SetEffectParameter(effect, param string, v float32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	fx, ok := r.findLocked(effect)
	if !ok {
		return false
	}
	if !hasScalarParam(fx, param) {
		return false
	}
	r.pending = append(r.pending, func() { fx.SetParameter(param, v) })
	return true
}

// SetEffectIntensity stages an intensity change for the next frame.
func (r *Renderer) SetEffectIntensity(name string, v float32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	fx, ok := r.findLocked(name)
	if !ok {
		return false
	}
	r.pending = append(r.pending, func() { fx.SetIntensity(v) })
	return true
}

func hasScalarParam(fx effects.Effect, name string) bool {
	for _, p := range fx.Parameters() {
		if p.Name == name && p.Kind == effects.KindFloat {
			return true
		}
	}
	return false
}

// RenderFrame runs the enabled chain over input and leaves the result in
// output (the zero handle is the default framebuffer). With no enabled
// effects the input is blitted through unchanged and no intermediate targets
// are touched. An effect failure drops the frame, leaves output untouched
// beyond work already issued, and returns an *EffectError; the renderer stays
// usable for the next frame.
func (r *Renderer) RenderFrame(input graphics.TextureHandle, output graphics.RenderTargetHandle) error {
	r.mu.Lock()
	if r.state == stateUninitialized {
		r.mu.Unlock()
		return ErrNotInitialized
	}
	if r.state == stateRendering {
		r.mu.Unlock()
		return fmt.Errorf("renderer: RenderFrame reentered")
	}
	r.state = stateRendering
	for _, apply := range r.pending {
		apply()
	}
	r.pending = r.pending[:0]
	chain := make([]effects.Effect, 0, len(r.chain))
	for _, fx := range r.chain {
		if fx.Enabled() {
			chain = append(chain, fx)
		}
	}
	profiling := r.profiling
	r.mu.Unlock()

	start := time.Now()
	if profiling && r.timer != nil {
		r.timer.begin()
	}
	err := r.renderChain(chain, input, output)
	if profiling && r.timer != nil {
		r.timer.end()
	}

	r.mu.Lock()
	r.state = stateInitialized
	r.frame++
	if err != nil {
		r.stats.DroppedFrames++
	} else {
		r.stats.Frames++
		if profiling {
			r.collectStatsLocked(time.Since(start))
		}
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}
	if r.ctx != nil {
		if lost := r.ctx.CheckLost(); lost != nil {
			return lost
		}
	}
	return nil
}

// renderChain ping-pongs through pooled targets: each effect reads the
// previous hop's texture and draws into a fresh target, the last effect draws
// straight into the caller's output. At most two pooled targets are live at
// any point regardless of chain length.
func (r *Renderer) renderChain(chain []effects.Effect, input graphics.TextureHandle, output graphics.RenderTargetHandle) error {
	outW, outH := r.outputSize(output)
	if len(chain) == 0 {
		if err := r.blitFn(input, &frameTarget{handle: output}); err != nil {
			return &EffectError{Name: "blit", Err: err}
		}
		return nil
	}

	cur := input
	var held *frameTarget
	for i, fx := range chain {
		last := i == len(chain)-1

		var dst *frameTarget
		w, h := r.cfg.RenderWidth, r.cfg.RenderHeight
		if last {
			dst = &frameTarget{handle: output}
			w, h = outW, outH
		} else {
			t, err := r.pool.acquire()
			if err != nil {
				r.pool.recycle(held)
				return &EffectError{Name: fx.Name(), Err: err}
			}
			dst = t
		}

		if err := r.applyFn(fx, cur, dst, w, h); err != nil {
			if !last {
				r.pool.recycle(dst)
			}
			r.pool.recycle(held)
			return &EffectError{Name: fx.Name(), Err: err}
		}

		// The hop that fed this pass is free again.
		r.pool.recycle(held)
		held = nil
		if !last {
			held = dst
			cur = dst.tex
		}
	}
	return nil
}

func (r *Renderer) outputSize(output graphics.RenderTargetHandle) (int, int) {
	if r.ctx != nil {
		if w, h, ok := r.ctx.TargetSize(output); ok {
			return w, h
		}
	}
	return r.cfg.OutputWidth, r.cfg.OutputHeight
}

func (r *Renderer) collectStatsLocked(cpu time.Duration) {
	r.stats.CPUTime = cpu
	if r.timer != nil {
		r.stats.GPUTime = r.timer.elapsed()
	}
	now := time.Now()
	if !r.lastFrameEnd.IsZero() {
		r.stats.FrameTime = now.Sub(r.lastFrameEnd)
		if r.stats.FrameTime > 0 {
			r.stats.FPS = float64(time.Second) / float64(r.stats.FrameTime)
		}
	}
	r.lastFrameEnd = now
	if r.ctx != nil {
		r.stats.LiveTextures = r.ctx.LiveTextures()
		r.stats.LiveTargets = r.ctx.LiveTargets()
	}
}

// Stats returns a copy of the current counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// ResetStats zeroes every counter, cumulative ones included.
func (r *Renderer) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
	r.lastFrameEnd = time.Time{}
}

// SetProfiling toggles per-frame stats collection. Cheap enough to leave on;
// off by default so uninstrumented runs skip the timer queries.
func (r *Renderer) SetProfiling(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiling = on
}

// Present flips the default framebuffer to the window.
func (r *Renderer) Present() {
	if r.ctx != nil {
		r.ctx.Present()
	}
}

// Shutdown destroys the chain, the pool, the shader library and the context.
// The renderer returns to the uninitialized state and may be initialized
// again with a fresh surface.
func (r *Renderer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateUninitialized {
		return
	}
	for _, fx := range r.chain {
		fx.Destroy()
	}
	r.chain = nil
	r.pending = nil
	if r.pool != nil {
		r.pool.destroy()
		r.pool = nil
	}
	if r.timer != nil {
		r.timer.destroy()
		r.timer = nil
	}
	if r.quad != nil {
		r.quad.Destroy()
		r.quad = nil
	}
	if r.lib != nil {
		r.lib.Destroy()
		r.lib = nil
	}
	if r.ctx != nil {
		r.ctx.Destroy()
		r.ctx = nil
	}
	r.state = stateUninitialized
}
