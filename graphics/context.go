package graphics

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// nextContextID tags handles with their issuing context.
var nextContextID uint32

// glContextLost is GL_CONTEXT_LOST from KHR_robustness; the 4.1 core headers
// predate it but drivers that support robustness report it through GetError.
const glContextLost = 0x0507

type texInfo struct {
	id     uint32
	width  int
	height int
	format PixelFormat
}

type targetInfo struct {
	fbo    uint32
	tex    TextureHandle
	width  int
	height int
	format PixelFormat
}

// Context owns the GL context carried by a Surface and every texture and
// render target allocated through it. Effects and the renderer hold
// generation-counted handles; only the Context touches GL object names, so a
// stale handle resolves to an error instead of a reused resource.
//
// No method is safe for concurrent use. Everything must run on the thread
// that called MakeCurrent (the rendering thread).
type Context struct {
	surface  Surface
	id       uint32
	caps     Capabilities
	textures arena[texInfo]
	targets  arena[targetInfo]
	current  bool
	lost     bool
}

// NewContext wraps an already-created surface. Initialize must be called on
// the rendering thread before any resource creation.
func NewContext(surface Surface) *Context {
	return &Context{surface: surface, id: atomic.AddUint32(&nextContextID, 1)}
}

// Initialize makes the context current on the calling thread, loads the GL
// function pointers and queries device capabilities.
func (c *Context) Initialize() error {
	c.surface.MakeCurrent()
	c.current = true
	if err := gl.Init(); err != nil {
		return fmt.Errorf("loading GL functions: %v: %w", err, ErrUnsupportedPlatform)
	}
	c.caps = queryCapabilities()
	log.Printf("GL context ready: %s (%s)", c.caps.Renderer, c.caps.Version)
	return nil
}

// Capabilities returns the device limits queried at Initialize.
func (c *Context) Capabilities() Capabilities { return c.caps }

// Surface returns the surface the context renders to.
func (c *Context) Surface() Surface { return c.surface }

// MakeCurrent binds the context to the calling thread. The contract is
// exclusive: one thread at a time.
func (c *Context) MakeCurrent() {
	c.surface.MakeCurrent()
	c.current = true
}

// ReleaseCurrent unbinds the context from the calling thread.
func (c *Context) ReleaseCurrent() {
	c.surface.DetachCurrent()
	c.current = false
}

// Present flips the rendered frame to the surface's destination.
func (c *Context) Present() {
	c.surface.SwapBuffers()
}

// CreateTexture allocates GPU storage for a width x height image, optionally
// seeded with CPU pixels (len must be width*height*format.BytesPerPixel; nil
// leaves the contents undefined). Returns an invalid handle and
// ErrOutOfMemory when device memory is exhausted.
func (c *Context) CreateTexture(width, height int, pixels []byte, format PixelFormat) (TextureHandle, error) {
	if err := c.checkUsable(); err != nil {
		return TextureHandle{}, err
	}
	if width <= 0 || height <= 0 || width > c.caps.MaxTextureSize || height > c.caps.MaxTextureSize {
		return TextureHandle{}, fmt.Errorf("texture size %dx%d exceeds device limit %d: %w",
			width, height, c.caps.MaxTextureSize, ErrAllocationFailed)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	internal, upload, xtype := format.glInternal()
	if pixels != nil {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, upload, xtype, gl.Ptr(pixels))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, upload, xtype, nil)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := c.glError(); err != nil {
		gl.DeleteTextures(1, &id)
		return TextureHandle{}, fmt.Errorf("allocating %dx%d %s texture: %w", width, height, format, err)
	}

	h := c.textures.insert(texInfo{id: id, width: width, height: height, format: format})
	return TextureHandle{h: h, ctx: c.id}, nil
}

// UpdateTexture replaces the full contents of an existing texture with CPU
// pixels. This is the upload path the upstream frame source uses per frame.
func (c *Context) UpdateTexture(t TextureHandle, pixels []byte) error {
	if err := c.checkUsable(); err != nil {
		return err
	}
	if err := c.ownsTexture(t); err != nil {
		return err
	}
	info, ok := c.textures.get(t.h)
	if !ok {
		return ErrStaleHandle
	}
	want := info.width * info.height * info.format.BytesPerPixel()
	if len(pixels) != want {
		return fmt.Errorf("pixel buffer is %d bytes, texture needs %d", len(pixels), want)
	}
	_, upload, xtype := info.format.glInternal()
	gl.BindTexture(gl.TEXTURE_2D, info.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(info.width), int32(info.height), upload, xtype, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return c.glError()
}

// DeleteTexture releases the GPU storage. Deleting twice returns
// ErrStaleHandle rather than corrupting another resource.
func (c *Context) DeleteTexture(t TextureHandle) error {
	if err := c.ownsTexture(t); err != nil {
		return err
	}
	info, ok := c.textures.remove(t.h)
	if !ok {
		return ErrStaleHandle
	}
	gl.DeleteTextures(1, &info.id)
	return nil
}

// CreateRenderTarget builds a framebuffer with a fresh backing texture as its
// color attachment. The backing texture gets its own handle so a completed
// pass can be sampled by the next one.
func (c *Context) CreateRenderTarget(width, height int, format PixelFormat) (RenderTargetHandle, error) {
	if err := c.checkUsable(); err != nil {
		return RenderTargetHandle{}, err
	}
	tex, err := c.CreateTexture(width, height, nil, format)
	if err != nil {
		return RenderTargetHandle{}, err
	}
	info, _ := c.textures.get(tex.h)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, info.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		c.DeleteTexture(tex)
		if glErr := c.glError(); glErr != nil {
			return RenderTargetHandle{}, fmt.Errorf("render target %dx%d: %w", width, height, glErr)
		}
		return RenderTargetHandle{}, fmt.Errorf("render target %dx%d incomplete (status 0x%x): %w",
			width, height, status, ErrAllocationFailed)
	}

	h := c.targets.insert(targetInfo{fbo: fbo, tex: tex, width: width, height: height, format: format})
	return RenderTargetHandle{h: h, ctx: c.id}, nil
}

// DeleteRenderTarget releases the framebuffer and its backing texture.
func (c *Context) DeleteRenderTarget(t RenderTargetHandle) error {
	if err := c.ownsTarget(t); err != nil {
		return err
	}
	info, ok := c.targets.remove(t.h)
	if !ok {
		return ErrStaleHandle
	}
	gl.DeleteFramebuffers(1, &info.fbo)
	return c.DeleteTexture(info.tex)
}

// TargetTexture returns the backing color texture of an offscreen target.
// The default framebuffer (zero handle) has no sampleable texture.
func (c *Context) TargetTexture(t RenderTargetHandle) (TextureHandle, bool) {
	if c.ownsTarget(t) != nil {
		return TextureHandle{}, false
	}
	info, ok := c.targets.get(t.h)
	if !ok {
		return TextureHandle{}, false
	}
	return info.tex, true
}

// TargetSize returns the pixel size of a target; the zero handle reports the
// surface's default framebuffer size.
func (c *Context) TargetSize(t RenderTargetHandle) (int, int, bool) {
	if !t.Valid() {
		w, h := c.surface.FramebufferSize()
		return w, h, true
	}
	if c.ownsTarget(t) != nil {
		return 0, 0, false
	}
	info, ok := c.targets.get(t.h)
	if !ok {
		return 0, 0, false
	}
	return info.width, info.height, true
}

// TargetFormat returns the color format of a target. The default framebuffer
// reports RGBA8.
func (c *Context) TargetFormat(t RenderTargetHandle) (PixelFormat, bool) {
	if !t.Valid() {
		return RGBA8, true
	}
	if c.ownsTarget(t) != nil {
		return 0, false
	}
	info, ok := c.targets.get(t.h)
	if !ok {
		return 0, false
	}
	return info.format, true
}

// TextureInfo returns the dimensions and format of a texture.
func (c *Context) TextureInfo(t TextureHandle) (width, height int, format PixelFormat, ok bool) {
	if c.ownsTexture(t) != nil {
		return 0, 0, 0, false
	}
	info, got := c.textures.get(t.h)
	if !got {
		return 0, 0, 0, false
	}
	return info.width, info.height, info.format, true
}

// TextureID resolves a handle to the GL texture name for binding. Errors on
// stale handles instead of returning a name that may belong to someone else.
func (c *Context) TextureID(t TextureHandle) (uint32, error) {
	if err := c.ownsTexture(t); err != nil {
		return 0, err
	}
	info, ok := c.textures.get(t.h)
	if !ok {
		return 0, ErrStaleHandle
	}
	return info.id, nil
}

// BindTarget makes the target the draw destination and sets the viewport to
// cover it. The zero handle binds the default framebuffer.
func (c *Context) BindTarget(t RenderTargetHandle) error {
	if !t.Valid() {
		w, h := c.surface.FramebufferSize()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(w), int32(h))
		return nil
	}
	if err := c.ownsTarget(t); err != nil {
		return err
	}
	info, ok := c.targets.get(t.h)
	if !ok {
		return ErrStaleHandle
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, info.fbo)
	gl.Viewport(0, 0, int32(info.width), int32(info.height))
	return nil
}

// BindReadTarget binds the target's framebuffer for pixel readback.
func (c *Context) BindReadTarget(t RenderTargetHandle) error {
	if !t.Valid() {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
		return nil
	}
	if err := c.ownsTarget(t); err != nil {
		return err
	}
	info, ok := c.targets.get(t.h)
	if !ok {
		return ErrStaleHandle
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, info.fbo)
	return nil
}

// LiveTextures reports how many textures are currently allocated, render
// target backings included.
func (c *Context) LiveTextures() int { return c.textures.count() }

// LiveTargets reports how many offscreen render targets are currently
// allocated.
func (c *Context) LiveTargets() int { return c.targets.count() }

// CheckLost drains the GL error queue and reports whether the device
// reclaimed the context. Called by the renderer at frame boundaries.
func (c *Context) CheckLost() error {
	if c.lost {
		return ErrContextLost
	}
	return c.glError()
}

// Destroy releases every live resource and shuts the surface down. All
// handles issued by this context are invalid afterwards.
func (c *Context) Destroy() {
	if c.surface == nil {
		return
	}
	c.targets.each(func(t *targetInfo) {
		gl.DeleteFramebuffers(1, &t.fbo)
	})
	c.textures.each(func(t *texInfo) {
		gl.DeleteTextures(1, &t.id)
	})
	if n := c.textures.count(); n > 0 {
		log.Printf("graphics: released %d texture(s) and %d target(s) at shutdown",
			n, c.targets.count())
	}
	c.textures.reset()
	c.targets.reset()
	c.surface.Shutdown()
	c.surface = nil
	c.current = false
}

// ownsTexture rejects handles issued by another context before they reach
// arena resolution, where an index collision could resolve them by accident.
func (c *Context) ownsTexture(t TextureHandle) error {
	if t.h.valid() && t.ctx != c.id {
		return ErrWrongContext
	}
	return nil
}

func (c *Context) ownsTarget(t RenderTargetHandle) error {
	if t.h.valid() && t.ctx != c.id {
		return ErrWrongContext
	}
	return nil
}

func (c *Context) checkUsable() error {
	if c.lost {
		return ErrContextLost
	}
	if !c.current {
		return ErrNotCurrent
	}
	return nil
}

// glError folds the GL error queue into the context error taxonomy.
func (c *Context) glError() error {
	var err error
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return err
		}
		switch code {
		case gl.OUT_OF_MEMORY:
			err = ErrOutOfMemory
		case glContextLost:
			c.lost = true
			err = ErrContextLost
		default:
			if err == nil {
				err = fmt.Errorf("graphics: GL error 0x%04x", code)
			}
		}
	}
}
