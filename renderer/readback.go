package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/framefx/framefx/graphics"
)

// Reader pulls rendered frames off the GPU through a ring of pixel pack
// buffers. ReadPixels into a PBO returns immediately; the mapped result is
// the frame issued len(pbos)-1 calls earlier, so the GPU never stalls on the
// transfer. Callers must account for that latency: Read returns nil during
// warm-up and Flush drains the tail after the last frame.
type Reader struct {
	ctx    *graphics.Context
	width  int
	height int
	format graphics.PixelFormat
	size   int

	pbos     []uint32
	head     int
	tail     int
	inflight int
}

// NewReader allocates depth pack buffers sized for width x height frames.
// A depth of 2 or 3 keeps the encoder fed without stalling the render loop.
func NewReader(ctx *graphics.Context, width, height, depth int, format graphics.PixelFormat) (*Reader, error) {
	if depth < 2 {
		depth = 2
	}
	r := &Reader{
		ctx:    ctx,
		width:  width,
		height: height,
		format: format,
		size:   width * height * format.BytesPerPixel(),
		pbos:   make([]uint32, depth),
	}
	gl.GenBuffers(int32(depth), &r.pbos[0])
	for _, pbo := range r.pbos {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, pbo)
		gl.BufferData(gl.PIXEL_PACK_BUFFER, r.size, nil, gl.STREAM_READ)
	}
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	if err := ctx.CheckLost(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("allocating %d readback buffer(s): %w", depth, err)
	}
	return r, nil
}

// FrameSize is the byte length of one returned frame.
func (r *Reader) FrameSize() int { return r.size }

// Read schedules an asynchronous transfer of the target's pixels and returns
// the oldest completed frame, or nil while the ring is still warming up. The
// returned slice is owned by the caller.
func (r *Reader) Read(target graphics.RenderTargetHandle) ([]byte, error) {
	if err := r.ctx.BindReadTarget(target); err != nil {
		return nil, err
	}
	upload, xtype := glTransfer(r.format)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, r.pbos[r.head])
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), upload, xtype, nil)
	r.head = (r.head + 1) % len(r.pbos)
	r.inflight++

	if r.inflight < len(r.pbos) {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, nil
	}
	return r.mapTail()
}

// Flush drains the frames still in flight, in issue order. Call after the
// last Read of a stream so no trailing frames are lost.
func (r *Reader) Flush() ([][]byte, error) {
	var frames [][]byte
	for r.inflight > 0 {
		data, err := r.mapTail()
		if err != nil {
			return frames, err
		}
		frames = append(frames, data)
	}
	return frames, nil
}

func (r *Reader) mapTail() ([]byte, error) {
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, r.pbos[r.tail])
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, r.size, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, fmt.Errorf("mapping readback buffer %d failed", r.tail)
	}
	data := make([]byte, r.size)
	copy(data, (*[1 << 30]byte)(ptr)[:r.size:r.size])
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	r.tail = (r.tail + 1) % len(r.pbos)
	r.inflight--
	return data, nil
}

// Destroy releases the pack buffers.
func (r *Reader) Destroy() {
	if len(r.pbos) > 0 {
		gl.DeleteBuffers(int32(len(r.pbos)), &r.pbos[0])
		r.pbos = nil
	}
}

// glTransfer mirrors the format's upload parameters for readback.
func glTransfer(f graphics.PixelFormat) (uint32, uint32) {
	switch f {
	case graphics.RGBA16F, graphics.RGBA32F:
		return gl.RGBA, gl.FLOAT
	default:
		return gl.RGBA, gl.UNSIGNED_BYTE
	}
}
