package renderer

import (
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// gpuTimer measures GPU frame time with a GL_TIME_ELAPSED query. The result
// is polled without blocking, so a reading may lag the frame it measured by
// a frame or two. Frames that begin while a result is still in flight are
// simply not timed.
type gpuTimer struct {
	query   uint32
	active  bool
	pending bool
	last    time.Duration
}

func newGPUTimer() *gpuTimer {
	t := &gpuTimer{}
	gl.GenQueries(1, &t.query)
	return t
}

func (t *gpuTimer) begin() {
	if t.pending && !t.poll() {
		return
	}
	gl.BeginQuery(gl.TIME_ELAPSED, t.query)
	t.active = true
}

func (t *gpuTimer) end() {
	if !t.active {
		return
	}
	gl.EndQuery(gl.TIME_ELAPSED)
	t.active = false
	t.pending = true
}

// poll retrieves the query result if the GPU has finished with it.
func (t *gpuTimer) poll() bool {
	var avail int32
	gl.GetQueryObjectiv(t.query, gl.QUERY_RESULT_AVAILABLE, &avail)
	if avail == 0 {
		return false
	}
	var ns uint64
	gl.GetQueryObjectui64v(t.query, gl.QUERY_RESULT, &ns)
	t.last = time.Duration(ns)
	t.pending = false
	return true
}

// elapsed returns the most recent resolved measurement.
func (t *gpuTimer) elapsed() time.Duration {
	if t.pending {
		t.poll()
	}
	return t.last
}

func (t *gpuTimer) destroy() {
	gl.DeleteQueries(1, &t.query)
	t.query = 0
}
