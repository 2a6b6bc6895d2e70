package renderer

import "time"

// Stats describes the most recent rendered frame plus cumulative counters.
// Per-frame fields are only refreshed while profiling is enabled.
type Stats struct {
	// GPUTime is the measured GPU execution time of the last frame whose
	// timer query has resolved. Zero when the context lacks timer queries.
	GPUTime time.Duration

	// CPUTime is the wall time RenderFrame spent issuing the last frame.
	CPUTime time.Duration

	// FrameTime is the interval between the last two frames.
	FrameTime time.Duration

	// FPS is derived from FrameTime.
	FPS float64

	Frames        int64
	DroppedFrames int64

	LiveTextures int
	LiveTargets  int
}
