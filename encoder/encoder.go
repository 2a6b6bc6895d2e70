// Package encoder feeds rendered frames to an ffmpeg process over a pipe and
// writes a compressed video file. Frames arrive as raw RGBA exactly as the
// readback path produces them.
package encoder

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options selects the output file and encoding parameters.
type Options struct {
	OutputFile string
	Width      int
	Height     int
	FPS        int

	// Codec is "h264" or "hevc".
	Codec string

	// Bitrate in ffmpeg notation, e.g. "25M". Empty uses the default.
	Bitrate string

	// FFMPEGPath overrides the ffmpeg binary on PATH.
	FFMPEGPath string

	// VFlip flips each frame vertically in the filter graph. GL readback is
	// bottom-up, so recording straight from a framebuffer wants this on.
	VFlip bool
}

// Frame is one raw video frame with its presentation timestamp in frame units.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Encoder owns the ffmpeg process. Encode may be called from any single
// goroutine; Close waits for ffmpeg to finish writing the container.
type Encoder struct {
	opts   Options
	writer *io.PipeWriter

	mu     sync.Mutex
	closed bool
	errc   chan error
}

// New starts ffmpeg and returns an encoder ready for frames.
func New(opts Options) (*Encoder, error) {
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("encoder: no output file")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("encoder: bad frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Codec == "" {
		opts.Codec = "h264"
	}

	reader, writer := io.Pipe()
	inputArgs, outputArgs := buildArgs(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(reader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	e := &Encoder{
		opts:   opts,
		writer: writer,
		errc:   make(chan error, 1),
	}
	go func() {
		e.errc <- cmd.Run()
	}()
	return e, nil
}

func buildArgs(opts Options) (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{"pix_fmt": "yuv420p"}

	switch runtime.GOOS {
	case "linux":
		log.Println("Using Linux (NVENC) hardware acceleration.")
		if opts.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_nvenc"
		} else {
			outputArgs["c:v"] = "h264_nvenc"
		}
		outputArgs["preset"] = "p2"
	case "darwin":
		log.Println("Using macOS (VideoToolbox) hardware acceleration.")
		if opts.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		log.Println("Using software encoding pipeline (no hardware acceleration).")
		if opts.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if opts.VFlip {
		outputArgs["vf"] = "vflip"
	}
	if opts.Bitrate != "" {
		outputArgs["b:v"] = opts.Bitrate
	}
	if opts.Codec == "hevc" && len(opts.OutputFile) > 4 && opts.OutputFile[len(opts.OutputFile)-4:] == ".mp4" {
		outputArgs["tag:v"] = "hvc1"
	}
	return inputArgs, outputArgs
}

// FrameSize is the byte length Encode expects per frame.
func (e *Encoder) FrameSize() int {
	return e.opts.Width * e.opts.Height * 4
}

// Encode queues one frame. Blocks while ffmpeg's input buffer is full, which
// naturally paces a renderer that outruns the encoder.
func (e *Encoder) Encode(f *Frame) error {
	if len(f.Pixels) != e.FrameSize() {
		return fmt.Errorf("encoder: frame %d is %d bytes, want %d", f.PTS, len(f.Pixels), e.FrameSize())
	}
	if _, err := e.writer.Write(f.Pixels); err != nil {
		return fmt.Errorf("encoder: writing frame %d: %w", f.PTS, err)
	}
	return nil
}

// Close signals end of stream and waits for ffmpeg to finalize the file.
func (e *Encoder) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.writer.Close()
	return <-e.errc
}
