package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/framefx/framefx/effects"
	"github.com/framefx/framefx/encoder"
	"github.com/framefx/framefx/glfwcontext"
	"github.com/framefx/framefx/graphics"
	"github.com/framefx/framefx/options"
	"github.com/framefx/framefx/renderer"
	"github.com/framefx/framefx/shader"
	"github.com/framefx/framefx/source"
)

func init() {
	runtime.LockOSThread()
}

func parseFlags() *options.Options {
	o := &options.Options{
		Help:         flag.Bool("help", false, "Show help message"),
		Effects:      flag.String("effects", "colorgrade:contrast=1.2|vignette:intensity=0.6", "Effect chain, e.g. \"colorgrade:contrast=1.3|blur:radius=6|vignette\""),
		InputFile:    flag.String("input", "", "PNG or JPEG input image (default: animated test pattern)"),
		Width:        flag.Int("width", 1280, "Output width"),
		Height:       flag.Int("height", 720, "Output height"),
		RenderWidth:  flag.Int("render-width", 0, "Internal render width (defaults to output width)"),
		RenderHeight: flag.Int("render-height", 0, "Internal render height (defaults to output height)"),
		Record:       flag.Bool("record", false, "Enable recording mode"),
		Duration:     flag.Float64("duration", 0, "Duration in seconds (0: preview until closed, record 10s)"),
		FPS:          flag.Int("fps", 60, "Frames per second"),
		OutputFile:   flag.String("output", "output.mp4", "Output file name for recording"),
		Codec:        flag.String("codec", "h264", "Video codec (h264 or hevc)"),
		Bitrate:      flag.String("bitrate", "", "Target bitrate, e.g. 25M"),
		FFMPEGPath:   flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		NumPBOs:      flag.Int("num-pbos", 3, "Readback buffer depth for recording"),
		Headless:     flag.Bool("headless", false, "Render on an EGL pbuffer without a window (Linux)"),
		Samples:      flag.Int("samples", 0, "MSAA sample count for the window"),
		Profile:      flag.Bool("profile", false, "Log per-frame render stats"),
		Animate:      flag.Bool("animate", false, "Fade the chain in over the first two seconds"),
	}
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	if *o.Help {
		fmt.Println("framefx: run an effect chain over a test pattern, on screen or to a file")
		flag.PrintDefaults()
		return
	}

	chain, err := effects.ParseChain(*o.Effects)
	if err != nil {
		log.Fatalf("Bad -effects value: %v", err)
	}

	// Recording hides the window; -headless skips windowing entirely and
	// renders on an EGL pbuffer instead.
	headless := *o.Headless
	if !headless {
		if err := glfwcontext.Init(); err != nil {
			log.Fatalf("Initializing GLFW: %v", err)
		}
		defer glfwcontext.Terminate()
	}

	renderW, renderH := *o.RenderWidth, *o.RenderHeight
	if renderW <= 0 {
		renderW = *o.Width
	}
	if renderH <= 0 {
		renderH = *o.Height
	}

	r := renderer.New(renderer.Config{
		RenderWidth:  renderW,
		RenderHeight: renderH,
		OutputWidth:  *o.Width,
		OutputHeight: *o.Height,
		Multisample:  *o.Samples > 0,
		Samples:      *o.Samples,
		Profile:      *o.Profile,
		Headless:     headless,
		Visible:      !headless && !*o.Record,
		Title:        "framefx",
	})
	if err := r.Initialize(); err != nil {
		log.Fatalf("Initializing renderer: %v", err)
	}
	defer r.Shutdown()

	for _, fx := range chain {
		if err := r.AddEffect(fx); err != nil {
			var ce *shader.CompileError
			if errors.As(err, &ce) {
				log.Printf("Effect %q disabled: %v", fx.Name(), ce)
				continue
			}
			log.Fatalf("Adding effect %q: %v", fx.Name(), err)
		}
	}
	log.Printf("Effect chain: %v", r.Effects())

	var anim *effects.Animator
	if *o.Animate {
		anim = &effects.Animator{}
		for _, fx := range chain {
			fx.SetIntensity(0)
			anim.TweenIntensity(fx, 1, 2, ease.OutQuad)
			name := fx.Name()
			anim.OnDone(func() {
				log.Printf("Effect %q fully faded in", name)
			})
		}
	}

	input, upload, err := makeSource(r.Context(), o, renderW, renderH)
	if err != nil {
		log.Fatalf("Creating input source: %v", err)
	}

	if *o.Record {
		if err := record(r, o, input, upload, anim); err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *o.OutputFile)
		return
	}
	preview(r, o, input, upload, anim)
}

// makeSource builds the input texture and a per-frame upload step: either a
// static image from -input or the animated test pattern.
func makeSource(ctx *graphics.Context, o *options.Options, w, h int) (graphics.TextureHandle, func(t float64) error, error) {
	if *o.InputFile != "" {
		img, err := source.LoadFile(*o.InputFile, true)
		if err != nil {
			return graphics.TextureHandle{}, nil, err
		}
		tex, err := ctx.CreateTexture(img.Width, img.Height, img.Pixels, graphics.RGBA8)
		if err != nil {
			return graphics.TextureHandle{}, nil, err
		}
		log.Printf("Input image %s (%dx%d)", *o.InputFile, img.Width, img.Height)
		return tex, func(float64) error { return nil }, nil
	}

	tex, err := ctx.CreateTexture(w, h, nil, graphics.RGBA8)
	if err != nil {
		return graphics.TextureHandle{}, nil, err
	}
	buf := make([]byte, w*h*graphics.RGBA8.BytesPerPixel())
	return tex, func(t float64) error {
		testPattern(buf, w, h, t)
		return ctx.UpdateTexture(tex, buf)
	}, nil
}

// preview runs the chain against the window at display rate until the window
// closes or the duration elapses.
func preview(r *renderer.Renderer, o *options.Options, input graphics.TextureHandle, upload func(float64) error, anim *effects.Animator) {
	ctx := r.Context()
	surface, _ := ctx.Surface().(*glfwcontext.Surface)

	start := ctx.Surface().Time()
	prev := start
	frames := 0
	for {
		if surface != nil && surface.ShouldClose() {
			return
		}
		now := ctx.Surface().Time()
		if *o.Duration > 0 && now-start > *o.Duration {
			return
		}
		if anim != nil {
			anim.Update(float32(now - prev))
		}
		prev = now

		if err := upload(now); err != nil {
			log.Fatalf("Uploading frame: %v", err)
		}
		if err := r.RenderFrame(input, graphics.RenderTargetHandle{}); err != nil {
			log.Printf("Frame dropped: %v", err)
		}
		r.Present()

		frames++
		if *o.Profile && frames%120 == 0 {
			s := r.Stats()
			log.Printf("frame %d: cpu=%v gpu=%v fps=%.1f dropped=%d targets=%d",
				frames, s.CPUTime, s.GPUTime, s.FPS, s.DroppedFrames, s.LiveTargets)
		}
	}
}

// record renders duration*fps frames into an offscreen target, pulls them
// back through the PBO ring and pipes them to ffmpeg.
func record(r *renderer.Renderer, o *options.Options, input graphics.TextureHandle, upload func(float64) error, anim *effects.Animator) error {
	ctx := r.Context()
	target, err := ctx.CreateRenderTarget(*o.Width, *o.Height, graphics.RGBA8)
	if err != nil {
		return fmt.Errorf("creating output target: %w", err)
	}
	defer ctx.DeleteRenderTarget(target)

	reader, err := renderer.NewReader(ctx, *o.Width, *o.Height, *o.NumPBOs, graphics.RGBA8)
	if err != nil {
		return err
	}
	defer reader.Destroy()

	enc, err := encoder.New(encoder.Options{
		OutputFile: *o.OutputFile,
		Width:      *o.Width,
		Height:     *o.Height,
		FPS:        *o.FPS,
		Codec:      *o.Codec,
		Bitrate:    *o.Bitrate,
		FFMPEGPath: *o.FFMPEGPath,
		VFlip:      true,
	})
	if err != nil {
		return err
	}

	duration := *o.Duration
	if duration <= 0 {
		duration = 10
	}
	total := int(duration * float64(*o.FPS))
	dt := 1.0 / float64(*o.FPS)
	var pts int64
	start := time.Now()
	for frame := 0; frame < total; frame++ {
		t := float64(frame) * dt
		if anim != nil {
			anim.Update(float32(dt))
		}
		if err := upload(t); err != nil {
			enc.Close()
			return fmt.Errorf("uploading frame %d: %w", frame, err)
		}
		if err := r.RenderFrame(input, target); err != nil {
			log.Printf("Frame %d dropped: %v", frame, err)
			continue
		}
		data, err := reader.Read(target)
		if err != nil {
			enc.Close()
			return fmt.Errorf("reading back frame %d: %w", frame, err)
		}
		if data == nil {
			continue // ring still warming up
		}
		if err := enc.Encode(&encoder.Frame{Pixels: data, PTS: pts}); err != nil {
			enc.Close()
			return err
		}
		pts++
	}

	tail, err := reader.Flush()
	if err != nil {
		enc.Close()
		return fmt.Errorf("draining readback ring: %w", err)
	}
	for _, data := range tail {
		if err := enc.Encode(&encoder.Frame{Pixels: data, PTS: pts}); err != nil {
			enc.Close()
			return err
		}
		pts++
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", *o.OutputFile, err)
	}
	elapsed := time.Since(start)
	log.Printf("Encoded %d frames in %v (%.1f fps)", pts, elapsed.Round(time.Millisecond),
		float64(pts)/elapsed.Seconds())
	if *o.Profile {
		s := r.Stats()
		log.Printf("render stats: cpu=%v gpu=%v dropped=%d", s.CPUTime, s.GPUTime, s.DroppedFrames)
	}
	return nil
}
