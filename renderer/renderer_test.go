package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/framefx/framefx/effects"
	"github.com/framefx/framefx/graphics"
	"github.com/framefx/framefx/shader"
)

// stubEffect records apply order without touching GL.
type stubEffect struct {
	name       string
	enabled    bool
	intensity  float32
	params     []*effects.Param
	compileErr error
	applyErr   error

	applied   int
	destroyed bool
}

func newStub(name string) *stubEffect {
	return &stubEffect{name: name, enabled: true, intensity: 1}
}

func (s *stubEffect) Name() string { return s.name }

func (s *stubEffect) Category() string { return "test" }

func (s *stubEffect) Parameters() []*effects.Param { return s.params }

func (s *stubEffect) SetParameter(name string, v float32) bool {
	for _, p := range s.params {
		if p.Name == name && p.Kind == effects.KindFloat {
			return true
		}
	}
	return false
}

func (s *stubEffect) SetVec3Parameter(string, mgl32.Vec3) bool { return false }

func (s *stubEffect) Intensity() float32     { return s.intensity }
func (s *stubEffect) SetIntensity(v float32) { s.intensity = v }
func (s *stubEffect) Enabled() bool          { return s.enabled }
func (s *stubEffect) SetEnabled(on bool)     { s.enabled = on }

func (s *stubEffect) Compile(*shader.Library) error { return s.compileErr }

func (s *stubEffect) Apply(*effects.Pass) error {
	s.applied++
	return s.applyErr
}

func (s *stubEffect) Destroy() { s.destroyed = true }

// testRenderer wires a renderer with fake apply/blit/alloc seams so chain
// orchestration runs without a GL context.
type testRenderer struct {
	r *Renderer

	order     []string
	targets   []*frameTarget
	blits     int
	allocated int
}

func newTestRenderer() *testRenderer {
	tr := &testRenderer{}
	r := New(Config{RenderWidth: 64, RenderHeight: 64})
	r.state = stateInitialized
	r.clock = func() float64 { return 0 }
	r.pool = &targetPool{
		alloc: func() (*frameTarget, error) {
			tr.allocated++
			return &frameTarget{}, nil
		},
		free: func(*frameTarget) {},
	}
	r.applyFn = func(fx effects.Effect, _ graphics.TextureHandle, dst *frameTarget, _, _ int) error {
		tr.order = append(tr.order, fx.Name())
		tr.targets = append(tr.targets, dst)
		return fx.Apply(nil)
	}
	r.blitFn = func(graphics.TextureHandle, *frameTarget) error {
		tr.blits++
		return nil
	}
	tr.r = r
	return tr
}

func (tr *testRenderer) add(t *testing.T, fx effects.Effect) {
	t.Helper()
	if err := tr.r.AddEffect(fx); err != nil {
		t.Fatalf("AddEffect(%s): %v", fx.Name(), err)
	}
}

func TestRenderFrameNotInitialized(t *testing.T) {
	r := New(Config{})
	err := r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{})
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if err := r.AddEffect(newStub("a")); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AddEffect err = %v, want ErrNotInitialized", err)
	}
}

func TestPassthroughBlitsWithoutAllocating(t *testing.T) {
	tr := newTestRenderer()
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if tr.blits != 1 {
		t.Fatalf("blits = %d, want 1", tr.blits)
	}
	if tr.allocated != 0 {
		t.Fatalf("allocated %d intermediate targets on passthrough", tr.allocated)
	}
}

func TestDisabledEffectsPassThrough(t *testing.T) {
	tr := newTestRenderer()
	fx := newStub("a")
	fx.enabled = false
	tr.add(t, fx)
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if fx.applied != 0 {
		t.Fatalf("disabled effect applied %d times", fx.applied)
	}
	if tr.blits != 1 {
		t.Fatalf("blits = %d, want 1", tr.blits)
	}
}

func TestChainAppliesInRegistrationOrder(t *testing.T) {
	tr := newTestRenderer()
	tr.add(t, newStub("grade"))
	tr.add(t, newStub("blur"))
	tr.add(t, newStub("vignette"))
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	want := []string{"grade", "blur", "vignette"}
	if len(tr.order) != len(want) {
		t.Fatalf("applied %v, want %v", tr.order, want)
	}
	for i := range want {
		if tr.order[i] != want[i] {
			t.Fatalf("applied %v, want %v", tr.order, want)
		}
	}
}

func TestPingPongHoldsAtMostTwoTargets(t *testing.T) {
	tr := newTestRenderer()
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		tr.add(t, newStub(name))
	}
	for frame := 0; frame < 3; frame++ {
		if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	if tr.r.pool.peak > 2 {
		t.Fatalf("pool peak = %d, want <= 2", tr.r.pool.peak)
	}
	if tr.r.pool.live != 0 {
		t.Fatalf("pool live = %d after frames, want 0", tr.r.pool.live)
	}
}

func TestLastEffectDrawsToOutput(t *testing.T) {
	tr := newTestRenderer()
	tr.add(t, newStub("a"))
	tr.add(t, newStub("b"))
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	last := tr.targets[len(tr.targets)-1]
	if last.handle.Valid() {
		t.Fatalf("last pass target = %+v, want caller's default framebuffer", last.handle)
	}
	for _, mid := range tr.targets[:len(tr.targets)-1] {
		if mid == last {
			t.Fatal("intermediate pass reused the output target")
		}
	}
}

func TestEffectFailureDropsFrameAndRecovers(t *testing.T) {
	tr := newTestRenderer()
	tr.add(t, newStub("a"))
	bad := newStub("bad")
	bad.applyErr = effects.ErrInvalidShader
	tr.add(t, bad)
	after := newStub("after")
	tr.add(t, after)

	err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{})
	var fxErr *EffectError
	if !errors.As(err, &fxErr) {
		t.Fatalf("err = %v, want *EffectError", err)
	}
	if fxErr.Name != "bad" {
		t.Fatalf("failed effect = %q, want %q", fxErr.Name, "bad")
	}
	if !errors.Is(err, effects.ErrInvalidShader) {
		t.Fatalf("err does not unwrap to cause: %v", err)
	}
	if after.applied != 0 {
		t.Fatal("effect after the failure still ran")
	}
	if tr.r.pool.live != 0 {
		t.Fatalf("pool live = %d after dropped frame, want 0", tr.r.pool.live)
	}
	if got := tr.r.Stats().DroppedFrames; got != 1 {
		t.Fatalf("DroppedFrames = %d, want 1", got)
	}

	// Next frame renders normally once the bad effect is disabled.
	tr.r.SetEffectEnabled("bad", false)
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("recovery frame: %v", err)
	}
	if after.applied != 1 {
		t.Fatalf("after.applied = %d, want 1", after.applied)
	}
}

func TestCompileFailureRegistersDisabled(t *testing.T) {
	tr := newTestRenderer()
	bad := newStub("bad")
	bad.compileErr = &shader.CompileError{Stage: shader.StageFragment, Log: "syntax error"}
	err := tr.r.AddEffect(bad)
	if err == nil {
		t.Fatal("AddEffect succeeded with a failing compile")
	}
	var ce *shader.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want wrapped *CompileError", err)
	}
	if bad.enabled {
		t.Fatal("failed effect left enabled")
	}
	names := tr.r.Effects()
	if len(names) != 1 || names[0] != "bad" {
		t.Fatalf("Effects() = %v, want [bad]", names)
	}
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("frame with disabled failed effect: %v", err)
	}
}

func TestDuplicateEffectRejected(t *testing.T) {
	tr := newTestRenderer()
	tr.add(t, newStub("a"))
	if err := tr.r.AddEffect(newStub("a")); !errors.Is(err, ErrDuplicateEffect) {
		t.Fatalf("err = %v, want ErrDuplicateEffect", err)
	}
}

func TestRemoveEffect(t *testing.T) {
	tr := newTestRenderer()
	fx := newStub("a")
	tr.add(t, fx)
	if !tr.r.RemoveEffect("a") {
		t.Fatal("RemoveEffect returned false for a registered effect")
	}
	if !fx.destroyed {
		t.Fatal("removed effect not destroyed")
	}
	if tr.r.RemoveEffect("a") {
		t.Fatal("RemoveEffect returned true twice")
	}
	if got := len(tr.r.Effects()); got != 0 {
		t.Fatalf("chain length = %d after removal", got)
	}
}

func TestClearEffects(t *testing.T) {
	tr := newTestRenderer()
	a, b := newStub("a"), newStub("b")
	tr.add(t, a)
	tr.add(t, b)
	tr.r.ClearEffects()
	if !a.destroyed || !b.destroyed {
		t.Fatal("ClearEffects left effects undestroyed")
	}
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("frame after clear: %v", err)
	}
	if tr.blits != 1 {
		t.Fatalf("blits = %d, want passthrough after clear", tr.blits)
	}
}

func TestMutationsApplyAtNextFrame(t *testing.T) {
	tr := newTestRenderer()
	fx := newStub("a")
	fx.params = []*effects.Param{effects.FloatParam("radius", 4, 0, 50)}
	tr.add(t, fx)

	if !tr.r.SetEffectIntensity("a", 0.25) {
		t.Fatal("SetEffectIntensity returned false")
	}
	if fx.intensity != 1 {
		t.Fatalf("intensity mutated before frame start: %v", fx.intensity)
	}
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if fx.intensity != 0.25 {
		t.Fatalf("intensity = %v after frame, want 0.25", fx.intensity)
	}
}

func TestSetEffectParameterValidation(t *testing.T) {
	tr := newTestRenderer()
	fx := newStub("a")
	fx.params = []*effects.Param{effects.FloatParam("radius", 4, 0, 50)}
	tr.add(t, fx)

	if !tr.r.SetEffectParameter("a", "radius", 10) {
		t.Fatal("known parameter rejected")
	}
	if tr.r.SetEffectParameter("a", "bogus", 10) {
		t.Fatal("unknown parameter accepted")
	}
	if tr.r.SetEffectParameter("nosuch", "radius", 10) {
		t.Fatal("unknown effect accepted")
	}
}

func TestEnableToggleTakesEffectNextFrame(t *testing.T) {
	tr := newTestRenderer()
	fx := newStub("a")
	tr.add(t, fx)
	tr.r.SetEffectEnabled("a", false)
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if fx.applied != 0 {
		t.Fatal("effect ran on the frame its disable was staged for")
	}
	tr.r.SetEffectEnabled("a", true)
	if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if fx.applied != 1 {
		t.Fatalf("applied = %d after re-enable, want 1", fx.applied)
	}
}

func TestStatsCountFramesWhenProfiling(t *testing.T) {
	tr := newTestRenderer()
	tr.r.SetProfiling(true)
	tr.add(t, newStub("a"))
	for i := 0; i < 3; i++ {
		if err := tr.r.RenderFrame(graphics.TextureHandle{}, graphics.RenderTargetHandle{}); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	s := tr.r.Stats()
	if s.Frames != 3 {
		t.Fatalf("Frames = %d, want 3", s.Frames)
	}
	tr.r.ResetStats()
	if got := tr.r.Stats(); got.Frames != 0 || got.DroppedFrames != 0 {
		t.Fatalf("stats not zeroed: %+v", got)
	}
}
