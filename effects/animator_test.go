package effects

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAnimatorTweenIntensity(t *testing.T) {
	fx := NewVignette()
	fx.SetIntensity(0)

	var a Animator
	a.TweenIntensity(fx, 1, 1, ease.Linear)
	if a.Active() != 1 {
		t.Fatalf("Active = %d, want 1", a.Active())
	}

	a.Update(0.5)
	if got := fx.Intensity(); got < 0.45 || got > 0.55 {
		t.Errorf("intensity at midpoint = %v, want ~0.5", got)
	}

	a.Update(0.6) // past the end
	if fx.Intensity() != 1 {
		t.Errorf("final intensity = %v, want 1", fx.Intensity())
	}
	if a.Active() != 0 {
		t.Errorf("Active after finish = %d, want 0", a.Active())
	}
}

func TestAnimatorTweenParameter(t *testing.T) {
	fx := NewBlur()
	var a Animator
	if !a.TweenParameter(fx, "radius", 20, 1, ease.Linear) {
		t.Fatal("TweenParameter rejected declared scalar")
	}
	if a.TweenParameter(fx, "bogus", 1, 1, ease.Linear) {
		t.Error("TweenParameter accepted unknown parameter")
	}

	a.Update(1)
	for _, p := range fx.Parameters() {
		if p.Name == "radius" && p.Float() != 20 {
			t.Errorf("radius = %v, want 20", p.Float())
		}
	}
}

func TestAnimatorOnDone(t *testing.T) {
	fx := NewInvert()
	var a Animator
	fired := false
	a.TweenIntensity(fx, 0, 0.1, ease.Linear)
	a.OnDone(func() { fired = true })

	a.Update(0.05)
	if fired {
		t.Error("OnDone fired early")
	}
	a.Update(0.1)
	if !fired {
		t.Error("OnDone never fired")
	}
}
