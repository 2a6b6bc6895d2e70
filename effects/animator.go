package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animator drives smooth parameter and intensity ramps. The owner ticks
// Update once per frame on whichever side feeds the renderer's staged
// mutations; finished tweens drop out on their own.
//
// There is no global animation manager; each pipeline owns its Animator.
type Animator struct {
	tweens []*paramTween
}

type paramTween struct {
	fx     Effect
	param  string // empty targets intensity
	tw     *gween.Tween
	onDone func()
}

// TweenParameter ramps a scalar parameter from its current value to `to` over
// `duration` seconds. Returns false if the effect has no such scalar.
func (a *Animator) TweenParameter(fx Effect, name string, to, duration float32, fn ease.TweenFunc) bool {
	var from float32
	found := false
	for _, p := range fx.Parameters() {
		if p.Name == name && p.Kind == KindFloat {
			from = p.Float()
			found = true
			break
		}
	}
	if !found {
		return false
	}
	a.tweens = append(a.tweens, &paramTween{
		fx:    fx,
		param: name,
		tw:    gween.New(from, to, duration, fn),
	})
	return true
}

// TweenIntensity ramps an effect's intensity from its current value.
func (a *Animator) TweenIntensity(fx Effect, to, duration float32, fn ease.TweenFunc) {
	a.tweens = append(a.tweens, &paramTween{
		fx: fx,
		tw: gween.New(fx.Intensity(), to, duration, fn),
	})
}

// OnDone attaches a callback to the most recently added tween.
func (a *Animator) OnDone(f func()) {
	if n := len(a.tweens); n > 0 {
		a.tweens[n-1].onDone = f
	}
}

// Update advances every tween by dt seconds and applies the values. Values
// pass through the normal setters, so clamping still applies.
func (a *Animator) Update(dt float32) {
	remaining := a.tweens[:0]
	for _, t := range a.tweens {
		v, finished := t.tw.Update(dt)
		if t.param == "" {
			t.fx.SetIntensity(v)
		} else {
			t.fx.SetParameter(t.param, v)
		}
		if finished {
			if t.onDone != nil {
				t.onDone()
			}
			continue
		}
		remaining = append(remaining, t)
	}
	a.tweens = remaining
}

// Active reports the number of running tweens.
func (a *Animator) Active() int { return len(a.tweens) }
