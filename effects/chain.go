package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChain builds an ordered effect list from a compact chain spec of the
// form used on the command line:
//
//	colorgrade:contrast=1.3,saturation=1.2|vignette:intensity=0.5|glow
//
// Effects are separated by '|', settings by ','. A setting either names a
// declared parameter or one of the reserved keys "intensity" and "enabled".
// Out-of-range values are clamped by the parameter itself; unknown parameter
// names are an error here (unlike at runtime) since a typo in a script should
// fail loudly.
func ParseChain(spec string) ([]Effect, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var chain []Effect
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, settings, _ := strings.Cut(part, ":")
		fx, err := New(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}

		if settings != "" {
			if err := applySettings(fx, settings); err != nil {
				return nil, fmt.Errorf("effect %q: %w", fx.Name(), err)
			}
		}
		chain = append(chain, fx)
	}
	return chain, nil
}

func applySettings(fx Effect, settings string) error {
	for _, kv := range strings.Split(settings, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return fmt.Errorf("setting %q is not key=value", kv)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "enabled":
			on, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("enabled: %w", err)
			}
			fx.SetEnabled(on)
			continue
		case "intensity":
			f, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return fmt.Errorf("intensity: %w", err)
			}
			fx.SetIntensity(float32(f))
			continue
		}

		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
		if !fx.SetParameter(key, float32(f)) {
			return fmt.Errorf("unknown parameter %q", key)
		}
	}
	return nil
}
