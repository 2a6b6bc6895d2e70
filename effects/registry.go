package effects

import "fmt"

// builtins maps effect names to constructors, in the order they are listed
// to users.
var builtinOrder = []string{
	"colorgrade",
	"blur",
	"vignette",
	"glow",
	"chromatic",
	"glitch",
	"posterize",
	"invert",
	"grayscale",
}

var builtins = map[string]func() Effect{
	"colorgrade": NewColorGrade,
	"blur":       NewBlur,
	"vignette":   NewVignette,
	"glow":       NewGlow,
	"chromatic":  NewChromaticAberration,
	"glitch":     NewGlitch,
	"posterize":  NewPosterize,
	"invert":     NewInvert,
	"grayscale":  NewGrayscale,
}

// New constructs a built-in effect by name.
func New(name string) (Effect, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("effects: unknown effect %q", name)
	}
	return ctor(), nil
}

// Names lists the built-in effect names in presentation order.
func Names() []string {
	out := make([]string, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}
