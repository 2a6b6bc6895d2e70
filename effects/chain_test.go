package effects

import "testing"

func TestParseChainOrderAndSettings(t *testing.T) {
	chain, err := ParseChain("colorgrade:contrast=1.3,intensity=0.8|vignette|glow:enabled=false")
	if err != nil {
		t.Fatalf("ParseChain: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}

	names := []string{"colorgrade", "vignette", "glow"}
	for i, fx := range chain {
		if fx.Name() != names[i] {
			t.Errorf("chain[%d] = %q, want %q", i, fx.Name(), names[i])
		}
	}

	cg := chain[0]
	if cg.Intensity() != 0.8 {
		t.Errorf("colorgrade intensity = %v, want 0.8", cg.Intensity())
	}
	for _, p := range cg.Parameters() {
		if p.Name == "contrast" && p.Float() != 1.3 {
			t.Errorf("contrast = %v, want 1.3", p.Float())
		}
	}
	if chain[2].Enabled() {
		t.Error("glow should be disabled by enabled=false")
	}
}

func TestParseChainEmpty(t *testing.T) {
	chain, err := ParseChain("  ")
	if err != nil {
		t.Fatalf("ParseChain: %v", err)
	}
	if chain != nil {
		t.Errorf("chain = %v, want nil", chain)
	}
}

func TestParseChainClampsValues(t *testing.T) {
	chain, err := ParseChain("blur:radius=999")
	if err != nil {
		t.Fatalf("ParseChain: %v", err)
	}
	if got := chain[0].Parameters()[0].Float(); got != 50 {
		t.Errorf("radius = %v, want 50 (clamped)", got)
	}
}

func TestParseChainErrors(t *testing.T) {
	cases := []string{
		"nosuch",
		"blur:radius",
		"blur:nonsense=1",
		"blur:radius=abc",
		"vignette:enabled=maybe",
	}
	for _, spec := range cases {
		if _, err := ParseChain(spec); err == nil {
			t.Errorf("ParseChain(%q) succeeded, want error", spec)
		}
	}
}

func TestRegistryNames(t *testing.T) {
	for _, name := range Names() {
		fx, err := New(name)
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if fx.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, fx.Name())
		}
	}
	if _, err := New("warp-core"); err == nil {
		t.Error("unknown effect name accepted")
	}
}
