package graphics

import "testing"

func TestPixelFormatBytesPerPixel(t *testing.T) {
	cases := []struct {
		f    PixelFormat
		want int
	}{
		{RGBA8, 4},
		{RGBA16F, 8},
		{RGBA32F, 16},
		{PixelFormat(99), 0},
	}
	for _, c := range cases {
		if got := c.f.BytesPerPixel(); got != c.want {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", c.f, got, c.want)
		}
	}
}

func TestPixelFormatCompatible(t *testing.T) {
	for _, in := range []PixelFormat{RGBA8, RGBA16F, RGBA32F} {
		for _, out := range []PixelFormat{RGBA8, RGBA16F, RGBA32F} {
			if !in.Compatible(out) {
				t.Errorf("%v should be compatible with %v", in, out)
			}
		}
	}
	if RGBA8.Compatible(PixelFormat(-1)) {
		t.Error("undeclared output format reported compatible")
	}
	if PixelFormat(42).Compatible(RGBA8) {
		t.Error("undeclared input format reported compatible")
	}
}
