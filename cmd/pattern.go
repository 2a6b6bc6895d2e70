package main

import "math"

// testPattern fills buf with an animated RGBA pattern: vertical color bars
// over a diagonal gradient, with a bright scanline sweeping down. It gives
// every effect something to chew on without needing an input file.
func testPattern(buf []byte, width, height int, t float64) {
	bars := [8][3]float64{
		{1, 1, 1}, {1, 1, 0}, {0, 1, 1}, {0, 1, 0},
		{1, 0, 1}, {1, 0, 0}, {0, 0, 1}, {0.05, 0.05, 0.05},
	}
	sweep := int(math.Mod(t*0.15, 1) * float64(height))
	for y := 0; y < height; y++ {
		rowBoost := 0.0
		if d := y - sweep; d >= 0 && d < height/32 {
			rowBoost = 0.5 * (1 - float64(d)/float64(height/32))
		}
		for x := 0; x < width; x++ {
			bar := bars[x*8/width]
			grad := 0.25 + 0.5*float64(x+y)/float64(width+height)
			shift := 0.15 * math.Sin(t+float64(x)/float64(width)*2*math.Pi)

			r := clamp01(bar[0]*grad + shift + rowBoost)
			g := clamp01(bar[1]*grad + rowBoost)
			b := clamp01(bar[2]*grad - shift + rowBoost)

			i := (y*width + x) * 4
			buf[i+0] = byte(r * 255)
			buf[i+1] = byte(g * 255)
			buf[i+2] = byte(b * 255)
			buf[i+3] = 255
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
