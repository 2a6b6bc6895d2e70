package source

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// twoRowImage has a red top row and a blue bottom row.
func twoRowImage(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return &buf
}

func TestDecodePacksRGBA(t *testing.T) {
	img, err := Decode(twoRowImage(t), false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if len(img.Pixels) != 2*2*4 {
		t.Fatalf("pixels = %d bytes, want 16", len(img.Pixels))
	}
	if img.Pixels[0] != 255 || img.Pixels[2] != 0 {
		t.Fatalf("top-left = %v, want red", img.Pixels[0:4])
	}
}

func TestDecodeFlipsRows(t *testing.T) {
	img, err := Decode(twoRowImage(t), true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Pixels[2] != 255 {
		t.Fatalf("flipped top-left = %v, want blue", img.Pixels[0:4])
	}
	if img.Pixels[8] != 255 {
		t.Fatalf("flipped bottom-left = %v, want red", img.Pixels[8:12])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image")), false); err == nil {
		t.Fatal("Decode accepted garbage input")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/input.png", false); err == nil {
		t.Fatal("LoadFile accepted a missing path")
	}
}
