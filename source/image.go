// Package source provides CPU-side frame sources for the pipeline: still
// images decoded into the tightly packed RGBA layout the graphics layer
// uploads.
package source

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Image is a decoded frame ready for texture upload.
type Image struct {
	Pixels []byte // width*height*4 bytes, RGBA, top row first
	Width  int
	Height int
}

// Decode reads one PNG or JPEG image and repacks it as RGBA. GL texture
// coordinates put row zero at the bottom, so flip is normally true when the
// result feeds a sampler directly.
func Decode(r io.Reader, flip bool) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	if flip {
		rgba = vflip(rgba)
	}

	width := rgba.Rect.Dx()
	height := rgba.Rect.Dy()
	pixels := make([]byte, width*height*4)
	rowSize := width * 4
	for y := 0; y < height; y++ {
		copy(pixels[y*rowSize:], rgba.Pix[y*rgba.Stride:y*rgba.Stride+rowSize])
	}
	return &Image{Pixels: pixels, Width: width, Height: height}, nil
}

// LoadFile decodes an image from disk.
func LoadFile(path string, flip bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Decode(f, flip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// vflip flips the image vertically. Row copies beat per-pixel At/Set.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		copy(flipped.Pix[y*flipped.Stride:], srcRow[:rowSize])
	}
	return flipped
}
