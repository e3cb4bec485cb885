package io

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"hybridrt/arena"
	hmath "hybridrt/math"

	_ "golang.org/x/image/bmp"
)

// LoadTexture decodes a PNG, JPEG, or BMP file into an arena.Texture and
// returns its handle, registering directly into the shared arena that
// material lookups address during shading.
func LoadTexture(a *arena.Arena, path string) (arena.Handle, error) {
	width, height, pixels, err := decodeTextureFile(path)
	if err != nil {
		return arena.Invalid, err
	}
	return a.AddTexture(arena.Texture{Name: path, Width: width, Height: height, Pixels: pixels}), nil
}

func decodeTextureFile(path string) (width, height int, pixels []hmath.Color, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	width, height, pixels = imageToColors(img)
	return width, height, pixels, nil
}

// decodeTextureBytes decodes an in-memory image (a glTF buffer-view image,
// for instance) the same way decodeTextureFile decodes one from disk.
func decodeTextureBytes(data []byte) (width, height int, pixels []hmath.Color, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode texture bytes: %w", err)
	}
	width, height, pixels = imageToColors(img)
	return width, height, pixels, nil
}

func imageToColors(img image.Image) (width, height int, pixels []hmath.Color) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]hmath.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := hmath.NewColor(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, float64(a)/0xffff)
			pixels[y*width+x] = c.ToLinear()
		}
	}
	return width, height, pixels
}

// NewSolidTexture registers a 1x1 texture of a flat color. The loaders in
// this package do not call it: a texture that fails to load leaves the
// material untextured.
func NewSolidTexture(a *arena.Arena, name string, c hmath.Color) arena.Handle {
	return a.AddTexture(arena.Texture{Name: name, Width: 1, Height: 1, Pixels: []hmath.Color{c}})
}
