package imagegrid

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	hmath "hybridrt/math"

	"golang.org/x/image/bmp"
)

// SaveColor writes a color grid to dir/name.bmp via the external bitmap
// encoder. Pixels are written as stored; callers gamma-encode before Set.
func SaveColor(g *ColorGrid, dir string) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	g.ForEach(func(x, y int, c hmath.Color) {
		r, gg, b, a := c.ToRGBA8()
		img.SetRGBA(x, y, color.RGBA{R: r, G: gg, B: b, A: a})
	})
	return writeBMP(img, dir, g.Name)
}

// SaveScalar writes a scalar grid (the z-buffer, the rasterizer's depth
// debug output) rescaled min/max into [0,255].
func SaveScalar(g *ScalarGrid, dir string) error {
	minV, maxV := math.Inf(1), math.Inf(-1)
	g.ForEach(func(x, y int, v float64) {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	})

	span := maxV - minV
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	g.ForEach(func(x, y int, v float64) {
		packed := 0.0
		if span != 0 {
			packed = (v - minV) / span
		}
		img.SetGray(x, y, color.Gray{Y: uint8(hmath.Saturate(packed) * 255)})
	})
	return writeBMP(img, dir, g.Name)
}

// SaveScalarRaw writes a scalar grid's values directly, mapping the
// assumed [-1, 1] NDC-z range linearly onto [0, 255] with no per-frame
// min/max rescale — used for the raw z-buffer output, distinct from the
// rescaled depth debug view SaveScalar produces.
func SaveScalarRaw(g *ScalarGrid, dir string) error {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	g.ForEach(func(x, y int, v float64) {
		packed := (v + 1.0) / 2.0
		img.SetGray(x, y, color.Gray{Y: uint8(hmath.Saturate(packed) * 255)})
	})
	return writeBMP(img, dir, g.Name)
}

func writeBMP(img image.Image, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, name+".bmp")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bitmap %q: %w", path, err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("encode bitmap %q: %w", path, err)
	}
	return nil
}

// LoadTextureBMP decodes a 24- or 32-bit uncompressed BMP into row-major
// linear-space colors, the shape arena.Texture stores.
func LoadTextureBMP(path string) (width, height int, pixels []hmath.Color, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

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
	return width, height, pixels, nil
}
