package io

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

func writeTempPNG(t *testing.T, w, h int, fill color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp PNG: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode temp PNG: %v", err)
	}
	return path
}

func TestLoadTextureDecodesPNG(t *testing.T) {
	path := writeTempPNG(t, 4, 4, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	a := arena.New()

	h, err := LoadTexture(a, path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	tex, ok := a.GetTexture(h)
	if !ok {
		t.Fatal("expected texture handle to resolve")
	}
	if tex.Width != 4 || tex.Height != 4 {
		t.Errorf("expected a 4x4 texture, got %dx%d", tex.Width, tex.Height)
	}
	sample := tex.Sample(hmath.NewVec2(0.5, 0.5))
	if sample.R < 0.5 {
		t.Errorf("expected a predominantly red sample, got %v", sample)
	}
}

func TestNewSolidTextureSamplesFlatColor(t *testing.T) {
	a := arena.New()
	c := hmath.NewColor(0.2, 0.4, 0.6, 1)
	h := NewSolidTexture(a, "flat", c)

	tex, ok := a.GetTexture(h)
	if !ok {
		t.Fatal("expected texture handle to resolve")
	}
	if tex.Sample(hmath.NewVec2(0.9, 0.1)) != c {
		t.Errorf("expected a solid texture to sample the same color everywhere")
	}
}
