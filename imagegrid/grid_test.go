package imagegrid

import (
	"os"
	"path/filepath"
	"testing"

	hmath "hybridrt/math"
)

func TestGridGetSet(t *testing.T) {
	g := NewColorGrid(4, 2, hmath.ColorBlack, "test")
	g.Set(2, 1, hmath.ColorWhite)

	if g.Get(2, 1) != hmath.ColorWhite {
		t.Errorf("expected white at (2,1), got %v", g.Get(2, 1))
	}
	if g.Get(0, 0) != hmath.ColorBlack {
		t.Errorf("expected untouched pixel to remain clear color")
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewScalarGrid(4, 4, 1.0, "z")
	if !g.InBounds(3, 3) || g.InBounds(4, 0) || g.InBounds(0, -1) {
		t.Error("InBounds: unexpected boundary result")
	}
}

func TestGridSampleWraps(t *testing.T) {
	g := NewColorGrid(2, 1, hmath.ColorBlack, "tex")
	g.Set(1, 0, hmath.ColorWhite)

	if c := g.Sample(hmath.NewVec2(1.25, 0)); c != hmath.ColorBlack {
		t.Errorf("expected wrapped u=0.25 to sample black, got %v", c)
	}
}

func TestSaveColorWritesBitmap(t *testing.T) {
	dir := t.TempDir()
	g := NewColorGrid(4, 4, hmath.ColorWhite, "frame")

	if err := SaveColor(g, dir); err != nil {
		t.Fatalf("SaveColor: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame.bmp")); err != nil {
		t.Errorf("expected frame.bmp to exist: %v", err)
	}
}

func TestSaveScalarRescalesMinMax(t *testing.T) {
	dir := t.TempDir()
	g := NewScalarGrid(2, 2, 0, "depth")
	g.Set(0, 0, 0.0)
	g.Set(1, 1, 10.0)

	if err := SaveScalar(g, dir); err != nil {
		t.Fatalf("SaveScalar: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "depth.bmp")); err != nil {
		t.Errorf("expected depth.bmp to exist: %v", err)
	}
}
