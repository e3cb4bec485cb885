// Package imagegrid holds the typed, row-major pixel grids the tile
// scheduler and rasterizer write into, and their serialization into the
// external bitmap container.
package imagegrid

import hmath "hybridrt/math"

// Grid is a named, row-major width*height array of T. Reads may run
// concurrently with writes only when the writer is known to touch a
// disjoint region — the tile scheduler is the only caller that relies on
// this, and it enforces disjointness by construction.
type Grid[T any] struct {
	Name   string
	Width  int
	Height int
	pixels []T
}

// New constructs a grid with every pixel initialized to clear.
func New[T any](width, height int, clear T, name string) *Grid[T] {
	pixels := make([]T, width*height)
	for i := range pixels {
		pixels[i] = clear
	}
	return &Grid[T]{Name: name, Width: width, Height: height, pixels: pixels}
}

func (g *Grid[T]) Get(x, y int) T {
	return g.pixels[y*g.Width+x]
}

func (g *Grid[T]) Set(x, y int, v T) {
	g.pixels[y*g.Width+x] = v
}

// InBounds reports whether (x, y) addresses a pixel in the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Sample performs a nearest-texel lookup at uv in [0,1]^2, with uv wrapped
// into range first (the same policy as arena.Texture.Sample).
func (g *Grid[T]) Sample(uv hmath.Vec2) T {
	u := wrapUnit(uv.X)
	v := wrapUnit(uv.Y)
	x := int(u * float64(g.Width))
	y := int(v * float64(g.Height))
	if x >= g.Width {
		x = g.Width - 1
	}
	if y >= g.Height {
		y = g.Height - 1
	}
	return g.Get(x, y)
}

func wrapUnit(x float64) float64 {
	x -= float64(int(x))
	if x < 0 {
		x += 1
	}
	return x
}

// ForEach iterates every pixel in row-major order.
func (g *Grid[T]) ForEach(fn func(x, y int, v T)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(x, y, g.pixels[y*g.Width+x])
		}
	}
}

// ColorGrid and ScalarGrid are the two concrete grid instantiations the
// rest of the pipeline uses: RGBA color buffers and single-channel scalar
// buffers (the z-buffer, the normalized depth debug image).
type ColorGrid = Grid[hmath.Color]
type ScalarGrid = Grid[float64]

func NewColorGrid(width, height int, clear hmath.Color, name string) *ColorGrid {
	return New(width, height, clear, name)
}

func NewScalarGrid(width, height int, clear float64, name string) *ScalarGrid {
	return New(width, height, clear, name)
}
