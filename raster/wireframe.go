package raster

import (
	"hybridrt/imagegrid"
	hmath "hybridrt/math"
)

// DrawLine is an integer Bresenham line, blending each plotted pixel over
// the existing one via hmath.Color.Over.
func DrawLine(img *imagegrid.ColorGrid, x0, y0, x1, y1 int, c hmath.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	e := dx - dy

	for {
		plot(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

func plot(img *imagegrid.ColorGrid, x, y int, c hmath.Color) {
	if !img.InBounds(x, y) {
		return
	}
	img.Set(x, y, c.Over(img.Get(x, y)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawWireframeTri draws the three edges of a projected triangle, skipping
// any edge with an endpoint behind the near plane.
func (rz *Rasterizer) drawWireframeTri(img *imagegrid.ColorGrid, p0, p1, p2 ScreenPoint, c hmath.Color) {
	edges := [3][2]ScreenPoint{{p0, p1}, {p0, p2}, {p1, p2}}
	for _, e := range edges {
		if e[0].Culled || e[1].Culled {
			continue
		}
		DrawLine(img, int(e[0].X), int(e[0].Y), int(e[1].X), int(e[1].Y), c)
	}
}
