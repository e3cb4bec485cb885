// Package tile partitions the output image into fixed square tiles,
// dispatches one goroutine per tile, and joins them in dispatch order.
package tile

import (
	"fmt"

	"hybridrt/camera"
	"hybridrt/imagegrid"
	hmath "hybridrt/math"
	"hybridrt/raytrace"
)

// DefaultSize is the default tile edge length in pixels.
const DefaultSize = 120

// Scheduler renders a Scene through a View into a color buffer, one
// goroutine per tile. Workers hold read-only references to the scene and
// view and write only to their own disjoint tile rectangle, so there is no
// pixel-level locking.
type Scheduler struct {
	TileSize int
	Frame    int
	Progress func(percent int)
}

func NewScheduler(tileSize int) *Scheduler {
	if tileSize <= 0 {
		tileSize = DefaultSize
	}
	return &Scheduler{TileSize: tileSize}
}

type rect struct{ x0, y0, x1, y1 int }

// Render dispatches one worker per tile against dest (the color buffer a
// prior frame may already have partially filled) plus the two debug
// buffers, and joins in dispatch order, reporting a percentage after each
// join. Tile completion order itself is not guaranteed.
func (s *Scheduler) Render(scene *raytrace.Scene, cfg raytrace.Config, view *camera.View, dest, dbgDiffuse, dbgNormal *imagegrid.ColorGrid) {
	tileSize := s.TileSize
	if tileSize <= 0 {
		tileSize = DefaultSize
	}

	var tiles []rect
	for y0 := 0; y0 < view.Height; y0 += tileSize {
		for x0 := 0; x0 < view.Width; x0 += tileSize {
			x1 := clampInt(x0+tileSize, view.Width)
			y1 := clampInt(y0+tileSize, view.Height)
			tiles = append(tiles, rect{x0, y0, x1, y1})
		}
	}

	// One channel per tile so the main goroutine joins workers in dispatch
	// order. Tiles still finish in whatever order they finish; only the
	// joins are ordered.
	dones := make([]chan struct{}, len(tiles))
	for i, t := range tiles {
		t := t
		done := make(chan struct{})
		dones[i] = done
		go func() {
			s.renderTile(scene, cfg, view, dest, dbgDiffuse, dbgNormal, t)
			close(done)
		}()
	}

	for i, done := range dones {
		<-done
		if s.Progress != nil {
			s.Progress(int(100.0 * float64(i+1) / float64(len(tiles))))
		}
	}
}

// renderTile renders every pixel in row-major order within t, the unit of
// exclusive ownership a single worker holds.
func (s *Scheduler) renderTile(scene *raytrace.Scene, cfg raytrace.Config, view *camera.View, dest, dbgDiffuse, dbgNormal *imagegrid.ColorGrid, t rect) {
	for py := t.y0; py < t.y1; py++ {
		for px := t.x0; px < t.x1; px++ {
			result := raytrace.TracePixel(scene, cfg, view, s.Frame, px, py)
			if result.Coverage > 0 {
				dest.Set(px, py, result.Blend(dest.Get(px, py)))
			}

			if dbgDiffuse != nil {
				dbgDiffuse.Set(px, py, hmath.NewColor(-result.Diffuse, -result.Diffuse, -result.Diffuse, 1))
			}
			if dbgNormal != nil {
				n := result.Normal
				dbgNormal.Set(px, py, hmath.NewColor(0.5*n.X+0.5, 0.5*n.Y+0.5, 0.5*n.Z+0.5, 1))
			}
		}
	}
}

func clampInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// ProgressPrinter returns a Progress callback that prints a running
// percentage to stdout.
func ProgressPrinter() func(int) {
	return func(percent int) {
		fmt.Printf("%d%% ", percent)
	}
}
