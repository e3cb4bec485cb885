package tile

import (
	"math"
	"testing"

	"hybridrt/arena"
	"hybridrt/camera"
	"hybridrt/imagegrid"
	hmath "hybridrt/math"
	"hybridrt/raytrace"
)

func testView(width, height int) *camera.View {
	cam := camera.NewCamera(hmath.NewVec3(0, -5, 0), hmath.Vec3Zero, hmath.Vec3Up, math.Pi/3, 1, 0.1, 1000)
	return camera.NewView(cam, width, height)
}

func TestRenderCoversEveryPixelOnEmptyScene(t *testing.T) {
	a := arena.New()
	scene := raytrace.NewScene(a)
	cfg := raytrace.DefaultConfig()
	view := testView(16, 16)

	dest := imagegrid.NewColorGrid(16, 16, hmath.NewColor(0, 0, 0, 0), "frame")

	sched := NewScheduler(8)
	sched.Render(scene, cfg, view, dest, nil, nil)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if c := dest.Get(x, y); c.A < 0.99 {
				t.Errorf("expected sky coverage to blend pixel (%d,%d), got alpha=%v", x, y, c.A)
			}
		}
	}
}

func TestRenderReportsProgressToCompletion(t *testing.T) {
	a := arena.New()
	scene := raytrace.NewScene(a)
	cfg := raytrace.DefaultConfig()
	view := testView(16, 16)
	dest := imagegrid.NewColorGrid(16, 16, hmath.ColorBlack, "frame")

	var last int
	sched := NewScheduler(8)
	sched.Progress = func(percent int) { last = percent }
	sched.Render(scene, cfg, view, dest, nil, nil)

	if last != 100 {
		t.Errorf("expected final progress report of 100, got %d", last)
	}
}

func TestTileDeterministicWithFixedSubSamples(t *testing.T) {
	a := arena.New()
	scene := raytrace.NewScene(a)
	cfg := raytrace.DefaultConfig()
	cfg.SubSamples = raytrace.SubSample4
	view := testView(8, 8)

	render := func() *imagegrid.ColorGrid {
		dest := imagegrid.NewColorGrid(8, 8, hmath.ColorBlack, "frame")
		sched := NewScheduler(4)
		sched.Render(scene, cfg, view, dest, nil, nil)
		return dest
	}

	g1 := render()
	g2 := render()

	g1.ForEach(func(x, y int, v hmath.Color) {
		if v != g2.Get(x, y) {
			t.Fatalf("expected byte-identical frames at (%d,%d): %v vs %v", x, y, v, g2.Get(x, y))
		}
	})
}
