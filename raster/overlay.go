package raster

import (
	"hybridrt/camera"
	"hybridrt/geom"
	"hybridrt/imagegrid"
	hmath "hybridrt/math"
)

// cubeEdges lists the 12 edges of a unit cube as corner-index pairs, reused
// by DrawCube and DrawOctree.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func cubeCorners(box hmath.AABB) [8]hmath.Vec3 {
	min, max := box.Min, box.Max
	return [8]hmath.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
	}
}

// DrawCube projects and wireframes an AABB's 12 edges, used for both
// per-instance AABB overlays and DrawOctree's node boxes.
func DrawCube(img *imagegrid.ColorGrid, view *camera.View, box hmath.AABB, c hmath.Color) {
	mvp := view.CombinedMatrix()
	corners := cubeCorners(box)

	var proj [8]ScreenPoint
	for i, corner := range corners {
		proj[i] = ProjectPoint(mvp, view.Width, view.Height, corner)
	}

	for _, e := range cubeEdges {
		a, b := proj[e[0]], proj[e[1]]
		if a.Culled || b.Culled {
			continue
		}
		DrawLine(img, int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

// DrawOctree draws every node's bounding box.
func DrawOctree(img *imagegrid.ColorGrid, view *camera.View, tree *geom.Octree, c hmath.Color) {
	if tree == nil {
		return
	}
	tree.Walk(func(box hmath.AABB) {
		DrawCube(img, view, box, c)
	})
}

// DrawWorldAxis draws three colored rays from origin along X, Y, Z scaled
// by size (red/green/blue axis convention).
func DrawWorldAxis(img *imagegrid.ColorGrid, view *camera.View, size float64, origin, x, y, z hmath.Vec3) {
	mvp := view.CombinedMatrix()
	o := ProjectPoint(mvp, view.Width, view.Height, origin)
	if o.Culled {
		return
	}

	axes := [3]struct {
		dir   hmath.Vec3
		color hmath.Color
	}{
		{x, hmath.NewColor(1, 0, 0, 1)},
		{y, hmath.NewColor(0, 1, 0, 1)},
		{z, hmath.NewColor(0, 0, 1, 1)},
	}

	for _, a := range axes {
		tip := ProjectPoint(mvp, view.Width, view.Height, origin.Add(a.dir.Mul(size)))
		if tip.Culled {
			continue
		}
		DrawLine(img, int(o.X), int(o.Y), int(tip.X), int(tip.Y), a.color)
	}
}

// DrawWorldPoint draws a small filled square marker at a world-space point.
func DrawWorldPoint(img *imagegrid.ColorGrid, view *camera.View, point hmath.Vec3, size int, c hmath.Color) {
	mvp := view.CombinedMatrix()
	p := ProjectPoint(mvp, view.Width, view.Height, point)
	if p.Culled {
		return
	}
	cx, cy := int(p.X), int(p.Y)
	for dy := -size; dy <= size; dy++ {
		for dx := -size; dx <= size; dx++ {
			plot(img, cx+dx, cy+dy, c)
		}
	}
}

// DrawRay draws a line segment from a ray's origin to origin+dir*length.
func DrawRay(img *imagegrid.ColorGrid, view *camera.View, r geom.Ray, length float64, c hmath.Color) {
	mvp := view.CombinedMatrix()
	p0 := ProjectPoint(mvp, view.Width, view.Height, r.Origin)
	p1 := ProjectPoint(mvp, view.Width, view.Height, r.Point(length))
	if p0.Culled || p1.Culled {
		return
	}
	DrawLine(img, int(p0.X), int(p0.Y), int(p1.X), int(p1.Y), c)
}
