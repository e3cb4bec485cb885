package geom

import (
	"hybridrt/arena"
	hmath "hybridrt/math"
)

// Triangle is compiled at model-instance creation time: three vertices
// already transformed into world space plus a precomputed unit face normal,
// a material handle, and a centroid for octree assignment.
type Triangle struct {
	V0, V1, V2 arena.Vertex
	Normal     hmath.Vec3
	Material   arena.Handle
	Centroid   hmath.Vec3
}

func NewTriangle(v0, v1, v2 arena.Vertex, material arena.Handle) Triangle {
	n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position)).Normalize()
	centroid := v0.Position.Add(v1.Position).Add(v2.Position).Mul(1.0 / 3.0)
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: n, Material: material, Centroid: centroid}
}

func (t Triangle) AABB() hmath.AABB {
	box := hmath.InvertedAABB()
	box = box.Expand(t.V0.Position)
	box = box.Expand(t.V1.Position)
	box = box.Expand(t.V2.Position)
	return box
}

const triEpsilon = 1e-7

// RayTriangleIntersect implements Möller–Trumbore. Returns whether the ray
// hits the triangle within (0, r.TMax], the hit distance, and whether the
// hit face is a back face (dot(r.Dir, n) > 0). Back-face culling is left to
// the caller: this function reports geometry only.
func RayTriangleIntersect(r Ray, t Triangle) (hit bool, dist float64, backFace bool) {
	edge1 := t.V1.Position.Sub(t.V0.Position)
	edge2 := t.V2.Position.Sub(t.V0.Position)
	h := r.Dir.Cross(edge2)
	a := edge1.Dot(h)

	if a > -triEpsilon && a < triEpsilon {
		return false, 0, false
	}

	f := 1.0 / a
	s := r.Origin.Sub(t.V0.Position)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false, 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Dir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false, 0, false
	}

	dist = f * edge2.Dot(q)
	if dist <= 0 || dist > r.TMax {
		return false, 0, false
	}

	backFace = r.Dir.Dot(t.Normal) > 0
	return true, dist, backFace
}

// RayAABBIntersect is the slab method. An axis whose direction component is
// zero is treated as an infinite slab when the origin already lies within
// its bounds, and as a definite miss otherwise.
func RayAABBIntersect(r Ray, box hmath.AABB) (hit bool, tNear, tFar float64) {
	return box.Intersect(r.Origin, r.Dir, r.TMax)
}
