package math

import gomath "math"

// AABB is an axis-aligned bounding box in world space. A zero-value AABB
// (Min and Max both the zero vector) is NOT empty; use InvertedAABB to get
// a box ready for incremental Expand calls.
type AABB struct {
	Min, Max Vec3
}

// InvertedAABB returns a box with Min at +inf and Max at -inf, so the first
// Expand call always wins.
func InvertedAABB() AABB {
	inf := gomath.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func (b AABB) Expand(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect runs the slab method against the ray, returning whether the
// ray's [0, tMax] interval overlaps the box and the entry/exit parametric
// distances. A ray component parallel to a slab (dir axis == 0) is handled
// by treating that slab as unbounded when the origin already lies inside it,
// and as a miss otherwise.
func (b AABB) Intersect(origin, dir Vec3, tMax float64) (hit bool, tNear, tFar float64) {
	tNear = 0
	tFar = tMax

	axes := [3]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, b.Min.X, b.Max.X},
		{origin.Y, dir.Y, b.Min.Y, b.Max.Y},
		{origin.Z, dir.Z, b.Min.Z, b.Max.Z},
	}

	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return false, 0, 0
			}
			continue
		}
		invD := 1.0 / a.d
		t0 := (a.lo - a.o) * invD
		t1 := (a.hi - a.o) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return false, 0, 0
		}
	}

	return true, tNear, tFar
}
