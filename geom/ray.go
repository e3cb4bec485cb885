// Package geom holds the triangle cache, ray/triangle and ray/AABB tests,
// and the per-instance octree that accelerates scene intersection.
package geom

import hmath "hybridrt/math"

// Ray is a half-line: origin, direction (not required to be unit length,
// but must be non-zero), and a maximum parametric distance.
type Ray struct {
	Origin hmath.Vec3
	Dir    hmath.Vec3
	TMax   float64
}

func NewRay(origin, dir hmath.Vec3, tMax float64) Ray {
	return Ray{Origin: origin, Dir: dir, TMax: tMax}
}

func (r Ray) Point(t float64) hmath.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
