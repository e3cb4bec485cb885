package math

// ToBarycentric computes the barycentric coordinates of point p with
// respect to triangle (a, b, c), assuming p lies in the triangle's plane.
func ToBarycentric(p, a, b, c Vec3) Vec3 {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return Vec3{1, 0, 0}
	}

	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return Vec3{X: u, Y: v, Z: w}
}

// FromBarycentric reconstructs the point (or interpolates any per-vertex
// attribute packed into a, b, c) given barycentric weights (u, v, w) that
// sum to 1.
func FromBarycentric(bary Vec3, a, b, c Vec3) Vec3 {
	return a.Mul(bary.X).Add(b.Mul(bary.Y)).Add(c.Mul(bary.Z))
}

// InsideBarycentric reports whether (u, v, w) falls within the closed
// triangle, with a small epsilon tolerance for shared-edge rasterization.
func InsideBarycentric(bary Vec3, epsilon float64) bool {
	return bary.X >= -epsilon && bary.Y >= -epsilon && bary.Z >= -epsilon
}
