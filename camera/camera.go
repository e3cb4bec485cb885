// Package camera builds the view and projection matrices shared by the
// ray tracer and the rasterizer, and constructs primary rays from screen UV.
package camera

import hmath "hybridrt/math"

// Camera holds a position, an orthonormal basis, and the perspective
// parameters. Matrices are recomputed lazily and cached, following the
// dirty-flag pattern used elsewhere in the scene graph.
type Camera struct {
	Origin hmath.Vec3
	Right  hmath.Vec3
	Up     hmath.Vec3
	Front  hmath.Vec3

	Fov    float64 // vertical field of view, radians
	Aspect float64
	Near   float64
	Far    float64

	viewMatrix Mat4Cache
}

// Mat4Cache lazily computes and caches the view/projection/combined
// matrices until invalidated.
type Mat4Cache struct {
	view, proj, combined hmath.Mat4
	dirty                bool
}

func NewCamera(origin, target, up hmath.Vec3, fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Origin: origin,
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.LookAt(target, up)
	return c
}

// LookAt re-derives the camera's orthonormal basis and marks matrices dirty.
func (c *Camera) LookAt(target, up hmath.Vec3) {
	front := target.Sub(c.Origin).Normalize()
	right := front.Cross(up).Normalize()
	realUp := right.Cross(front)

	c.Front = front
	c.Right = right
	c.Up = realUp
	c.viewMatrix.dirty = true
}

func (c *Camera) SetOrigin(origin hmath.Vec3) {
	c.Origin = origin
	c.viewMatrix.dirty = true
}

func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
		c.viewMatrix.dirty = true
	}
}

func (c *Camera) updateMatrices() {
	target := c.Origin.Add(c.Front)
	c.viewMatrix.view = hmath.Mat4LookAt(c.Origin, target, c.Up)
	c.viewMatrix.proj = hmath.Mat4Perspective(c.Fov, c.Aspect, c.Near, c.Far)
	// Row-vector convention: v.MulMat(combined) must apply view first, so
	// the view matrix goes on the left.
	c.viewMatrix.combined = c.viewMatrix.view.Mul(c.viewMatrix.proj)
	c.viewMatrix.dirty = false
}

func (c *Camera) ViewMatrix() hmath.Mat4 {
	if c.viewMatrix.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix.view
}

func (c *Camera) ProjMatrix() hmath.Mat4 {
	if c.viewMatrix.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix.proj
}

func (c *Camera) CombinedMatrix() hmath.Mat4 {
	if c.viewMatrix.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix.combined
}
