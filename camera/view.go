package camera

import (
	"math"

	"hybridrt/geom"
	hmath "hybridrt/math"
)

// View pairs a Camera with a target resolution and the matrices derived
// from it, the unit that both the ray tracer and the rasterizer consume.
type View struct {
	Camera *Camera
	Width  int
	Height int
}

func NewView(cam *Camera, width, height int) *View {
	cam.SetAspect(float64(width) / float64(height))
	return &View{Camera: cam, Width: width, Height: height}
}

func (v *View) ViewMatrix() hmath.Mat4     { return v.Camera.ViewMatrix() }
func (v *View) ProjMatrix() hmath.Mat4     { return v.Camera.ProjMatrix() }
func (v *View) CombinedMatrix() hmath.Mat4 { return v.Camera.CombinedMatrix() }

// GetViewRay builds a primary ray through normalized screen coordinate uv,
// where uv = (0,0) is the bottom-left of the image plane and uv = (1,1) is
// the top-right, following a standard pinhole camera model driven by the
// camera's vertical fov and aspect ratio.
func (v *View) GetViewRay(uv hmath.Vec2) geom.Ray {
	c := v.Camera
	halfHeight := math.Tan(c.Fov / 2)
	halfWidth := halfHeight * c.Aspect

	ndcX := (2*uv.X - 1) * halfWidth
	ndcY := (2*uv.Y - 1) * halfHeight

	dir := c.Front.Add(c.Right.Mul(ndcX)).Add(c.Up.Mul(ndcY)).Normalize()
	return geom.NewRay(c.Origin, dir, c.Far)
}
