// Package raster implements the scanline rasterizer: the same scene,
// camera, and shading model as the ray tracer (package raytrace), driven
// by a project-then-fill pipeline instead of ray casts. Both renderers
// share package shade for lighting so the two images agree on visibility
// and color wherever they overlap.
package raster

import (
	"hybridrt/arena"
	"hybridrt/camera"
	"hybridrt/geom"
	"hybridrt/imagegrid"
	hmath "hybridrt/math"
	"hybridrt/raytrace"
	"hybridrt/shade"
)

// Config bundles the rasterizer's feature toggles. Unlike raytrace.Config,
// none of these gate a correctness fix — they're rendering-mode switches a
// caller flips per debug view.
type Config struct {
	Wireframe          bool
	PerspectiveCorrect bool // false: interpolate NDC depth/attributes linearly in screen space
	CullBackfaces      bool
	UseShadows         bool // cast a shadow ray per light per fragment, using the same scene the ray tracer walks
	DrawAABB           bool
	DrawAxes           bool
	DrawOctree         bool // overlay every octree node box per instance
	DrawLights         bool // mark each light and ray it toward the scene center
	AxisSize           float64
	AmbientLight       hmath.Color
	WireColor          hmath.Color
}

func DefaultConfig() Config {
	return Config{
		Wireframe:          false,
		PerspectiveCorrect: false,
		CullBackfaces:      true,
		UseShadows:         false,
		DrawAABB:           false,
		DrawAxes:           false,
		DrawOctree:         false,
		DrawLights:         false,
		AxisSize:           20,
		AmbientLight:       hmath.NewColor(0.05, 0.05, 0.05, 1),
		WireColor:          hmath.NewColor(1, 1, 1, 0.1),
	}
}

// ScreenPoint is a vertex after the project stage.
type ScreenPoint struct {
	X, Y   float64 // screen-space pixel coordinates, Y already flipped so row 0 is the image top
	Depth  float64 // NDC z in [-1, 1], interpolated linearly by default
	InvW   float64 // 1 / (clip-space w + epsilon), used for perspective-correct interpolation
	Culled bool    // true if the point sits at or behind the eye plane
}

// ProjectPoint runs the vertex stage: world space -> clip space (via mvp)
// -> NDC (homogeneous divide, epsilon-guarded) -> screen space, with a Y
// flip so increasing row index moves down the image. Points with clip-space
// w at or below a small epsilon are rejected outright (near-plane reject)
// rather than divided through with degraded numerics.
func ProjectPoint(mvp hmath.Mat4, width, height int, p hmath.Vec3) ScreenPoint {
	clip := p.ToVec4(1.0).MulMat(mvp)
	if clip.W <= 1e-5 {
		return ScreenPoint{Culled: true}
	}

	w := clip.W + 1e-7
	ndcX := clip.X / w
	ndcY := clip.Y / w
	ndcZ := clip.Z / w

	sx := 0.5 * float64(width) * (ndcX + 1.0)
	sy := 0.5 * float64(height) * (ndcY + 1.0)
	sy = float64(height) - sy

	return ScreenPoint{X: sx, Y: sy, Depth: ndcZ, InvW: 1.0 / w}
}

// Rasterizer renders a Scene through a View into a color buffer, a
// strictly-less z-buffer, and an optional normal debug buffer.
type Rasterizer struct {
	Config Config
}

func New(cfg Config) *Rasterizer {
	return &Rasterizer{Config: cfg}
}

// Render walks every triangle of every instance once (no spatial
// acceleration — the rasterizer is already output-sensitive per fragment),
// projecting it and either drawing its wireframe or filling it via the
// scanline fragment stage. normalDbg may be nil; color and depth may not.
func (rz *Rasterizer) Render(scene *raytrace.Scene, view *camera.View, color *imagegrid.ColorGrid, depth *imagegrid.ScalarGrid, normalDbg *imagegrid.ColorGrid) {
	mvp := view.CombinedMatrix()
	cfg := rz.Config

	for _, inst := range scene.Instances {
		for _, tri := range inst.TriCache {
			p0 := ProjectPoint(mvp, view.Width, view.Height, tri.V0.Position)
			p1 := ProjectPoint(mvp, view.Width, view.Height, tri.V1.Position)
			p2 := ProjectPoint(mvp, view.Width, view.Height, tri.V2.Position)

			culled := 0
			for _, p := range [3]ScreenPoint{p0, p1, p2} {
				if p.Culled {
					culled++
				}
			}
			if culled >= 3 {
				continue
			}

			if cfg.Wireframe {
				rz.drawWireframeTri(color, p0, p1, p2, cfg.WireColor)
				continue
			}

			rz.fillTriangle(scene, view, color, depth, normalDbg, tri, p0, p1, p2)
		}

		if cfg.DrawAABB {
			DrawCube(color, view, inst.AABB, hmath.NewColor(0, 1, 0, 1))
		}
		if cfg.DrawOctree {
			DrawOctree(color, view, inst.Octree, hmath.NewColor(0, 0.6, 0.9, 0.4))
		}
	}

	if cfg.DrawAxes {
		for _, inst := range scene.Instances {
			origin := inst.ModelMatrix.MulVec3(hmath.Vec3Zero)
			DrawWorldAxis(color, view, rz.Config.AxisSize, origin,
				inst.ModelMatrix.MulDir(hmath.Vec3Right),
				inst.ModelMatrix.MulDir(hmath.Vec3Front),
				inst.ModelMatrix.MulDir(hmath.Vec3Up))
		}
	}

	if cfg.DrawLights {
		center := scene.AABB.Center()
		for _, l := range scene.Lights {
			DrawWorldPoint(color, view, l.Position, 2, hmath.NewColor(1, 1, 0, 1))
			DrawRay(color, view, geom.NewRay(l.Position, center.Sub(l.Position), 1), 1, hmath.NewColor(1, 1, 0, 0.5))
		}
	}
}

// fillTriangle is the scanline fragment stage: a screen-space AABB walk,
// an edge-function barycentric test per pixel, strictly-less depth test,
// and Blinn-Phong shading via package shade.
func (rz *Rasterizer) fillTriangle(scene *raytrace.Scene, view *camera.View, color *imagegrid.ColorGrid, depthBuf *imagegrid.ScalarGrid, normalDbg *imagegrid.ColorGrid, tri geom.Triangle, p0, p1, p2 ScreenPoint) {
	cfg := rz.Config

	minX := floorInt(minOf3(p0.X, p1.X, p2.X))
	maxX := ceilInt(maxOf3(p0.X, p1.X, p2.X))
	minY := floorInt(minOf3(p0.Y, p1.Y, p2.Y))
	maxY := ceilInt(maxOf3(p0.Y, p1.Y, p2.Y))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= view.Width {
		maxX = view.Width - 1
	}
	if maxY >= view.Height {
		maxY = view.Height - 1
	}

	mat, ok := scene.Arena.GetMaterial(tri.Material)
	if !ok || mat == nil {
		def := arena.DefaultMaterial()
		mat = &def
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0, w1, w2, inside := barycentric2D(px, py, p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y)
			if !inside {
				continue
			}

			if cfg.CullBackfaces {
				// Screen-space winding: CCW in a Y-down image is a front face.
				area := (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
				if area >= 0 {
					continue
				}
			}

			bw0, bw1, bw2 := w0, w1, w2
			if cfg.PerspectiveCorrect {
				invWSum := w0*p0.InvW + w1*p1.InvW + w2*p2.InvW
				if invWSum != 0 {
					bw0 = w0 * p0.InvW / invWSum
					bw1 = w1 * p1.InvW / invWSum
					bw2 = w2 * p2.InvW / invWSum
				}
			}

			depthVal := bw0*p0.Depth + bw1*p1.Depth + bw2*p2.Depth
			if depthVal >= depthBuf.Get(x, y) {
				continue
			}

			bary := hmath.Vec3{X: bw0, Y: bw1, Z: bw2}
			normal := hmath.FromBarycentric(bary, tri.V0.Normal, tri.V1.Normal, tri.V2.Normal).Normalize()
			worldPoint := hmath.FromBarycentric(bary, tri.V0.Position, tri.V1.Position, tri.V2.Position)

			sample := shade.Sample{
				HitCode:  shade.HitFront,
				Point:    worldPoint,
				Normal:   normal,
				Color:    interpolateVertexColor(bary, tri),
				Albedo:   sampleAlbedo(scene, mat, bary, tri),
				Material: tri.Material,
			}

			viewDir := view.Camera.Origin.Sub(worldPoint)
			shadowTest := func(point, lightPos hmath.Vec3) bool {
				if !cfg.UseShadows {
					return false
				}
				return shadowRayHits(scene, point, lightPos)
			}

			shaded := shade.Shade(sample, mat, scene.Lights, cfg.AmbientLight, viewDir, shadowTest)

			color.Set(x, y, shaded.ToSRGB())
			depthBuf.Set(x, y, depthVal)
			if normalDbg != nil {
				normalDbg.Set(x, y, hmath.NewColor(0.5*normal.X+0.5, 0.5*normal.Y+0.5, 0.5*normal.Z+0.5, 1))
			}
		}
	}
}

func interpolateVertexColor(bary hmath.Vec3, tri geom.Triangle) hmath.Color {
	c0, c1, c2 := tri.V0.Color, tri.V1.Color, tri.V2.Color
	return hmath.Color{
		R: bary.X*c0.R + bary.Y*c1.R + bary.Z*c2.R,
		G: bary.X*c0.G + bary.Y*c1.G + bary.Z*c2.G,
		B: bary.X*c0.B + bary.Y*c1.B + bary.Z*c2.B,
		A: bary.X*c0.A + bary.Y*c1.A + bary.Z*c2.A,
	}
}

func sampleAlbedo(scene *raytrace.Scene, mat *arena.Material, bary hmath.Vec3, tri geom.Triangle) hmath.Color {
	if !mat.Textured {
		return interpolateVertexColor(bary, tri)
	}
	tex, ok := scene.Arena.GetTexture(mat.Texture)
	if !ok {
		return interpolateVertexColor(bary, tri)
	}
	uv := hmath.NewVec2(
		bary.X*tri.V0.UV.X+bary.Y*tri.V1.UV.X+bary.Z*tri.V2.UV.X,
		bary.X*tri.V0.UV.Y+bary.Y*tri.V1.UV.Y+bary.Z*tri.V2.UV.Y,
	)
	return tex.Sample(uv)
}

// shadowRayHits reuses the ray tracer's own scene intersection for the
// optional per-fragment shadow test, the same first-hit query
// raytrace.Trace uses for shadow rays.
func shadowRayHits(scene *raytrace.Scene, point, lightPos hmath.Vec3) bool {
	dir := lightPos.Sub(point)
	ray := geom.NewRay(point, dir, 1.0)
	_, hit := scene.IntersectScene(ray, true, true, false)
	return hit
}

// barycentric2D is the standard edge-function test, screen-space only
// (depth plays no part in inside/outside classification).
func barycentric2D(px, py, x0, y0, x1, y1, x2, y2 float64) (w0, w1, w2 float64, inside bool) {
	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if denom == 0 {
		return 0, 0, 0, false
	}
	w0 = ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) / denom
	w1 = ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) / denom
	w2 = 1 - w0 - w1

	const eps = -1e-9
	inside = w0 >= eps && w1 >= eps && w2 >= eps
	return w0, w1, w2, inside
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func floorInt(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}

func ceilInt(v float64) int {
	i := int(v)
	if v > float64(i) {
		return i + 1
	}
	return i
}
