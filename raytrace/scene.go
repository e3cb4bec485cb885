// Package raytrace implements the recursive Whitted-style ray tracer:
// scene intersection, shading recursion (shadow rays, mirror reflection),
// and per-pixel multi-sample integration.
package raytrace

import (
	"hybridrt/arena"
	"hybridrt/geom"
	hmath "hybridrt/math"
	"hybridrt/shade"
)

// Scene is an ordered, immutable collection of model instances and lights
// built once before rendering begins. The scene-wide AABB is the union of
// every instance's octree AABB, used to reject primary rays early.
type Scene struct {
	Instances []*geom.ModelInstance
	Lights    []shade.Light
	AABB      hmath.AABB
	Arena     *arena.Arena
}

func NewScene(a *arena.Arena) *Scene {
	return &Scene{Arena: a, AABB: hmath.InvertedAABB()}
}

func (s *Scene) AddInstance(inst *geom.ModelInstance) {
	s.Instances = append(s.Instances, inst)
	s.AABB = s.AABB.Union(inst.AABB)
}

func (s *Scene) AddLight(l shade.Light) {
	s.Lights = append(s.Lights, l)
}

// Hit is the result of IntersectScene: the winning sample plus the
// triangle/material needed to shade it.
type Hit struct {
	Sample   shade.Sample
	Triangle *geom.Triangle
	Material *arena.Material
}

// IntersectScene walks every model instance in order, rejecting on the
// instance AABB, querying its octree for candidates, and keeping the
// smallest positive t among triangle hits. cullBackFaces applies the
// caller's back-face policy; stopAtFirst short-circuits for shadow rays;
// phongNormals selects barycentric vertex-normal interpolation at the hit
// over the triangle's flat face normal.
func (s *Scene) IntersectScene(r geom.Ray, cullBackFaces, stopAtFirst, phongNormals bool) (Hit, bool) {
	best := Hit{Sample: shade.Sample{T: r.TMax}}
	found := false

	for modelIx, inst := range s.Instances {
		if hit, _, _ := inst.AABB.Intersect(r.Origin, r.Dir, r.TMax); !hit {
			continue
		}

		candidates := inst.Octree.Query(r)
		for _, triIx := range candidates {
			tri := inst.TriCache[triIx]
			hit, t, backFace := geom.RayTriangleIntersect(r, tri)
			if !hit || t > best.Sample.T {
				continue
			}
			if cullBackFaces && backFace {
				continue
			}

			best = s.recordSurfaceHit(r, t, backFace, &tri, uint32(modelIx), phongNormals)
			found = true

			if stopAtFirst {
				return best, true
			}
		}
	}

	return best, found
}

func (s *Scene) recordSurfaceHit(r geom.Ray, t float64, backFace bool, tri *geom.Triangle, modelIx uint32, phongNormals bool) Hit {
	point := r.Point(t)
	bary := hmath.ToBarycentric(point, tri.V0.Position, tri.V1.Position, tri.V2.Position)

	normal := tri.Normal
	if phongNormals {
		normal = hmath.FromBarycentric(bary, tri.V0.Normal, tri.V1.Normal, tri.V2.Normal).Normalize()
	}

	c0 := tri.V0.Color
	c1 := tri.V1.Color
	c2 := tri.V2.Color
	mixedColor := hmath.Color{
		R: bary.X*c0.R + bary.Y*c1.R + bary.Z*c2.R,
		G: bary.X*c0.G + bary.Y*c1.G + bary.Z*c2.G,
		B: bary.X*c0.B + bary.Y*c1.B + bary.Z*c2.B,
		A: bary.X*c0.A + bary.Y*c1.A + bary.Z*c2.A,
	}

	mat, _ := s.Arena.GetMaterial(tri.Material)
	if mat == nil {
		def := arena.DefaultMaterial()
		mat = &def
	}

	albedo := mixedColor
	if mat.Textured {
		if tex, ok := s.Arena.GetTexture(mat.Texture); ok {
			uv := hmath.NewVec2(
				bary.X*tri.V0.UV.X+bary.Y*tri.V1.UV.X+bary.Z*tri.V2.UV.X,
				bary.X*tri.V0.UV.Y+bary.Y*tri.V1.UV.Y+bary.Z*tri.V2.UV.Y,
			)
			albedo = tex.Sample(uv)
		}
	}

	surfaceDot := r.Dir.Dot(normal)
	hitCode := shade.HitFront
	if surfaceDot > 0 {
		hitCode = shade.HitBack
	}

	sample := shade.Sample{
		HitCode:    hitCode,
		Point:      point,
		T:          t,
		Normal:     normal,
		Albedo:     albedo,
		Color:      mixedColor,
		SurfaceDot: surfaceDot,
		Material:   tri.Material,
		ModelIx:    modelIx,
	}

	return Hit{Sample: sample, Triangle: tri, Material: mat}
}
