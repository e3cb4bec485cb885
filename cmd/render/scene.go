package main

import (
	"math"

	"hybridrt/arena"
	"hybridrt/geom"
	hmath "hybridrt/math"
	"hybridrt/raytrace"
	"hybridrt/shade"
)

// demoMaterials holds the handful of materials the demo scene references
// by handle rather than building one-off materials per instance.
type demoMaterials struct {
	color   arena.Handle
	diffuse arena.Handle
	mirror  arena.Handle
	red     arena.Handle
	ground  arena.Handle
}

func createMaterials(a *arena.Arena) demoMaterials {
	white := hmath.NewColor(1, 1, 1, 1)
	zero := hmath.NewColor(0, 0, 0, 1)

	m := demoMaterials{}
	m.color = a.AddMaterial(arena.Material{
		Name: "color", Ka: white, Kd: white, Ks: zero, Ke: zero, Ns: 32, Tr: 0, Texture: arena.Invalid,
	})
	m.diffuse = a.AddMaterial(arena.Material{
		Name: "diffuse", Ka: white, Kd: white, Ks: white, Ke: white, Ns: 32, Tr: 0, Texture: arena.Invalid,
	})
	m.mirror = a.AddMaterial(arena.Material{
		Name: "mirror", Ka: white, Kd: white, Ks: white, Ke: white, Ns: 64, Tr: 0.8, Texture: arena.Invalid,
	})
	m.red = a.AddMaterial(arena.Material{
		Name: "red", Ka: white, Kd: hmath.NewColor(0.8, 0.1, 0.1, 1), Ks: white, Ke: zero, Ns: 32, Tr: 0, Texture: arena.Invalid,
	})
	m.ground = a.AddMaterial(arena.Material{
		Name: "ground", Ka: hmath.NewColor(0.3, 0.3, 0.3, 1), Kd: hmath.NewColor(0.6, 0.6, 0.65, 1),
		Ks: hmath.NewColor(0.1, 0.1, 0.1, 1), Ke: zero, Ns: 8, Tr: 0, Texture: arena.Invalid,
	})
	return m
}

// buildDemoScene is the built-in fallback scene: four spheres in a row
// (mirror, red diffuse, mirror, mirror), a ground plane, and two
// lights. The sphere mesh is generated procedurally so the demo needs no
// assets on disk.
func buildDemoScene(a *arena.Arena) *raytrace.Scene {
	mats := createMaterials(a)
	scene := raytrace.NewScene(a)

	sphereVB, sphereIB := buildUVSphere(a, 1.0, 24, 16)
	sphereModel := a.AllocModel(arena.Model{VB: sphereVB, IB: sphereIB, IBStart: 0, IBEnd: a.IBLen(sphereIB)})

	sphereMaterials := [4]arena.Handle{mats.mirror, mats.red, mats.mirror, mats.mirror}
	sphereY := [4]float64{-6, -2, 2, 6}
	for i := 0; i < 4; i++ {
		modelMatrix := hmath.Mat4Translation(hmath.NewVec3(0, sphereY[i], 0))
		inst, ok := geom.BuildInstance(a, sphereModel, modelMatrix, sphereMaterials[i], nil)
		if ok {
			scene.AddInstance(inst)
		}
	}

	groundVB, groundIB := buildGroundPlane(a, 30)
	groundModel := a.AllocModel(arena.Model{VB: groundVB, IB: groundIB, IBStart: 0, IBEnd: a.IBLen(groundIB)})
	groundMatrix := hmath.Mat4Translation(hmath.NewVec3(0, 0, -1.2))
	if inst, ok := geom.BuildInstance(a, groundModel, groundMatrix, mats.ground, nil); ok {
		scene.AddInstance(inst)
	}

	scene.AddLight(shade.Light{Position: hmath.NewVec3(-10, -10, 12), Intensity: hmath.NewColor(0.9, 0.9, 0.85, 1)})
	scene.AddLight(shade.Light{Position: hmath.NewVec3(8, 4, 8), Intensity: hmath.NewColor(0.3, 0.3, 0.4, 1)})

	return scene
}

// buildUVSphere generates a unit-radius (scaled by radius) latitude/
// longitude sphere mesh, triangulated into two triangles per quad (poles
// collapse to a single triangle fan naturally since the top/bottom rings
// degenerate to shared vertices). Normals equal the radial direction; uv
// follows standard spherical mapping.
func buildUVSphere(a *arena.Arena, radius float64, segments, rings int) (vb, ib arena.Handle) {
	vb = a.AllocVB()
	ib = a.AllocIB()
	white := hmath.ColorWhite

	for ring := 0; ring <= rings; ring++ {
		v := float64(ring) / float64(rings)
		phi := v * math.Pi // 0 at north pole, pi at south pole

		for seg := 0; seg <= segments; seg++ {
			u := float64(seg) / float64(segments)
			theta := u * 2 * math.Pi

			nx := math.Sin(phi) * math.Cos(theta)
			ny := math.Sin(phi) * math.Sin(theta)
			nz := math.Cos(phi)
			n := hmath.NewVec3(nx, ny, nz)

			a.AddVertex(vb, arena.Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       hmath.NewVec2(u, v),
				Color:    white,
			})
		}
	}

	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			i0 := uint32(ring*stride + seg)
			i1 := uint32(ring*stride + seg + 1)
			i2 := uint32((ring+1)*stride + seg)
			i3 := uint32((ring+1)*stride + seg + 1)

			a.AddIndex(ib, i0)
			a.AddIndex(ib, i2)
			a.AddIndex(ib, i1)

			a.AddIndex(ib, i1)
			a.AddIndex(ib, i2)
			a.AddIndex(ib, i3)
		}
	}

	return vb, ib
}

// buildGroundPlane is a single large quad (two triangles) in the XY plane,
// normal pointing +Z, used as the floor the spheres sit above.
func buildGroundPlane(a *arena.Arena, halfExtent float64) (vb, ib arena.Handle) {
	vb = a.AllocVB()
	ib = a.AllocIB()

	up := hmath.Vec3Up
	white := hmath.ColorWhite
	h := halfExtent

	corners := [4]hmath.Vec3{
		hmath.NewVec3(-h, -h, 0),
		hmath.NewVec3(h, -h, 0),
		hmath.NewVec3(h, h, 0),
		hmath.NewVec3(-h, h, 0),
	}
	uvs := [4]hmath.Vec2{
		hmath.NewVec2(0, 0), hmath.NewVec2(4, 0), hmath.NewVec2(4, 4), hmath.NewVec2(0, 4),
	}
	for i, c := range corners {
		a.AddVertex(vb, arena.Vertex{Position: c, Normal: up, UV: uvs[i], Color: white})
	}

	for _, i := range []uint32{0, 1, 2, 0, 2, 3} {
		a.AddIndex(ib, i)
	}

	return vb, ib
}
