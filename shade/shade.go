// Package shade evaluates Blinn-Phong lighting from an intersection
// record. Both the ray tracer and the rasterizer call into this package so
// the two rendering paths agree on visibility, interpolation, and color.
package shade

import (
	"math"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

// HitCode classifies what a Sample represents.
type HitCode int

const (
	HitNone HitCode = iota
	HitFront
	HitBack
	HitSky
)

// Sample is an intersection record: everything downstream shading needs,
// independent of whether it came from a ray cast or a rasterized fragment.
type Sample struct {
	HitCode    HitCode
	Point      hmath.Vec3
	T          float64
	Normal     hmath.Vec3
	Albedo     hmath.Color // textured sample, or vertex-interpolated color
	Color      hmath.Color // untextured vertex-interpolated color
	SurfaceDot float64     // ray.Dir . Normal
	Material   arena.Handle
	ModelIx    uint32
}

// Light is a point light: world-space position and linear RGB intensity.
type Light struct {
	Position  hmath.Vec3
	Intensity hmath.Color
}

// ShadowTest reports whether any occluder blocks the segment from a shaded
// point toward a light position. The caller supplies this so shade stays
// independent of the scene-intersection machinery.
type ShadowTest func(point, lightPos hmath.Vec3) bool

// Shade evaluates ambient + per-light Blinn-Phong diffuse/specular for a
// front-face sample, using the surface color (textured albedo if the
// material is textured, else the vertex-interpolated color).
func Shade(s Sample, mat *arena.Material, lights []Light, ambient hmath.Color, viewDir hmath.Vec3, shadowed ShadowTest) hmath.Color {
	surfaceColor := s.Color
	if mat.Textured {
		surfaceColor = s.Albedo
	}

	final := hmath.ColorBlack
	view := viewDir.Normalize()

	for _, l := range lights {
		if shadowed(s.Point, l.Position) {
			continue
		}

		lightDir := l.Position.Sub(s.Point).Normalize()
		halfVec := view.Add(lightDir).Normalize()

		diffuseTerm := hmath.Saturate(lightDir.Dot(s.Normal))
		diffuse := mat.Kd.MulElem(l.Intensity).MulElem(surfaceColor).Mul(diffuseTerm)

		nh := hmath.Saturate(s.Normal.Dot(halfVec))
		specTerm := math.Pow(nh, mat.Ns)
		specular := mat.Ks.Mul(specTerm).MulElem(l.Intensity)

		final = final.Add(diffuse).Add(specular)
	}

	ambientTerm := ambient.MulElem(mat.Ka.MulElem(surfaceColor))
	final = final.Add(ambientTerm)
	final.A = surfaceColor.A
	return final
}

// SkyGradient returns the miss color: a vertical lerp from white to
// skyColor driven by how much the ray points toward +Z (world up).
func SkyGradient(dir hmath.Vec3, skyColor hmath.Color) hmath.Color {
	skyDot := hmath.Saturate(dir.Normalize().Dot(hmath.Vec3Up))
	return hmath.ColorWhite.Lerp(skyColor, skyDot)
}
