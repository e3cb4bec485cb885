package raytrace

import (
	"hybridrt/camera"
	hmath "hybridrt/math"
	"hybridrt/shade"
)

// PixelResult carries everything TracePixel accumulated for one pixel, so
// the debug diffuse/normal buffers can be written alongside the color.
type PixelResult struct {
	Color           hmath.Color // gamma-encoded, alpha = coverage
	Normal          hmath.Vec3  // averaged, re-normalized shading normal
	Diffuse         float64     // averaged eye-to-surface dot
	Coverage        float64     // fraction of sub-samples that produced a sample at all (sky counts)
	SurfaceCoverage float64     // fraction of sub-samples that hit scene geometry (sky excluded)
}

// TracePixel integrates every sub-sample for pixel (px, py), accumulating
// color, surface dot, normal and coverage, then gamma-encodes the averaged
// color and reports it ready for source-alpha blending against the prior
// pixel value. frame seeds the per-pixel RNG used for stochastic
// sub-sampling and reflection jitter so repeated renders of the same scene
// are reproducible.
func TracePixel(scene *Scene, cfg Config, view *camera.View, frame, px, py int) PixelResult {
	offsets := subSampleOffsets(cfg, frame, px, py)

	var colorSum hmath.Color
	var normalSum hmath.Vec3
	var diffuseSum float64
	var coverage float64
	var surfaceCoverage float64

	for i, off := range offsets {
		u := (float64(px) + off.X) / (float64(view.Width) - 1.0)
		v := (float64(py) + off.Y) / (float64(view.Height) - 1.0)

		ray := view.GetViewRay(hmath.NewVec2(u, 1.0-v))

		rng := NewRand(frame, px, py, i)
		s := Trace(rng, scene, cfg, ray, 0)

		colorSum = colorSum.Add(s.Color)
		normalSum = normalSum.Add(s.Normal)
		diffuseSum += s.SurfaceDot
		// A sky miss still counts as a sample, so a pixel with no geometry
		// paints the sky gradient rather than keeping its clear color.
		// SurfaceCoverage tracks geometry hits alone, the number a
		// rasterizer/ray-tracer silhouette comparison should use.
		if s.HitCode != shade.HitNone {
			coverage += 1.0
		}
		if s.HitCode == shade.HitFront || s.HitCode == shade.HitBack {
			surfaceCoverage += 1.0
		}
	}

	n := float64(len(offsets))
	avgColor := colorSum.Mul(1.0 / n)
	avgColor.A = coverage / n

	return PixelResult{
		Color:           avgColor.ToSRGB(),
		Normal:          normalSum.Normalize(),
		Diffuse:         diffuseSum / n,
		Coverage:        coverage / n,
		SurfaceCoverage: surfaceCoverage / n,
	}
}

func subSampleOffsets(cfg Config, frame, px, py int) []hmath.Vec2 {
	if cfg.SubSamples == SubSampleRandom {
		n := cfg.RandomSampleCount
		if n <= 0 {
			n = 1
		}
		rng := NewRand(frame, px, py, -1)
		out := make([]hmath.Vec2, n)
		for i := range out {
			out[i] = hmath.NewVec2(rng.Float64(), rng.Float64())
		}
		return out
	}
	return fixedSubSampleOffsets(cfg.SubSamples)
}

// Blend composites a traced pixel over the prior contents of dst using the
// traced sample's coverage as its source alpha, exactly as the tile
// scheduler's per-pixel write path requires.
func (p PixelResult) Blend(dst hmath.Color) hmath.Color {
	return p.Color.Over(dst)
}
