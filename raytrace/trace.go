package raytrace

import (
	"math"

	"hybridrt/geom"
	hmath "hybridrt/math"
	"hybridrt/shade"
)

func powNonNeg(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}

// Trace recursively evaluates a ray against the scene, following Whitted's
// model: a sky miss returns the gradient, a mirror surface short-circuits
// direct lighting entirely (a deliberate simplification, kept behind
// cfg.UseReflection), and every other front-face hit accumulates
// shadow-tested Blinn-Phong plus ambient.
func Trace(rng *Rand, scene *Scene, cfg Config, r geom.Ray, depth int) shade.Sample {
	if cfg.UseAABBReject {
		if hit, _, _ := scene.AABB.Intersect(r.Origin, r.Dir, r.TMax); !hit {
			return skySample(r, r.TMax, cfg)
		}
	}

	hitResult, found := scene.IntersectScene(r, cfg.CullBackFaces, false, cfg.PhongNormals)
	if !found {
		return skySample(r, hitResult.Sample.T, cfg)
	}

	mat := hitResult.Material
	s := hitResult.Sample

	if cfg.UseReflection && depth < cfg.MaxBounces && mat.Tr > 0 {
		reflectDir := hmath.Reflect(r.Dir, s.Normal).Normalize()
		jx, jy := rng.PointOnDisk(cfg.ReflectionJitter)
		reflectDir = reflectDir.Add(hmath.NewVec3(jx, jy, 0)).Normalize()

		reflectRay := geom.NewRay(s.Point, reflectDir, r.TMax)
		reflected := Trace(rng, scene, cfg, reflectRay, depth+1)

		s.Color = reflected.Color.Mul(mat.Tr)
		return s
	}

	surfaceColor := s.Color
	if mat.Textured {
		surfaceColor = s.Albedo
	}

	view := r.Dir.Negate().Normalize()
	final := hmath.ColorBlack

	for _, l := range scene.Lights {
		shadowDir := l.Position.Sub(s.Point)
		shadowRay := geom.NewRay(s.Point, shadowDir, 1.0)

		occluded := false
		if cfg.UseShadows {
			_, occluded = scene.IntersectScene(shadowRay, true, true, false)
		}
		if occluded {
			continue
		}

		lightDir := shadowDir.Normalize()
		halfVec := view.Add(lightDir).Normalize()

		diffuseTerm := hmath.Saturate(lightDir.Dot(s.Normal))
		diffuse := mat.Kd.MulElem(l.Intensity).Mul(diffuseTerm)

		specTerm := powNonNeg(hmath.Saturate(s.Normal.Dot(halfVec)), mat.Ns)
		specular := mat.Ks.Mul(specTerm).MulElem(l.Intensity)

		shading := specular.Add(diffuse.MulElem(surfaceColor))
		final = final.Add(shading)
	}

	ambient := cfg.AmbientLight.MulElem(mat.Ka.MulElem(surfaceColor))
	s.Color = final.Add(ambient)
	return s
}

func skySample(r geom.Ray, t float64, cfg Config) shade.Sample {
	grad := shade.SkyGradient(r.Dir, cfg.SkyColor)
	return shade.Sample{
		HitCode: shade.HitSky,
		T:       t,
		Color:   grad,
		Albedo:  grad,
	}
}
