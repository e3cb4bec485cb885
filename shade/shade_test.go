package shade

import (
	"math"
	"testing"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

func TestSkyGradientStraightUpMatchesSkyColor(t *testing.T) {
	sky := hmath.NewColor(0.2, 0.4, 0.9, 1)
	c := SkyGradient(hmath.Vec3Up, sky)
	if math.Abs(c.R-sky.R) > 1e-9 || math.Abs(c.G-sky.G) > 1e-9 || math.Abs(c.B-sky.B) > 1e-9 {
		t.Errorf("expected straight-up gradient to equal sky color, got %v", c)
	}
}

func TestSkyGradientHorizonIsWhite(t *testing.T) {
	sky := hmath.NewColor(0.2, 0.4, 0.9, 1)
	c := SkyGradient(hmath.NewVec3(1, 0, 0), sky)
	if math.Abs(c.R-1) > 1e-9 || math.Abs(c.G-1) > 1e-9 || math.Abs(c.B-1) > 1e-9 {
		t.Errorf("expected horizon gradient to equal white, got %v", c)
	}
}

func noShadow(_, _ hmath.Vec3) bool { return false }

func TestShadeUnlitLightFacingNormal(t *testing.T) {
	mat := arena.DefaultMaterial()
	mat.Kd = hmath.NewColor(1, 1, 1, 1)
	mat.Ks = hmath.NewColor(0, 0, 0, 1)

	s := Sample{
		Point:  hmath.NewVec3(0, 0, 0),
		Normal: hmath.NewVec3(0, 0, 1),
		Color:  hmath.NewColor(1, 1, 1, 1),
	}
	lights := []Light{{Position: hmath.NewVec3(0, 0, 10), Intensity: hmath.NewColor(1, 1, 1, 1)}}

	c := Shade(s, &mat, lights, hmath.ColorBlack, hmath.NewVec3(0, 0, 1), noShadow)
	if c.R < 0.99 {
		t.Errorf("expected near-full diffuse response facing the light, got %v", c)
	}
}

func TestShadeShadowedLightContributesNothing(t *testing.T) {
	mat := arena.DefaultMaterial()
	s := Sample{
		Point:  hmath.NewVec3(0, 0, 0),
		Normal: hmath.NewVec3(0, 0, 1),
		Color:  hmath.NewColor(1, 1, 1, 1),
	}
	lights := []Light{{Position: hmath.NewVec3(0, 0, 10), Intensity: hmath.NewColor(1, 1, 1, 1)}}

	shadowed := func(_, _ hmath.Vec3) bool { return true }
	c := Shade(s, &mat, lights, hmath.ColorBlack, hmath.NewVec3(0, 0, 1), shadowed)

	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("expected fully shadowed sample with no ambient to be black, got %v", c)
	}
}

func TestShadeTexturedUsesAlbedo(t *testing.T) {
	mat := arena.DefaultMaterial()
	mat.Textured = true
	mat.Kd = hmath.NewColor(1, 1, 1, 1)
	mat.Ks = hmath.ColorBlack

	s := Sample{
		Point:  hmath.NewVec3(0, 0, 0),
		Normal: hmath.NewVec3(0, 0, 1),
		Color:  hmath.NewColor(1, 0, 0, 1),
		Albedo: hmath.NewColor(0, 1, 0, 1),
	}
	lights := []Light{{Position: hmath.NewVec3(0, 0, 10), Intensity: hmath.NewColor(1, 1, 1, 1)}}

	c := Shade(s, &mat, lights, hmath.ColorBlack, hmath.NewVec3(0, 0, 1), noShadow)
	if c.G < 0.99 || c.R > 0.01 {
		t.Errorf("expected textured shading to use albedo (green) not vertex color (red), got %v", c)
	}
}
