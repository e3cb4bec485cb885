package raytrace

import hmath "hybridrt/math"

// SubSampleMode selects how many sub-samples are taken per pixel and how
// their offsets within the pixel are chosen.
type SubSampleMode int

const (
	SubSample1 SubSampleMode = iota // single sample at pixel center
	SubSample4                     // fixed 2x2 grid
	SubSampleRandom                // stochastic, Config.RandomSampleCount samples
)

// Config bundles the ray tracer's feature toggles. The mirror branch's
// lighting short-circuit stays behind UseReflection rather than being
// baked in unconditionally.
type Config struct {
	MaxBounces        int
	UseReflection     bool
	UseShadows        bool
	UseAABBReject     bool
	CullBackFaces     bool
	PhongNormals      bool // interpolate vertex normals at the hit instead of using the face normal
	SubSamples        SubSampleMode
	RandomSampleCount int
	ReflectionJitter  float64 // magnitude of the random disk offset on reflection rays
	AmbientLight      hmath.Color
	SkyColor          hmath.Color
}

func DefaultConfig() Config {
	return Config{
		MaxBounces:        4,
		UseReflection:     true,
		UseShadows:        true,
		UseAABBReject:     true,
		CullBackFaces:     true,
		PhongNormals:      true,
		SubSamples:        SubSample4,
		RandomSampleCount: 16,
		ReflectionJitter:  0.1,
		AmbientLight:      hmath.NewColor(0.05, 0.05, 0.05, 1),
		SkyColor:          hmath.NewColor(0.3, 0.5, 0.9, 1),
	}
}

func fixedSubSampleOffsets(mode SubSampleMode) []hmath.Vec2 {
	switch mode {
	case SubSample4:
		return []hmath.Vec2{
			{X: 0.25, Y: 0.25},
			{X: 0.75, Y: 0.25},
			{X: 0.25, Y: 0.75},
			{X: 0.75, Y: 0.75},
		}
	default:
		return []hmath.Vec2{{X: 0.5, Y: 0.5}}
	}
}
