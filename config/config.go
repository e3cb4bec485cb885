// Package config loads the renderer's tunable parameters from a TOML
// file: render size, camera projection, and the ray-tracing and
// rasterization feature toggles.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	hmath "hybridrt/math"
	"hybridrt/raster"
	"hybridrt/raytrace"
)

// Config is the top-level, TOML-tagged configuration consumed by
// cmd/render. It composes the ray tracer's and rasterizer's own Config
// types rather than flattening their fields, so each package keeps sole
// ownership of its defaults and validation.
type Config struct {
	RenderWidth  int    `toml:"render_width"`
	RenderHeight int    `toml:"render_height"`
	TileSize     int    `toml:"tile_size"`
	OutputDir    string `toml:"output_dir"`

	Camera CameraConfig `toml:"camera"`

	RayTrace  RayTraceConfig  `toml:"raytrace"`
	Rasterize RasterizeConfig `toml:"rasterize"`
}

// CameraConfig carries the projection parameters shared by every view
// (front, top, side, and the primary perspective view).
type CameraConfig struct {
	FovDeg float64 `toml:"fov_deg"`
	Near   float64
	Far    float64
}

// RayTraceConfig groups the tracer's feature toggles and constants.
type RayTraceConfig struct {
	MaxBounces        int        `toml:"max_bounces"`
	UseReflection     bool       `toml:"use_reflection"`
	UseShadows        bool       `toml:"use_shadows"`
	UseAABBReject     bool       `toml:"use_aabb"`
	CullBackFaces     bool       `toml:"cull_back_faces"`
	PhongNormals      bool       `toml:"phong_normals"`
	RandomSampleCount int        `toml:"random_sample_count"`
	ReflectionJitter  float64    `toml:"reflection_jitter"`
	AmbientLight      [3]float64 `toml:"ambient_light"`
	SkyColor          [3]float64 `toml:"sky_color"`
}

type RasterizeConfig struct {
	Wireframe          bool    `toml:"draw_wireframe"`
	PerspectiveCorrect bool    `toml:"perspective_correct"`
	CullBackfaces      bool    `toml:"cull_back_faces"`
	UseShadows         bool    `toml:"use_shadows"`
	DrawAABB           bool    `toml:"draw_aabb"`
	DrawAxes           bool    `toml:"draw_axes"`
	DrawOctree         bool    `toml:"draw_octree"`
	DrawLights         bool    `toml:"draw_lights"`
	AxisSize           float64 `toml:"axis_size"`
}

// DefaultConfig is a 640x480 render at a 120px tile patch with 4
// reflection bounces and every debug overlay off.
func DefaultConfig() Config {
	return Config{
		RenderWidth:  640,
		RenderHeight: 480,
		TileSize:     120,
		OutputDir:    "output",
		Camera: CameraConfig{
			FovDeg: 60,
			Near:   0.1,
			Far:    1000,
		},
		RayTrace: RayTraceConfig{
			MaxBounces:        4,
			UseReflection:     true,
			UseShadows:        true,
			UseAABBReject:     true,
			CullBackFaces:     true,
			PhongNormals:      true,
			RandomSampleCount: 16,
			ReflectionJitter:  0.1,
			AmbientLight:      [3]float64{0.05, 0.05, 0.05},
			SkyColor:          [3]float64{0.3, 0.5, 0.9},
		},
		Rasterize: RasterizeConfig{
			Wireframe:          false,
			PerspectiveCorrect: false,
			CullBackfaces:      true,
			UseShadows:         false,
			DrawAABB:           false,
			DrawAxes:           false,
			DrawOctree:         false,
			DrawLights:         false,
			AxisSize:           20,
		},
	}
}

// Load reads a TOML config file at path, starting from DefaultConfig so an
// incomplete file only overrides the keys it sets.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %q: %w", path, err)
	}
	return cfg, nil
}

// ToRaytraceConfig converts the TOML-facing RayTraceConfig into the
// raytrace package's own Config. Sub-sampling always uses the fixed 2x2
// grid, matching raytrace.DefaultConfig's choice.
func (c Config) ToRaytraceConfig() raytrace.Config {
	return raytrace.Config{
		MaxBounces:        c.RayTrace.MaxBounces,
		UseReflection:     c.RayTrace.UseReflection,
		UseShadows:        c.RayTrace.UseShadows,
		UseAABBReject:     c.RayTrace.UseAABBReject,
		CullBackFaces:     c.RayTrace.CullBackFaces,
		PhongNormals:      c.RayTrace.PhongNormals,
		SubSamples:        raytrace.SubSample4,
		RandomSampleCount: c.RayTrace.RandomSampleCount,
		ReflectionJitter:  c.RayTrace.ReflectionJitter,
		AmbientLight:      arrayToColor(c.RayTrace.AmbientLight),
		SkyColor:          arrayToColor(c.RayTrace.SkyColor),
	}
}

func (c Config) ToRasterConfig() raster.Config {
	return raster.Config{
		Wireframe:          c.Rasterize.Wireframe,
		PerspectiveCorrect: c.Rasterize.PerspectiveCorrect,
		CullBackfaces:      c.Rasterize.CullBackfaces,
		UseShadows:         c.Rasterize.UseShadows,
		DrawAABB:           c.Rasterize.DrawAABB,
		DrawAxes:           c.Rasterize.DrawAxes,
		DrawOctree:         c.Rasterize.DrawOctree,
		DrawLights:         c.Rasterize.DrawLights,
		AxisSize:           c.Rasterize.AxisSize,
		AmbientLight:       arrayToColor(c.RayTrace.AmbientLight),
		WireColor:          hmath.NewColor(1, 1, 1, 0.1),
	}
}

func arrayToColor(c [3]float64) hmath.Color {
	return hmath.NewColor(c[0], c[1], c[2], 1)
}
