package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RenderWidth != 640 || cfg.RenderHeight != 480 {
		t.Errorf("expected a 640x480 default render size, got %dx%d", cfg.RenderWidth, cfg.RenderHeight)
	}
	if cfg.RayTrace.MaxBounces != 4 {
		t.Errorf("expected 4 default reflection bounces, got %d", cfg.RayTrace.MaxBounces)
	}
	if cfg.Rasterize.Wireframe {
		t.Error("expected wireframe off by default")
	}
}

func TestLoadOverridesOnlySpecifiedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
render_width = 1920
render_height = 1080

[raytrace]
max_bounces = 8
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RenderWidth != 1920 || cfg.RenderHeight != 1080 {
		t.Errorf("expected overridden render size 1920x1080, got %dx%d", cfg.RenderWidth, cfg.RenderHeight)
	}
	if cfg.RayTrace.MaxBounces != 8 {
		t.Errorf("expected overridden max_bounces=8, got %d", cfg.RayTrace.MaxBounces)
	}
	// Untouched keys should keep DefaultConfig's values.
	if cfg.TileSize != 120 {
		t.Errorf("expected default tile_size=120 to survive a partial override, got %d", cfg.TileSize)
	}
	if !cfg.RayTrace.UseShadows {
		t.Error("expected default use_shadows=true to survive a partial override")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error loading a nonexistent config file")
	}
}

func TestToRaytraceConfigCarriesValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RayTrace.MaxBounces = 2
	rt := cfg.ToRaytraceConfig()
	if rt.MaxBounces != 2 {
		t.Errorf("expected MaxBounces=2 to carry through, got %d", rt.MaxBounces)
	}
}

func TestToRasterConfigCarriesValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rasterize.Wireframe = true
	rz := cfg.ToRasterConfig()
	if !rz.Wireframe {
		t.Error("expected Wireframe=true to carry through")
	}
}
