// Command render is the CLI entry point for the hybrid ray tracer /
// rasterizer: it loads configuration (and, optionally, a TOML scene
// script), builds or loads a scene, drives both rendering paths, and
// writes every output bitmap into the configured output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"hybridrt/arena"
	"hybridrt/config"
	"hybridrt/imagegrid"
	"hybridrt/io"
	hmath "hybridrt/math"
	"hybridrt/raster"
	"hybridrt/tile"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML render config (defaults baked in if omitted)")
	scenePath := flag.String("scene", "", "path to a TOML scene script (procedural demo scene if omitted)")
	outputDir := flag.String("output", "", "override the configured output directory")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	loadStart := time.Now()
	loaded, err := buildScene(cfg, *scenePath)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}
	scn := loaded.Scene
	fmt.Printf("Load time: %s\n", time.Since(loadStart))

	vs := buildViews(cfg.Camera, cfg.RenderWidth, cfg.RenderHeight)
	if loaded.View != nil {
		vs.Primary = loaded.View
	}

	rtCfg := cfg.ToRaytraceConfig()
	if loaded.SkyColor != nil {
		rtCfg.SkyColor = *loaded.SkyColor
	}
	if loaded.Ambient != nil {
		rtCfg.AmbientLight = *loaded.Ambient
	}

	frameBuffer := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.NewColor(0.2, 0.2, 0.2, 1), "_frameBuffer_0")
	dbgDiffuse := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.NewColor(1, 0, 0, 1), "dbgDiffuse")
	dbgNormal := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.ColorWhite, "dbgNormal")

	scheduler := tile.NewScheduler(cfg.TileSize)
	scheduler.Progress = tile.ProgressPrinter()

	traceStart := time.Now()
	scheduler.Render(scn, rtCfg, vs.Primary, frameBuffer, dbgDiffuse, dbgNormal)
	fmt.Printf("\nTrace time: %s\n", time.Since(traceStart))

	colorBuffer := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.ColorBlack, "colorBuffer")
	depthBuffer := imagegrid.NewScalarGrid(cfg.RenderWidth, cfg.RenderHeight, 1.0, "depthBuffer")
	zBuffer := imagegrid.NewScalarGrid(cfg.RenderWidth, cfg.RenderHeight, 1.0, "_zbuffer")

	shadedRasterCfg := cfg.ToRasterConfig()
	shadedRasterCfg.Wireframe = false
	if loaded.Ambient != nil {
		shadedRasterCfg.AmbientLight = *loaded.Ambient
	}
	raster.New(shadedRasterCfg).Render(scn, vs.Front, colorBuffer, depthBuffer, nil)
	copyScalar(zBuffer, depthBuffer)

	wireCfg := cfg.ToRasterConfig()
	wireCfg.Wireframe = true
	dbgWireframe := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.NewColor(0.8, 0.8, 0.8, 1), "dbgWireframe")
	dbgTopWire := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.NewColor(0.8, 0.8, 0.8, 1), "dbgTopWire")
	dbgSideWire := imagegrid.NewColorGrid(cfg.RenderWidth, cfg.RenderHeight, hmath.NewColor(0.8, 0.8, 0.8, 1), "dbgSideWire")

	wireDepth := imagegrid.NewScalarGrid(cfg.RenderWidth, cfg.RenderHeight, 1.0, "wire-depth")
	raster.New(wireCfg).Render(scn, vs.Front, dbgWireframe, wireDepth, nil)
	resetScalar(wireDepth, 1.0)
	raster.New(wireCfg).Render(scn, vs.Top, dbgTopWire, wireDepth, nil)
	resetScalar(wireDepth, 1.0)
	raster.New(wireCfg).Render(scn, vs.Side, dbgSideWire, wireDepth, nil)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	outputs := []func() error{
		func() error { return imagegrid.SaveColor(frameBuffer, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(dbgDiffuse, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(dbgNormal, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(colorBuffer, cfg.OutputDir) },
		func() error { return imagegrid.SaveScalar(depthBuffer, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(dbgWireframe, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(dbgTopWire, cfg.OutputDir) },
		func() error { return imagegrid.SaveColor(dbgSideWire, cfg.OutputDir) },
		func() error { return imagegrid.SaveScalarRaw(zBuffer, cfg.OutputDir) },
	}
	for _, save := range outputs {
		if err := save(); err != nil {
			log.Fatalf("write output: %v", err)
		}
	}

	fmt.Println("Raytrace finished.")
}

// buildScene loads a TOML scene script when scenePath is non-empty,
// otherwise builds the procedural demo scene. The loaded scene's View,
// SkyColor and Ambient are non-nil only when the script set them; the
// caller falls back to the configured defaults otherwise.
func buildScene(cfg config.Config, scenePath string) (*io.LoadedScene, error) {
	if scenePath == "" {
		a := arena.New()
		return &io.LoadedScene{Arena: a, Scene: buildDemoScene(a)}, nil
	}
	return io.LoadSceneScript(scenePath, cfg.RenderWidth, cfg.RenderHeight)
}

func copyScalar(dst, src *imagegrid.ScalarGrid) {
	src.ForEach(func(x, y int, v float64) {
		dst.Set(x, y, v)
	})
}

func resetScalar(g *imagegrid.ScalarGrid, v float64) {
	g.ForEach(func(x, y int, _ float64) {
		g.Set(x, y, v)
	})
}
