package main

import (
	"math"

	"hybridrt/camera"
	"hybridrt/config"
	hmath "hybridrt/math"
)

// buildViews mirrors main.cpp's SetupViews: a primary camera view used for
// the ray-traced frame buffer, plus three canonical orthographic-feeling
// perspective views (front/top/side) used for the rasterizer's debug
// wireframe overlays. All four share the same target resolution and the
// same fov/near/far from cfg.Camera.
type views struct {
	Primary *camera.View
	Front   *camera.View
	Top     *camera.View
	Side    *camera.View
}

func buildViews(cfg config.CameraConfig, width, height int) views {
	fov := degToRad(cfg.FovDeg)
	aspect := float64(width) / float64(height)

	primaryCam := camera.NewCamera(hmath.NewVec3(0, -16, 4), hmath.Vec3Zero, hmath.Vec3Up, fov, aspect, cfg.Near, cfg.Far)
	frontCam := camera.NewCamera(hmath.NewVec3(0, -20, 0), hmath.Vec3Zero, hmath.Vec3Up, fov, aspect, cfg.Near, cfg.Far)
	topCam := camera.NewCamera(hmath.NewVec3(0, 0, 20), hmath.Vec3Zero, hmath.Vec3Front, fov, aspect, cfg.Near, cfg.Far)
	sideCam := camera.NewCamera(hmath.NewVec3(20, 0, 0), hmath.Vec3Zero, hmath.Vec3Up, fov, aspect, cfg.Near, cfg.Far)

	return views{
		Primary: camera.NewView(primaryCam, width, height),
		Front:   camera.NewView(frontCam, width, height),
		Top:     camera.NewView(topCam, width, height),
		Side:    camera.NewView(sideCam, width, height),
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
