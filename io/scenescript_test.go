package io

import (
	"os"
	"path/filepath"
	"testing"
)

const sceneScriptTOML = `
sky_color = { R = 0.2, G = 0.4, B = 0.8, A = 1 }

[camera]
position = { X = 0, Y = -5, Z = 0 }
target = { X = 0, Y = 0, Z = 0 }
up = { X = 0, Y = 0, Z = 1 }
fov_deg = 60
near = 0.1
far = 1000

[[lights]]
position = { X = 0, Y = -10, Z = 5 }
intensity = { R = 1, G = 1, B = 1, A = 1 }

[[instance]]
name = "floor"
mesh = "floor.obj"
transform = { position = { X = 0, Y = 0, Z = 0 } }
mirror = true
`

const floorOBJ = `
v -1 0 -1
v 1 0 -1
v 0 0 1
f 1 2 3
`

func writeSceneScriptFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "floor.obj"), []byte(floorOBJ), 0o644); err != nil {
		t.Fatalf("write fixture OBJ: %v", err)
	}
	scriptPath := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(scriptPath, []byte(sceneScriptTOML), 0o644); err != nil {
		t.Fatalf("write fixture scene script: %v", err)
	}
	return scriptPath
}

func TestLoadSceneScriptBuildsSceneAndView(t *testing.T) {
	path := writeSceneScriptFixture(t)

	loaded, err := LoadSceneScript(path, 64, 64)
	if err != nil {
		t.Fatalf("LoadSceneScript: %v", err)
	}
	if len(loaded.Scene.Instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(loaded.Scene.Instances))
	}
	if len(loaded.Scene.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(loaded.Scene.Lights))
	}
	if loaded.View == nil {
		t.Fatal("expected a camera view to be built from the [camera] table")
	}
	if loaded.SkyColor == nil || loaded.SkyColor.B != 0.8 {
		t.Errorf("expected sky_color to carry through, got %v", loaded.SkyColor)
	}
	if loaded.Ambient != nil {
		t.Errorf("expected ambient to stay nil when the script omits it, got %v", loaded.Ambient)
	}

	inst := loaded.Scene.Instances[0]
	mat, ok := loaded.Arena.GetMaterial(inst.DefaultMat)
	if !ok {
		t.Fatal("expected instance material to resolve")
	}
	if mat.Tr != 1 {
		t.Errorf("expected mirror=true to set Tr=1, got %v", mat.Tr)
	}
}

func TestLoadSceneScriptMissingFileErrors(t *testing.T) {
	if _, err := LoadSceneScript(filepath.Join(t.TempDir(), "missing.toml"), 64, 64); err == nil {
		t.Error("expected an error loading a nonexistent scene script")
	}
}
