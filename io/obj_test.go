package io

import (
	"os"
	"path/filepath"
	"testing"

	"hybridrt/arena"
)

const triangleOBJ = `
# a single triangle with a quad second group
o tri
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1

o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func writeTempOBJ(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp OBJ: %v", err)
	}
	return path
}

func TestLoadOBJParsesGroupsAndTriangulatesQuad(t *testing.T) {
	path := writeTempOBJ(t, triangleOBJ)
	a := arena.New()

	meshes, err := LoadOBJ(a, path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 mesh groups, got %d", len(meshes))
	}
	if meshes[0].Name != "tri" || meshes[1].Name != "quad" {
		t.Errorf("unexpected mesh names: %q, %q", meshes[0].Name, meshes[1].Name)
	}

	triModel, ok := a.GetModel(meshes[0].Model)
	if !ok {
		t.Fatal("expected triangle model to resolve")
	}
	if got := triModel.IBEnd - triModel.IBStart; got != 3 {
		t.Errorf("expected 3 indices for a single triangle, got %d", got)
	}

	quadModel, ok := a.GetModel(meshes[1].Model)
	if !ok {
		t.Fatal("expected quad model to resolve")
	}
	if got := quadModel.IBEnd - quadModel.IBStart; got != 6 {
		t.Errorf("expected fan triangulation of a quad to produce 6 indices, got %d", got)
	}
}

func TestLoadOBJMissingFileErrors(t *testing.T) {
	a := arena.New()
	if _, err := LoadOBJ(a, filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected an error loading a nonexistent OBJ file")
	}
}

func TestLoadMTLParsesMaterialProperties(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mats.mtl")
	contents := `
newmtl red
Kd 0.8 0.1 0.1
Ks 0.5 0.5 0.5
Ns 64
d 1.0
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp MTL: %v", err)
	}

	a := arena.New()
	mats, err := LoadMTL(a, path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	red, ok := mats["red"]
	if !ok {
		t.Fatal("expected a \"red\" material")
	}
	if red.Kd.R < 0.7 || red.Kd.R > 0.9 {
		t.Errorf("expected Kd.R near 0.8, got %v", red.Kd.R)
	}
	if red.Ns != 64 {
		t.Errorf("expected Ns=64, got %v", red.Ns)
	}
}

func TestResolveIndexHandlesNegativeAndOutOfRange(t *testing.T) {
	if idx := resolveIndex("2", 5); idx != 1 {
		t.Errorf("expected 1-based index 2 to resolve to 1, got %d", idx)
	}
	if idx := resolveIndex("-1", 5); idx != 4 {
		t.Errorf("expected -1 to resolve to the last element (4), got %d", idx)
	}
	if idx := resolveIndex("9", 5); idx != -1 {
		t.Errorf("expected an out-of-range index to resolve to -1, got %d", idx)
	}
}
