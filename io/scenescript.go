package io

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hybridrt/arena"
	"hybridrt/camera"
	"hybridrt/geom"
	hmath "hybridrt/math"
	"hybridrt/raytrace"
	"hybridrt/shade"
)

// sceneScript is the TOML document shape for a scene description: an
// optional camera and sky/ambient override, a light list, and instance
// placements addressing mesh files by path instead of baked-in geometry.
type sceneScript struct {
	SkyColor  *colorTOML     `toml:"sky_color"`
	Ambient   *colorTOML     `toml:"ambient"`
	Camera    *cameraTOML    `toml:"camera"`
	Lights    []lightTOML    `toml:"lights"`
	Instances []instanceTOML `toml:"instance"`
}

type vec3TOML struct {
	X, Y, Z float64
}

func (v vec3TOML) toVec3() hmath.Vec3 { return hmath.NewVec3(v.X, v.Y, v.Z) }

type colorTOML struct {
	R, G, B, A float64
}

func (c colorTOML) toColor() hmath.Color { return hmath.NewColor(c.R, c.G, c.B, c.A) }

type cameraTOML struct {
	Position vec3TOML
	Target   vec3TOML
	Up       vec3TOML
	FovDeg   float64 `toml:"fov_deg"`
	Near     float64
	Far      float64
}

type lightTOML struct {
	Position  vec3TOML
	Intensity colorTOML
}

// instanceTOML places a single mesh file in the world, optionally
// overriding its material's diffuse color or marking it a mirror. The
// override copies the material rather than mutating it, so other
// instances of the same mesh keep theirs.
type instanceTOML struct {
	Name      string
	Mesh      string
	Transform transformTOML
	MeshGroup string  `toml:"mesh_group"` // selects one OBJ mesh group by name; empty = first
	Kd        *colorTOML
	Mirror    bool // sets material Tr=1, a fully reflective surface
}

type transformTOML struct {
	Position vec3TOML
	Scale    vec3TOML
	// Rotation in degrees, applied X then Y then Z (hmath.Mat4Rotation's
	// Euler convention).
	RotationDeg vec3TOML `toml:"rotation_deg"`
}

func (t transformTOML) toMat4() hmath.Mat4 {
	scale := t.Scale
	if scale == (vec3TOML{}) {
		scale = vec3TOML{X: 1, Y: 1, Z: 1}
	}
	euler := hmath.NewVec3(
		degToRad(t.RotationDeg.X), degToRad(t.RotationDeg.Y), degToRad(t.RotationDeg.Z),
	)
	return hmath.Mat4TRS(t.Position.toVec3(), euler, scale.toVec3())
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// LoadedScene bundles everything a scene script produces: the arena that
// owns the geometry/materials it loaded, the populated raytrace.Scene, and
// the camera view built from the script's [camera] table (nil if absent,
// letting the caller fall back to a default view). SkyColor and Ambient are
// non-nil only when the script set them, so the caller can keep its
// configured values otherwise.
type LoadedScene struct {
	Arena    *arena.Arena
	Scene    *raytrace.Scene
	View     *camera.View
	SkyColor *hmath.Color
	Ambient  *hmath.Color
}

// LoadSceneScript reads a TOML scene description at path and resolves every
// [[instance]] entry's mesh file (OBJ, mdl, or glTF, chosen by extension)
// relative to the script's directory.
func LoadSceneScript(path string, width, height int) (*LoadedScene, error) {
	var script sceneScript
	if _, err := toml.DecodeFile(path, &script); err != nil {
		return nil, fmt.Errorf("decode scene script %q: %w", path, err)
	}

	a := arena.New()
	scene := raytrace.NewScene(a)
	dir := filepath.Dir(path)

	for _, l := range script.Lights {
		scene.AddLight(shade.Light{Position: l.Position.toVec3(), Intensity: l.Intensity.toColor()})
	}

	for _, inst := range script.Instances {
		meshPath := inst.Mesh
		if !filepath.IsAbs(meshPath) {
			meshPath = filepath.Join(dir, meshPath)
		}

		if ext := strings.ToLower(filepath.Ext(meshPath)); ext == ".gltf" || ext == ".glb" {
			if err := addGLTFInstance(a, scene, meshPath, inst); err != nil {
				return nil, fmt.Errorf("instance %q: %w", inst.Name, err)
			}
			continue
		}

		model, matHandle, err := resolveInstanceMesh(a, meshPath, inst)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", inst.Name, err)
		}
		matHandle, err = overrideMaterial(a, matHandle, inst)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", inst.Name, err)
		}

		built, ok := geom.BuildInstance(a, model, inst.Transform.toMat4(), matHandle, nil)
		if !ok {
			return nil, fmt.Errorf("instance %q: failed to build (empty mesh?)", inst.Name)
		}
		scene.AddInstance(built)
	}

	loaded := &LoadedScene{Arena: a, Scene: scene}
	if script.SkyColor != nil {
		c := script.SkyColor.toColor()
		loaded.SkyColor = &c
	}
	if script.Ambient != nil {
		c := script.Ambient.toColor()
		loaded.Ambient = &c
	}
	if script.Camera != nil {
		c := script.Camera
		fov := degToRad(c.FovDeg)
		cam := camera.NewCamera(c.Position.toVec3(), c.Target.toVec3(), c.Up.toVec3(), fov, float64(width)/float64(height), c.Near, c.Far)
		loaded.View = camera.NewView(cam, width, height)
	}
	return loaded, nil
}

// overrideMaterial applies an instance's Kd/Mirror override by copying the
// referenced material, so other instances of the same mesh keep theirs.
func overrideMaterial(a *arena.Arena, mat arena.Handle, inst instanceTOML) (arena.Handle, error) {
	if inst.Kd == nil && !inst.Mirror {
		return mat, nil
	}
	m, ok := a.GetMaterial(mat)
	if !ok {
		return arena.Invalid, fmt.Errorf("material handle did not resolve (loaded materials: %s)",
			strings.Join(a.MaterialNames(), ", "))
	}
	overridden := *m
	if inst.Kd != nil {
		overridden.Kd = inst.Kd.toColor()
	}
	if inst.Mirror {
		overridden.Tr = 1
	}
	return a.AddMaterial(overridden), nil
}

// addGLTFInstance loads a glTF file and places every mesh-bearing node,
// composing the script transform with each node's own world transform.
func addGLTFInstance(a *arena.Arena, scene *raytrace.Scene, meshPath string, inst instanceTOML) error {
	placements, err := LoadGLTF(a, meshPath)
	if err != nil {
		return err
	}
	if len(placements) == 0 {
		return fmt.Errorf("no mesh-bearing nodes in %q", meshPath)
	}

	base := inst.Transform.toMat4()
	for _, p := range placements {
		mat, err := overrideMaterial(a, p.Material, inst)
		if err != nil {
			return err
		}
		// Row-vector convention: the node's own world transform applies
		// before the script transform.
		built, ok := geom.BuildInstance(a, p.Model, p.Transform.Mul(base), mat, nil)
		if !ok {
			continue
		}
		scene.AddInstance(built)
	}
	return nil
}

// resolveInstanceMesh loads a mesh file by extension (".obj" or ".mdl")
// and returns the model and default material handle to instance.
func resolveInstanceMesh(a *arena.Arena, meshPath string, inst instanceTOML) (model, material arena.Handle, err error) {
	switch ext := strings.ToLower(filepath.Ext(meshPath)); ext {
	case ".obj":
		meshes, err := LoadOBJ(a, meshPath)
		if err != nil {
			return arena.Invalid, arena.Invalid, err
		}
		chosen := meshes[0]
		if inst.MeshGroup != "" {
			found := false
			for _, m := range meshes {
				if m.Name == inst.MeshGroup {
					chosen = m
					found = true
					break
				}
			}
			if !found {
				return arena.Invalid, arena.Invalid, fmt.Errorf("mesh group %q not found in %q", inst.MeshGroup, meshPath)
			}
		}
		mat := chosen.Material
		if !mat.Valid() {
			mat = a.AddMaterial(arena.DefaultMaterial())
		}
		return chosen.Model, mat, nil

	case ".mdl":
		return LoadModelBinary(a, meshPath)

	default:
		return arena.Invalid, arena.Invalid, fmt.Errorf("unrecognized mesh extension %q", ext)
	}
}
