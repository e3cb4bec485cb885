// Package io loads scene data (meshes, materials, textures, whole scene
// descriptions) from disk straight into an arena.Arena, the shape the
// renderer's geometry and shading stages consume.
package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

// OBJMesh names one parsed mesh group: a model ready for geom.BuildInstance,
// plus the material it referenced (Invalid if it used none, in which case
// the caller should fall back to arena.DefaultMaterial).
type OBJMesh struct {
	Name     string
	Model    arena.Handle
	Material arena.Handle
}

// LoadOBJ parses a Wavefront .obj file straight into a, allocating one
// vertex buffer and one index buffer per named object/group ("o"/"g").
// "mtllib"/"usemtl" directives resolve against MTL files loaded via LoadMTL,
// interned so a name repeated across meshes collapses onto one material
// handle. Placing the returned meshes in the scene (transform, instancing)
// is left to the caller, since an OBJ file carries no transform of its own.
func LoadOBJ(a *arena.Arena, path string) ([]OBJMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OBJ file %q: %w", path, err)
	}
	defer f.Close()

	var positions []hmath.Vec3
	var normals []hmath.Vec3
	var uvs []hmath.Vec2

	materialHandles := make(map[string]arena.Handle)

	type building struct {
		name     string
		vb       arena.Handle
		ib       arena.Handle
		count    uint32
		indices  uint32
		material string
	}
	startMesh := func(name, material string) building {
		return building{name: name, vb: a.AllocVB(), ib: a.AllocIB(), material: material}
	}

	var meshes []OBJMesh
	flush := func(b building) {
		if b.count == 0 {
			return
		}
		model := a.AllocModel(arena.Model{VB: b.vb, IB: b.ib, IBStart: 0, IBEnd: b.indices})
		mat := arena.Invalid
		if h, ok := materialHandles[b.material]; ok {
			mat = h
		}
		meshes = append(meshes, OBJMesh{Name: b.name, Model: model, Material: mat})
	}

	currentMaterial := ""
	current := startMesh("default", currentMaterial)
	vertexMap := make(map[string]uint32) // "v/vt/vn" -> vertex index in current's VB

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 64)
				y, _ := strconv.ParseFloat(parts[2], 64)
				z, _ := strconv.ParseFloat(parts[3], 64)
				positions = append(positions, hmath.NewVec3(x, y, z))
			}
		case "vn":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 64)
				y, _ := strconv.ParseFloat(parts[2], 64)
				z, _ := strconv.ParseFloat(parts[3], 64)
				normals = append(normals, hmath.NewVec3(x, y, z))
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 64)
				v, _ := strconv.ParseFloat(parts[2], 64)
				uvs = append(uvs, hmath.NewVec2(u, v))
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				vtx := parseFaceVertex(faceStr, positions, normals, uvs)
				newIdx := current.count
				a.AddVertex(current.vb, vtx)
				current.count++
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}
			for i := 2; i < len(faceVerts); i++ {
				a.AddIndex(current.ib, faceVerts[0])
				a.AddIndex(current.ib, faceVerts[i-1])
				a.AddIndex(current.ib, faceVerts[i])
				current.indices += 3
			}

		case "o", "g":
			flush(current)
			name := "unnamed"
			if len(parts) > 1 {
				name = parts[1]
			}
			current = startMesh(name, currentMaterial)
			vertexMap = make(map[string]uint32)

		case "usemtl":
			if len(parts) > 1 {
				currentMaterial = parts[1]
				current.material = currentMaterial
			}

		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(filepath.Dir(path), parts[1])
				loaded, err := LoadMTL(a, mtlPath)
				if err != nil {
					fmt.Printf("warning: failed to load MTL file %s: %v\n", mtlPath, err)
					continue
				}
				for name, mat := range loaded {
					materialHandles[name] = a.InternMaterial(mat)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan OBJ file %q: %w", path, err)
	}

	flush(current)
	if len(meshes) == 0 {
		return nil, fmt.Errorf("no mesh data found in OBJ file %q", path)
	}
	return meshes, nil
}

// LoadMTL parses a Wavefront .mtl material library into arena.Material
// values keyed by material name. A "map_Kd" directive is resolved via
// LoadTexture and registered into a, so the returned material carries a
// valid Texture handle rather than just a flag.
func LoadMTL(a *arena.Arena, path string) (map[string]arena.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open MTL file %q: %w", path, err)
	}
	defer f.Close()

	result := make(map[string]arena.Material)
	currentName := ""
	current := arena.DefaultMaterial()

	commit := func() {
		if currentName != "" {
			result[currentName] = current
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "newmtl":
			commit()
			currentName = ""
			if len(parts) > 1 {
				currentName = parts[1]
				current = arena.DefaultMaterial()
				current.Name = currentName
			}
		case "Ka":
			if currentName != "" && len(parts) >= 4 {
				current.Ka = parseColor3(parts[1:4])
			}
		case "Kd":
			if currentName != "" && len(parts) >= 4 {
				current.Kd = parseColor3(parts[1:4])
			}
		case "Ks":
			if currentName != "" && len(parts) >= 4 {
				current.Ks = parseColor3(parts[1:4])
			}
		case "Ke":
			if currentName != "" && len(parts) >= 4 {
				current.Ke = parseColor3(parts[1:4])
			}
		case "Ns":
			if currentName != "" && len(parts) >= 2 {
				ns, _ := strconv.ParseFloat(parts[1], 64)
				current.Ns = ns
			}
		case "d", "Tr":
			if currentName != "" && len(parts) >= 2 {
				d, _ := strconv.ParseFloat(parts[1], 64)
				if parts[0] == "Tr" {
					d = 1.0 - d
				}
				current.Tr = 1.0 - d
			}
		case "map_Kd":
			if currentName != "" && len(parts) > 1 {
				texPath := filepath.Join(filepath.Dir(path), parts[len(parts)-1])
				h, err := LoadTexture(a, texPath)
				if err != nil {
					fmt.Printf("warning: failed to load texture %s: %v\n", texPath, err)
					continue
				}
				current.Texture = h
				current.Textured = true
			}
		}
	}
	commit()
	return result, scanner.Err()
}

func parseColor3(fields []string) hmath.Color {
	r, _ := strconv.ParseFloat(fields[0], 64)
	g, _ := strconv.ParseFloat(fields[1], 64)
	b, _ := strconv.ParseFloat(fields[2], 64)
	return hmath.NewColor(r, g, b, 1)
}

// parseFaceVertex parses a single OBJ face-vertex spec ("v", "v/vt",
// "v//vn", or "v/vt/vn"), resolving negative (relative-to-end) indices.
func parseFaceVertex(spec string, positions, normals []hmath.Vec3, uvs []hmath.Vec2) arena.Vertex {
	v := arena.Vertex{Color: hmath.NewColor(0.8, 0.8, 0.8, 1)}
	parts := strings.Split(spec, "/")

	if len(parts) >= 1 && parts[0] != "" {
		if idx := resolveIndex(parts[0], len(positions)); idx >= 0 {
			v.Position = positions[idx]
		}
	}
	if len(parts) >= 2 && parts[1] != "" {
		if idx := resolveIndex(parts[1], len(uvs)); idx >= 0 {
			v.UV = uvs[idx]
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		if idx := resolveIndex(parts[2], len(normals)); idx >= 0 {
			v.Normal = normals[idx]
		}
	}
	return v
}

// resolveIndex converts an OBJ 1-based (or negative, relative-to-end)
// index string into a 0-based slice index, or -1 if out of range.
func resolveIndex(s string, length int) int {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	if idx < 0 {
		idx = length + idx + 1
	}
	if idx <= 0 || idx > length {
		return -1
	}
	return idx - 1
}
