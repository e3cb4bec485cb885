package io

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"hybridrt/arena"
	"hybridrt/geom"
	hmath "hybridrt/math"
)

// GLTFPlacement names one mesh primitive instanced at a world transform,
// the minimum a caller needs to turn a loaded glTF document into
// geom.ModelInstances. This renderer keeps no live node hierarchy — the
// document's node tree is flattened into world transforms during load,
// since geom.BuildInstance only ever wants a model, a material, and a
// single combined matrix.
type GLTFPlacement struct {
	Name      string
	Model     arena.Handle
	Material  arena.Handle
	Transform hmath.Mat4
}

// LoadGLTF opens a .glb or .gltf file, registers its meshes, textures, and
// materials into a, and returns one placement per primitive of each
// mesh-bearing node, carrying that node's accumulated world transform. PBR metallic-roughness is approximated
// to Blinn-Phong.
func LoadGLTF(a *arena.Arena, path string) ([]GLTFPlacement, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	texCache := make([]arena.Handle, len(doc.Textures))
	for i := range texCache {
		texCache[i] = arena.Invalid
	}
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var h arena.Handle
		var err error
		switch {
		case img.BufferView != nil:
			raw, rerr := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if rerr != nil {
				fmt.Printf("gltf: image %d bufferview: %v\n", *gt.Source, rerr)
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			h, err = decodeImageBytesToArena(a, name, raw)
		case img.URI != "" && !img.IsEmbeddedResource():
			h, err = LoadTexture(a, filepath.Join(filepath.Dir(path), img.URI))
		default:
			continue
		}
		if err != nil {
			fmt.Printf("gltf: image %d (%s): %v\n", *gt.Source, img.URI, err)
			continue
		}
		texCache[i] = h
	}

	matCache := make([]arena.Handle, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := arena.DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Kd = hmath.NewColor(float64(cf[0]), float64(cf[1]), float64(cf[2]), float64(cf[3]))
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(texCache) && texCache[idx].Valid() {
					mat.Texture = texCache[idx]
					mat.Textured = true
				}
			}

			// PBR → Phong approximation: roughness drives shininess (a
			// smooth surface is a high-shininess one), metallic drives
			// specular intensity.
			roughness := pbr.RoughnessFactorOrDefault()
			metallic := pbr.MetallicFactorOrDefault()
			mat.Ns = (1.0-roughness)*(1.0-roughness)*128.0 + 1.0
			s := metallic * 0.7
			mat.Ks = hmath.NewColor(s, s, s, 1)
		}
		matCache[i] = a.AddMaterial(mat)
	}

	meshPrims := make([][]arena.Handle, len(doc.Meshes))
	meshPrimMats := make([][]arena.Handle, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			model, err := loadGLTFPrimitive(a, doc, *prim)
			if err != nil {
				fmt.Printf("gltf: mesh %d prim %d: %v\n", mi, pi, err)
				continue
			}
			matHandle := arena.Invalid
			if prim.Material != nil && *prim.Material < len(matCache) {
				matHandle = matCache[*prim.Material]
			} else {
				matHandle = a.AddMaterial(arena.DefaultMaterial())
			}
			meshPrims[mi] = append(meshPrims[mi], model)
			meshPrimMats[mi] = append(meshPrimMats[mi], matHandle)
		}
	}

	var placements []GLTFPlacement
	var walk func(nodeIdx int, parent hmath.Mat4)
	walk = func(nodeIdx int, parent hmath.Mat4) {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[nodeIdx]
		local := gltfLocalTransform(gn)
		// Row-vector convention: the local transform applies before the
		// parent's, so it goes on the left.
		world := local.Mul(parent)

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrims) {
			models := meshPrims[*gn.Mesh]
			mats := meshPrimMats[*gn.Mesh]
			for pi, model := range models {
				name := gn.Name
				if name == "" {
					name = fmt.Sprintf("node_%d", nodeIdx)
				}
				placements = append(placements, GLTFPlacement{
					Name:      fmt.Sprintf("%s_prim%d", name, pi),
					Model:     model,
					Material:  mats[pi],
					Transform: world,
				})
			}
		}
		for _, child := range gn.Children {
			walk(int(child), world)
		}
	}

	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		for _, root := range doc.Scenes[*doc.Scene].Nodes {
			walk(int(root), hmath.Mat4Identity())
		}
	} else {
		hasParent := make([]bool, len(doc.Nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				if int(c) < len(hasParent) {
					hasParent[c] = true
				}
			}
		}
		for i := range doc.Nodes {
			if !hasParent[i] {
				walk(i, hmath.Mat4Identity())
			}
		}
	}

	return placements, nil
}

// gltfLocalTransform builds a node's local TRS matrix (scale, then
// rotation, then translation applied to a row vector), substituting a
// direct quaternion-to-matrix conversion for hmath.Mat4TRS's Euler-angle
// rotation, since glTF stores rotation as a quaternion.
func gltfLocalTransform(gn *gltf.Node) hmath.Mat4 {
	t := gn.TranslationOrDefault()
	s := gn.ScaleOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]

	translation := hmath.Mat4Translation(hmath.NewVec3(float64(t[0]), float64(t[1]), float64(t[2])))
	rotation := quatToMat4(float64(r[0]), float64(r[1]), float64(r[2]), float64(r[3]))
	scale := hmath.Mat4Scale(hmath.NewVec3(float64(s[0]), float64(s[1]), float64(s[2])))

	return scale.Mul(rotation).Mul(translation)
}

// quatToMat4 lays the rotation out for row-vector application
// (v.MulMat(m)), matching the hand-written Mat4RotationX/Y/Z matrices.
func quatToMat4(x, y, z, w float64) hmath.Mat4 {
	m := hmath.Mat4Identity()
	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y + z*w)
	m[0][2] = 2 * (x*z - y*w)
	m[1][0] = 2 * (x*y - z*w)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z + x*w)
	m[2][0] = 2 * (x*z + y*w)
	m[2][1] = 2 * (y*z - x*w)
	m[2][2] = 1 - 2*(x*x+y*y)
	return m
}

// loadGLTFPrimitive reads one mesh primitive's vertex attributes and
// indices into new arena buffers and returns the resulting model handle.
func loadGLTFPrimitive(a *arena.Arena, doc *gltf.Document, prim gltf.Primitive) (arena.Handle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return arena.Invalid, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return arena.Invalid, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	vb := a.AllocVB()
	for i, p := range positions {
		v := arena.Vertex{
			Position: hmath.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])),
			Normal:   hmath.NewVec3(0, 1, 0),
			Color:    hmath.ColorWhite,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = hmath.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			v.UV = hmath.NewVec2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		a.AddVertex(vb, v)
	}

	ib := a.AllocIB()
	var indexCount uint32
	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return arena.Invalid, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range indices {
			a.AddIndex(ib, idx)
		}
		indexCount = uint32(len(indices))
	} else {
		for i := range positions {
			a.AddIndex(ib, uint32(i))
		}
		indexCount = uint32(len(positions))
	}

	return a.AllocModel(arena.Model{VB: vb, IB: ib, IBStart: 0, IBEnd: indexCount}), nil
}

func decodeImageBytesToArena(a *arena.Arena, name string, data []byte) (arena.Handle, error) {
	width, height, pixels, err := decodeTextureBytes(data)
	if err != nil {
		return arena.Invalid, err
	}
	return a.AddTexture(arena.Texture{Name: name, Width: width, Height: height, Pixels: pixels}), nil
}

// PlacementsToInstances builds a geom.ModelInstance for every placement,
// resolving each model's triangles against a's buffers. Placements whose
// instance fails to build (degenerate or empty geometry) are skipped.
func PlacementsToInstances(a *arena.Arena, placements []GLTFPlacement) []*geom.ModelInstance {
	instances := make([]*geom.ModelInstance, 0, len(placements))
	for _, p := range placements {
		inst, ok := geom.BuildInstance(a, p.Model, p.Transform, p.Material, nil)
		if !ok {
			continue
		}
		instances = append(instances, inst)
	}
	return instances
}
