package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

// mdlMagic and mdlVersion identify the custom binary mesh format. The
// header lets a reader fail fast on a foreign or future file instead of
// misinterpreting byte order; every field after it is little-endian with
// a fixed width.
var mdlMagic = [4]byte{'R', 'T', 'M', 'D'}

const mdlVersion uint32 = 1

// SaveModelBinary writes verts, indices and mat to path in the "mdl"
// layout: magic, version, then
// counts followed by arrays of positions, normals, uvs, vertex colors,
// indices, and a single material record, all little-endian.
func SaveModelBinary(path string, verts []arena.Vertex, indices []uint32, mat arena.Material) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mdl file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(mdlMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, mdlVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(verts))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(indices))); err != nil {
		return err
	}

	for _, v := range verts {
		if err := writeVec3(w, v.Position); err != nil {
			return err
		}
	}
	for _, v := range verts {
		if err := writeVec3(w, v.Normal); err != nil {
			return err
		}
	}
	for _, v := range verts {
		if err := writeVec2(w, v.UV); err != nil {
			return err
		}
	}
	for _, v := range verts {
		if err := writeColor(w, v.Color); err != nil {
			return err
		}
	}
	for _, idx := range indices {
		if err := binary.Write(w, binary.LittleEndian, idx); err != nil {
			return err
		}
	}
	if err := writeMaterial(w, mat); err != nil {
		return err
	}

	return w.Flush()
}

// LoadModelBinary reads the "mdl" format produced by SaveModelBinary back
// into a, returning the model and material handles.
func LoadModelBinary(a *arena.Arena, path string) (model, material arena.Handle, err error) {
	f, err := os.Open(path)
	if err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("open mdl file %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl magic %q: %w", path, err)
	}
	if magic != mdlMagic {
		return arena.Invalid, arena.Invalid, fmt.Errorf("mdl file %q: bad magic %q, expected %q", path, magic, mdlMagic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl version %q: %w", path, err)
	}
	if version != mdlVersion {
		return arena.Invalid, arena.Invalid, fmt.Errorf("mdl file %q: unsupported version %d", path, version)
	}

	var vertCount, indexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertCount); err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl vertex count %q: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &indexCount); err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl index count %q: %w", path, err)
	}

	positions := make([]hmath.Vec3, vertCount)
	for i := range positions {
		if positions[i], err = readVec3(r); err != nil {
			return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl position %d in %q: %w", i, path, err)
		}
	}
	normals := make([]hmath.Vec3, vertCount)
	for i := range normals {
		if normals[i], err = readVec3(r); err != nil {
			return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl normal %d in %q: %w", i, path, err)
		}
	}
	uvs := make([]hmath.Vec2, vertCount)
	for i := range uvs {
		if uvs[i], err = readVec2(r); err != nil {
			return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl uv %d in %q: %w", i, path, err)
		}
	}
	colors := make([]hmath.Color, vertCount)
	for i := range colors {
		if colors[i], err = readColor(r); err != nil {
			return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl color %d in %q: %w", i, path, err)
		}
	}
	indices := make([]uint32, indexCount)
	for i := range indices {
		if err := binary.Read(r, binary.LittleEndian, &indices[i]); err != nil {
			return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl index %d in %q: %w", i, path, err)
		}
	}
	mat, err := readMaterial(r)
	if err != nil {
		return arena.Invalid, arena.Invalid, fmt.Errorf("read mdl material in %q: %w", path, err)
	}

	vb := a.AllocVB()
	for i := range positions {
		a.AddVertex(vb, arena.Vertex{Position: positions[i], Normal: normals[i], UV: uvs[i], Color: colors[i]})
	}
	ib := a.AllocIB()
	for _, idx := range indices {
		a.AddIndex(ib, idx)
	}
	model = a.AllocModel(arena.Model{VB: vb, IB: ib, IBStart: 0, IBEnd: uint32(len(indices))})
	material = a.AddMaterial(mat)
	return model, material, nil
}

func writeVec3(w io.Writer, v hmath.Vec3) error {
	return binary.Write(w, binary.LittleEndian, [3]float64{v.X, v.Y, v.Z})
}

func writeVec2(w io.Writer, v hmath.Vec2) error {
	return binary.Write(w, binary.LittleEndian, [2]float64{v.X, v.Y})
}

func writeColor(w io.Writer, c hmath.Color) error {
	return binary.Write(w, binary.LittleEndian, [4]float64{c.R, c.G, c.B, c.A})
}

func writeMaterial(w io.Writer, m arena.Material) error {
	name := make([]byte, 64)
	copy(name, m.Name)
	if _, err := w.Write(name); err != nil {
		return err
	}
	if err := writeColor(w, m.Ka); err != nil {
		return err
	}
	if err := writeColor(w, m.Kd); err != nil {
		return err
	}
	if err := writeColor(w, m.Ks); err != nil {
		return err
	}
	if err := writeColor(w, m.Ke); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, [2]float64{m.Ns, m.Tr})
}

func readVec3(r io.Reader) (hmath.Vec3, error) {
	var buf [3]float64
	if err := binary.Read(r, binary.LittleEndian, &buf); err != nil {
		return hmath.Vec3{}, err
	}
	return hmath.NewVec3(buf[0], buf[1], buf[2]), nil
}

func readVec2(r io.Reader) (hmath.Vec2, error) {
	var buf [2]float64
	if err := binary.Read(r, binary.LittleEndian, &buf); err != nil {
		return hmath.Vec2{}, err
	}
	return hmath.NewVec2(buf[0], buf[1]), nil
}

func readColor(r io.Reader) (hmath.Color, error) {
	var buf [4]float64
	if err := binary.Read(r, binary.LittleEndian, &buf); err != nil {
		return hmath.Color{}, err
	}
	return hmath.NewColor(buf[0], buf[1], buf[2], buf[3]), nil
}

func readMaterial(r io.Reader) (arena.Material, error) {
	nameBuf := make([]byte, 64)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return arena.Material{}, err
	}
	name := string(nameBuf)
	if idx := indexOfNull(name); idx >= 0 {
		name = name[:idx]
	}

	m := arena.Material{Name: name, Texture: arena.Invalid}
	var err error
	if m.Ka, err = readColor(r); err != nil {
		return arena.Material{}, err
	}
	if m.Kd, err = readColor(r); err != nil {
		return arena.Material{}, err
	}
	if m.Ks, err = readColor(r); err != nil {
		return arena.Material{}, err
	}
	if m.Ke, err = readColor(r); err != nil {
		return arena.Material{}, err
	}
	var rest [2]float64
	if err := binary.Read(r, binary.LittleEndian, &rest); err != nil {
		return arena.Material{}, err
	}
	m.Ns, m.Tr = rest[0], rest[1]
	return m, nil
}

func indexOfNull(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return i
		}
	}
	return -1
}
