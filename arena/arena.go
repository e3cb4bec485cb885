// Package arena owns the append-only resource buffers (vertices, indices,
// models, materials, textures) behind dense handles, mirroring the way the
// rest of the pipeline treats geometry and materials as process-wide,
// read-only state once a scene is built.
package arena

import (
	hmath "hybridrt/math"

	"golang.org/x/exp/slices"
)

// Handle is a dense index into one of the arena's buffers. Invalid marks an
// absent reference (no material assigned, no texture set) without resorting
// to a pointer or an extra bool field.
type Handle uint32

const Invalid Handle = ^Handle(0)

func (h Handle) Valid() bool {
	return h != Invalid
}

// Vertex is immutable after mesh load: position and normal in model space,
// uv in [0,1]^2 (before wrap/clamp), and a per-vertex RGBA color used when a
// triangle carries no texture.
type Vertex struct {
	Position hmath.Vec3
	Normal   hmath.Vec3
	UV       hmath.Vec2
	Color    hmath.Color
}

// Material holds ambient/diffuse/specular/emissive colors, specular
// exponent, and mirror reflectivity. Texture is Invalid when the material
// has no albedo texture, in which case Textured must be false.
type Material struct {
	Name     string
	Ka       hmath.Color
	Kd       hmath.Color
	Ks       hmath.Color
	Ke       hmath.Color
	Ns       float64
	Tr       float64
	Texture  Handle
	Textured bool
}

// DefaultMaterial is the fallback assigned to a ModelInstance whose source
// mesh carried no per-triangle material.
func DefaultMaterial() Material {
	return Material{
		Name:    "default",
		Ka:      hmath.NewColor(0.1, 0.1, 0.1, 1),
		Kd:      hmath.NewColor(0.8, 0.8, 0.8, 1),
		Ks:      hmath.NewColor(0.3, 0.3, 0.3, 1),
		Ke:      hmath.NewColor(0, 0, 0, 1),
		Ns:      32,
		Tr:      0,
		Texture: Invalid,
	}
}

// Model is a shared, immutable range [IBStart, IBEnd) into an index buffer
// plus a reference to the vertex buffer the indices address.
type Model struct {
	VB      Handle
	IB      Handle
	IBStart uint32
	IBEnd   uint32
}

// Texture is a decoded image sampled with nearest-texel lookup, UV wrapped
// into [0,1) before indexing.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []hmath.Color // row-major, length Width*Height
}

func (t *Texture) Sample(uv hmath.Vec2) hmath.Color {
	if t.Width == 0 || t.Height == 0 {
		return hmath.ColorWhite
	}
	u := wrapUnit(uv.X)
	v := wrapUnit(uv.Y)
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return t.Pixels[y*t.Width+x]
}

func wrapUnit(x float64) float64 {
	x -= float64(int(x))
	if x < 0 {
		x += 1
	}
	return x
}

// Arena owns every append-only resource buffer for a single render. It is
// built once during scene load and treated as read-only during rendering.
type Arena struct {
	vertexBuffers [][]Vertex
	indexBuffers  [][]uint32
	models        []Model
	materials     []Material
	textures      []Texture
}

func New() *Arena {
	return &Arena{}
}

func (a *Arena) AllocVB() Handle {
	a.vertexBuffers = append(a.vertexBuffers, nil)
	return Handle(len(a.vertexBuffers) - 1)
}

func (a *Arena) AllocIB() Handle {
	a.indexBuffers = append(a.indexBuffers, nil)
	return Handle(len(a.indexBuffers) - 1)
}

func (a *Arena) AllocModel(m Model) Handle {
	a.models = append(a.models, m)
	return Handle(len(a.models) - 1)
}

func (a *Arena) AddMaterial(m Material) Handle {
	a.materials = append(a.materials, m)
	return Handle(len(a.materials) - 1)
}

func (a *Arena) AddTexture(t Texture) Handle {
	a.textures = append(a.textures, t)
	return Handle(len(a.textures) - 1)
}

func (a *Arena) AddVertex(vb Handle, v Vertex) {
	a.vertexBuffers[vb] = append(a.vertexBuffers[vb], v)
}

func (a *Arena) AddIndex(ib Handle, index uint32) {
	a.indexBuffers[ib] = append(a.indexBuffers[ib], index)
}

func (a *Arena) VBLen(vb Handle) uint32 {
	if int(vb) >= len(a.vertexBuffers) {
		return 0
	}
	return uint32(len(a.vertexBuffers[vb]))
}

func (a *Arena) IBLen(ib Handle) uint32 {
	if int(ib) >= len(a.indexBuffers) {
		return 0
	}
	return uint32(len(a.indexBuffers[ib]))
}

func (a *Arena) GetVertex(vb Handle, i uint32) (Vertex, bool) {
	if int(vb) >= len(a.vertexBuffers) {
		return Vertex{}, false
	}
	buf := a.vertexBuffers[vb]
	if int(i) >= len(buf) {
		return Vertex{}, false
	}
	return buf[i], true
}

func (a *Arena) GetIndex(ib Handle, i uint32) (uint32, bool) {
	if int(ib) >= len(a.indexBuffers) {
		return 0, false
	}
	buf := a.indexBuffers[ib]
	if int(i) >= len(buf) {
		return 0, false
	}
	return buf[i], true
}

func (a *Arena) GetModel(h Handle) (*Model, bool) {
	if int(h) >= len(a.models) {
		return nil, false
	}
	return &a.models[h], true
}

func (a *Arena) GetMaterial(h Handle) (*Material, bool) {
	if !h.Valid() || int(h) >= len(a.materials) {
		return nil, false
	}
	return &a.materials[h], true
}

func (a *Arena) GetTexture(h Handle) (*Texture, bool) {
	if !h.Valid() || int(h) >= len(a.textures) {
		return nil, false
	}
	return &a.textures[h], true
}

// InternMaterial returns the handle of an existing material with the same
// name, or adds m and returns its new handle. Used when loading MTL files
// that redeclare the same material across multiple meshes. Materials are
// never reordered (handles double as append position), so lookup is a
// linear scan rather than a sorted search.
func (a *Arena) InternMaterial(m Material) Handle {
	i := slices.IndexFunc(a.materials, func(existing Material) bool {
		return existing.Name == m.Name
	})
	if i >= 0 {
		return Handle(i)
	}
	return a.AddMaterial(m)
}

// MaterialNames returns the names of every material in the arena, sorted,
// used by the scene-script loader to report unresolved references.
func (a *Arena) MaterialNames() []string {
	names := make([]string, len(a.materials))
	for i, m := range a.materials {
		names[i] = m.Name
	}
	slices.Sort(names)
	return names
}
