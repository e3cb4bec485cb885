package geom

import (
	"hybridrt/arena"
	hmath "hybridrt/math"
)

// ModelInstance places a Model in the world. It owns a triangle cache
// materialized in world space from the model's vertex/index buffers and
// the instance's model matrix, an octree over that cache, and the default
// material used by triangles whose source mesh had no per-triangle
// material assigned.
type ModelInstance struct {
	Model       arena.Handle
	ModelMatrix hmath.Mat4
	DefaultMat  arena.Handle
	TriCache    []Triangle
	Octree      *Octree
	AABB        hmath.AABB
}

// BuildInstance compiles a ModelInstance's triangle cache and octree from
// the arena's vertex/index data, the model's index range, and the given
// world transform. materialOf assigns a material handle per triangle
// (index into the model's triangle list); returning arena.Invalid falls
// back to defaultMat.
func BuildInstance(a *arena.Arena, modelHandle arena.Handle, modelMatrix hmath.Mat4, defaultMat arena.Handle, materialOf func(triIx int) arena.Handle) (*ModelInstance, bool) {
	model, ok := a.GetModel(modelHandle)
	if !ok {
		return nil, false
	}

	triCount := int(model.IBEnd-model.IBStart) / 3
	tris := make([]Triangle, 0, triCount)
	box := hmath.InvertedAABB()

	for i := 0; i < triCount; i++ {
		base := model.IBStart + uint32(i*3)
		i0, ok0 := a.GetIndex(model.IB, base)
		i1, ok1 := a.GetIndex(model.IB, base+1)
		i2, ok2 := a.GetIndex(model.IB, base+2)
		if !ok0 || !ok1 || !ok2 {
			return nil, false
		}

		v0, okv0 := a.GetVertex(model.VB, i0)
		v1, okv1 := a.GetVertex(model.VB, i1)
		v2, okv2 := a.GetVertex(model.VB, i2)
		if !okv0 || !okv1 || !okv2 {
			return nil, false
		}

		v0 = transformVertex(v0, modelMatrix)
		v1 = transformVertex(v1, modelMatrix)
		v2 = transformVertex(v2, modelMatrix)

		mat := arena.Invalid
		if materialOf != nil {
			mat = materialOf(i)
		}
		if !mat.Valid() {
			mat = defaultMat
		}

		tri := NewTriangle(v0, v1, v2, mat)
		tris = append(tris, tri)
		box = box.Union(tri.AABB())
	}

	octree := BuildOctree(tris, DefaultLeafMax, DefaultMaxDepth)

	return &ModelInstance{
		Model:       modelHandle,
		ModelMatrix: modelMatrix,
		DefaultMat:  defaultMat,
		TriCache:    tris,
		Octree:      octree,
		AABB:        box,
	}, true
}

func transformVertex(v arena.Vertex, m hmath.Mat4) arena.Vertex {
	normalMat := m.Inverse().Transpose()
	return arena.Vertex{
		Position: m.MulVec3(v.Position),
		Normal:   normalMat.MulDir(v.Normal).Normalize(),
		UV:       v.UV,
		Color:    v.Color,
	}
}
