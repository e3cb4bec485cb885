package io

import (
	"math"
	"testing"

	"hybridrt/arena"
	hmath "hybridrt/math"
)

func TestQuatToMat4IdentityIsIdentity(t *testing.T) {
	m := quatToMat4(0, 0, 0, 1)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(m[i][j]-want) > 1e-9 {
				t.Errorf("expected identity at [%d][%d], got %v", i, j, m[i][j])
			}
		}
	}
}

func TestQuatToMat4RotatesNinetyDegreesAboutZ(t *testing.T) {
	half := math.Pi / 4 // 90 degree rotation -> half-angle in the quaternion
	q := [4]float64{0, 0, math.Sin(half), math.Cos(half)}
	m := quatToMat4(q[0], q[1], q[2], q[3])

	rotated := m.MulVec3(hmath.NewVec3(1, 0, 0))
	if math.Abs(rotated.X) > 1e-6 || math.Abs(rotated.Y-1) > 1e-6 {
		t.Errorf("expected (1,0,0) rotated 90deg about Z to land near (0,1,0), got %v", rotated)
	}
}

func TestPlacementsToInstancesBuildsOneInstancePerPlacement(t *testing.T) {
	a := arena.New()
	vb := a.AllocVB()
	a.AddVertex(vb, arena.Vertex{Position: hmath.NewVec3(-1, 0, -1), Color: hmath.ColorWhite})
	a.AddVertex(vb, arena.Vertex{Position: hmath.NewVec3(1, 0, -1), Color: hmath.ColorWhite})
	a.AddVertex(vb, arena.Vertex{Position: hmath.NewVec3(0, 0, 1), Color: hmath.ColorWhite})
	ib := a.AllocIB()
	a.AddIndex(ib, 0)
	a.AddIndex(ib, 1)
	a.AddIndex(ib, 2)
	model := a.AllocModel(arena.Model{VB: vb, IB: ib, IBStart: 0, IBEnd: 3})
	mat := a.AddMaterial(arena.DefaultMaterial())

	placements := []GLTFPlacement{
		{Name: "a", Model: model, Material: mat, Transform: hmath.Mat4Identity()},
		{Name: "b", Model: model, Material: mat, Transform: hmath.Mat4Translation(hmath.NewVec3(5, 0, 0))},
	}

	instances := PlacementsToInstances(a, placements)
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
}
