package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	dot := v1.Dot(v2)
	expectedDot := 32.0 // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Front x Up = Right in this +Z-up right-handed basis.
	cross := Vec3Front.Cross(Vec3Up)
	if cross != Vec3Right {
		t.Errorf("Cross: expected %v, got %v", Vec3Right, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	length := normalized.Length()
	if math.Abs(length-1) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)
	result := Reflect(incoming, normal)
	expected := NewVec3(1, 1, 0)
	if result != expected {
		t.Errorf("Reflect: expected %v, got %v", expected, result)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		if m[i][i] != 1 {
			t.Errorf("Identity: expected diagonal to be 1, got %v", m[i][i])
		}
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && m[i][j] != 0 {
				t.Errorf("Identity: expected non-diagonal to be 0, got %v", m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	result := m1.Mul(m2)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := 0.0
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}

	point := NewVec4(0, 0, 0, 1)
	result := point.MulMat(m)

	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4Translation(NewVec3(2, -3, 5)).Mul(Mat4Scale(NewVec3(2, 4, 0.5)))
	inv := m.Inverse()
	identity := m.Mul(inv)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := 0.0
			if i == j {
				expected = 1
			}
			if math.Abs(identity[i][j]-expected) > 1e-9 {
				t.Errorf("Inverse: m*inv(m)[%d][%d] expected %v, got %v", i, j, expected, identity[i][j])
			}
		}
	}
}

func TestMat4Perspective(t *testing.T) {
	fov := math.Pi / 4
	aspect := 16.0 / 9.0
	near := 0.1
	far := 100.0

	m := Mat4Perspective(fov, aspect, near, far)

	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}

	// The near plane should map to NDC z = -1.
	nearPoint := NewVec4(0, 0, -near, 1)
	ndc := m.MulVec(nearPoint).ToVec3DivW()
	if math.Abs(ndc.Z+1) > 1e-6 {
		t.Errorf("Perspective: expected near plane at NDC z=-1, got %v", ndc.Z)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	up := Vec3Front

	m := Mat4LookAt(eye, target, up)

	point := eye.ToVec4(1)
	result := m.MulVec(point)

	tolerance := 0.001
	if math.Abs(result.X) > tolerance ||
		math.Abs(result.Y) > tolerance ||
		math.Abs(result.Z) > tolerance {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func TestMat4TRSKeepsTranslationInWorldUnits(t *testing.T) {
	m := Mat4TRS(NewVec3(10, 0, 0), Vec3Zero, NewVec3(2, 2, 2))

	origin := m.MulVec3(Vec3Zero)
	if origin.Distance(NewVec3(10, 0, 0)) > 1e-5 {
		t.Errorf("expected the local origin at world (10,0,0), got %v", origin)
	}

	// A local unit offset scales to 2 before translating.
	unit := m.MulVec3(NewVec3(1, 0, 0))
	if unit.Distance(NewVec3(12, 0, 0)) > 1e-5 {
		t.Errorf("expected local (1,0,0) at world (12,0,0), got %v", unit)
	}
}

func TestBarycentricRoundTrip(t *testing.T) {
	a := NewVec3(-2, -1, 0)
	bb := NewVec3(3, -1, 1)
	c := NewVec3(0, 2, -1)

	points := []Vec3{
		a.Mul(1.0 / 3.0).Add(bb.Mul(1.0 / 3.0)).Add(c.Mul(1.0 / 3.0)),
		a.Mul(0.5).Add(bb.Mul(0.25)).Add(c.Mul(0.25)),
		a.Mul(0.1).Add(bb.Mul(0.7)).Add(c.Mul(0.2)),
	}

	for _, p := range points {
		bary := ToBarycentric(p, a, bb, c)
		if math.Abs(bary.X+bary.Y+bary.Z-1) > 1e-9 {
			t.Errorf("barycentric weights for %v sum to %v, want 1", p, bary.X+bary.Y+bary.Z)
		}
		if !InsideBarycentric(bary, 1e-9) {
			t.Errorf("expected interior point %v to classify inside, got %v", p, bary)
		}
		back := FromBarycentric(bary, a, bb, c)
		if back.Distance(p) > 1e-9 {
			t.Errorf("round trip moved %v to %v", p, back)
		}
	}
}

func TestSRGBRoundTripWithinOneLSB(t *testing.T) {
	for i := 0; i <= 255; i++ {
		c := float64(i) / 255.0
		encoded := LinearToSRGB(SRGBToLinear(c))
		if math.Abs(encoded-c)*255 > 1 {
			t.Errorf("sRGB round trip of %d/255 drifted to %v", i, encoded*255)
		}
	}
}

func TestReflectInvolution(t *testing.T) {
	n := NewVec3(0.3, -0.4, 0.8).Normalize()
	v := NewVec3(1, 2, -0.5)
	back := Reflect(Reflect(v, n), n)
	if back.Distance(v) > 1e-12 {
		t.Errorf("reflecting twice about %v moved %v to %v", n, v, back)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
