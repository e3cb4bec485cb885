package arena

import (
	"testing"

	hmath "hybridrt/math"
)

func TestVertexBufferAppendOnly(t *testing.T) {
	a := New()
	vb := a.AllocVB()

	a.AddVertex(vb, Vertex{Position: hmath.NewVec3(0, 0, 0)})
	a.AddVertex(vb, Vertex{Position: hmath.NewVec3(1, 0, 0)})

	if got := a.VBLen(vb); got != 2 {
		t.Fatalf("VBLen: expected 2, got %d", got)
	}

	v, ok := a.GetVertex(vb, 1)
	if !ok {
		t.Fatal("GetVertex: expected ok=true")
	}
	if v.Position != hmath.NewVec3(1, 0, 0) {
		t.Errorf("GetVertex: expected (1,0,0), got %v", v.Position)
	}
}

func TestGetVertexOutOfRange(t *testing.T) {
	a := New()
	vb := a.AllocVB()
	a.AddVertex(vb, Vertex{})

	if _, ok := a.GetVertex(vb, 5); ok {
		t.Error("GetVertex: expected ok=false for out-of-range index")
	}
	if _, ok := a.GetVertex(Handle(99), 0); ok {
		t.Error("GetVertex: expected ok=false for out-of-range buffer handle")
	}
}

func TestInvalidHandle(t *testing.T) {
	if Invalid.Valid() {
		t.Error("Invalid handle should report Valid() == false")
	}
	h := Handle(0)
	if !h.Valid() {
		t.Error("handle 0 should report Valid() == true")
	}
}

func TestInternMaterialDeduplicates(t *testing.T) {
	a := New()
	red := DefaultMaterial()
	red.Name = "red"

	h1 := a.InternMaterial(red)
	h2 := a.InternMaterial(red)

	if h1 != h2 {
		t.Errorf("InternMaterial: expected same handle for repeated name, got %v and %v", h1, h2)
	}

	blue := DefaultMaterial()
	blue.Name = "blue"
	h3 := a.InternMaterial(blue)
	if h3 == h1 {
		t.Error("InternMaterial: expected distinct handle for distinct name")
	}
}

func TestGetMaterialMissOnInvalid(t *testing.T) {
	a := New()
	if _, ok := a.GetMaterial(Invalid); ok {
		t.Error("GetMaterial: expected ok=false for Invalid handle")
	}
}

func TestTextureSampleNearestWrap(t *testing.T) {
	tex := Texture{
		Width:  2,
		Height: 1,
		Pixels: []hmath.Color{hmath.ColorBlack, hmath.ColorWhite},
	}

	c := tex.Sample(hmath.NewVec2(1.25, 0.5)) // wraps to u=0.25 -> pixel 0
	if c != hmath.ColorBlack {
		t.Errorf("Sample: expected black at wrapped u=0.25, got %v", c)
	}

	c = tex.Sample(hmath.NewVec2(0.75, 0.5))
	if c != hmath.ColorWhite {
		t.Errorf("Sample: expected white at u=0.75, got %v", c)
	}
}
