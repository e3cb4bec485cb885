package geom

import hmath "hybridrt/math"

const (
	DefaultLeafMax  = 8
	DefaultMaxDepth = 6
)

type octreeNode struct {
	box      hmath.AABB
	children [8]*octreeNode // nil if leaf
	tris     []uint32
}

func (n *octreeNode) isLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// Octree indexes a single ModelInstance's world-space triangle cache by
// centroid. It stores triangle indices, not triangle data, so its lifetime
// is scoped entirely to the owning instance.
type Octree struct {
	root     *octreeNode
	leafMax  int
	maxDepth int
}

// BuildOctree constructs the tree over tris (indices into a triangle cache,
// addressed later via Query). leafMax and maxDepth of 0 fall back to the
// recommended defaults (8 and 6).
func BuildOctree(tris []Triangle, leafMax, maxDepth int) *Octree {
	if leafMax <= 0 {
		leafMax = DefaultLeafMax
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	root := hmath.InvertedAABB()
	indices := make([]uint32, len(tris))
	for i, t := range tris {
		root = root.Union(t.AABB())
		indices[i] = uint32(i)
	}

	o := &Octree{leafMax: leafMax, maxDepth: maxDepth}
	o.root = &octreeNode{box: root, tris: indices}
	o.subdivide(o.root, tris, 0)
	return o
}

func (o *Octree) GetAABB() hmath.AABB {
	return o.root.box
}

// Walk visits every node's box, root first, for debug overlays (raster's
// DrawOctree is the only caller).
func (o *Octree) Walk(fn func(box hmath.AABB)) {
	if o.root == nil {
		return
	}
	walkNode(o.root, fn)
}

func walkNode(n *octreeNode, fn func(box hmath.AABB)) {
	fn(n.box)
	for _, c := range n.children {
		if c != nil {
			walkNode(c, fn)
		}
	}
}

func (o *Octree) subdivide(n *octreeNode, tris []Triangle, depth int) {
	if len(n.tris) <= o.leafMax || depth >= o.maxDepth {
		return
	}

	center := n.box.Center()
	childBoxes := octantBoxes(n.box, center)

	childTris := [8][]uint32{}
	for _, ti := range n.tris {
		box := tris[ti].AABB()
		for c := 0; c < 8; c++ {
			if aabbOverlapsOctant(box, childBoxes[c], c) {
				childTris[c] = append(childTris[c], ti)
			}
		}
	}

	for c := 0; c < 8; c++ {
		if len(childTris[c]) == 0 {
			continue
		}
		child := &octreeNode{box: childBoxes[c], tris: childTris[c]}
		n.children[c] = child
		o.subdivide(child, tris, depth+1)
	}
	n.tris = nil // authoritative storage moves to the leaves
}

// octantBoxes splits box into its 8 equal octants around center, in a fixed
// (x, y, z) bit order: bit0=x half, bit1=y half, bit2=z half.
func octantBoxes(box hmath.AABB, center hmath.Vec3) [8]hmath.AABB {
	var out [8]hmath.AABB
	for c := 0; c < 8; c++ {
		lo := box.Min
		hi := box.Max
		if c&1 == 0 {
			hi.X = center.X
		} else {
			lo.X = center.X
		}
		if c&2 == 0 {
			hi.Y = center.Y
		} else {
			lo.Y = center.Y
		}
		if c&4 == 0 {
			hi.Z = center.Z
		} else {
			lo.Z = center.Z
		}
		out[c] = hmath.AABB{Min: lo, Max: hi}
	}
	return out
}

// aabbOverlapsOctant tests whether box overlaps octant c (bit order as in
// octantBoxes), assigning exactly-on-the-split-plane triangles to the
// lower-coordinate child: on each axis the low octant's upper bound is
// inclusive, while a high octant only takes a box that reaches strictly
// past the split plane.
func aabbOverlapsOctant(box, octant hmath.AABB, c int) bool {
	reaches := func(bMax, oMin float64, high bool) bool {
		if high {
			return bMax > oMin
		}
		return bMax >= oMin
	}
	return box.Min.X <= octant.Max.X && reaches(box.Max.X, octant.Min.X, c&1 != 0) &&
		box.Min.Y <= octant.Max.Y && reaches(box.Max.Y, octant.Min.Y, c&2 != 0) &&
		box.Min.Z <= octant.Max.Z && reaches(box.Max.Z, octant.Min.Z, c&4 != 0)
}

// Query returns an unordered, possibly-duplicated set of candidate triangle
// indices whose leaf AABBs the ray intersects. The caller de-dupes or
// simply tolerates re-testing the same triangle, since RayTriangleIntersect
// is idempotent.
func (o *Octree) Query(r Ray) []uint32 {
	if o.root == nil {
		return nil
	}
	var out []uint32
	o.query(o.root, r, &out)
	return out
}

func (o *Octree) query(n *octreeNode, r Ray, out *[]uint32) {
	if hit, _, _ := n.box.Intersect(r.Origin, r.Dir, r.TMax); !hit {
		return
	}
	if n.isLeaf() {
		*out = append(*out, n.tris...)
		return
	}
	for _, c := range n.children {
		if c != nil {
			o.query(c, r, out)
		}
	}
}
