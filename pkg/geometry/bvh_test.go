package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// MockPrimitive for testing
type MockPrimitive struct {
	box   core.AABB
	bound bool
}

func (m MockPrimitive) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool { return false }

func (m MockPrimitive) BoundingBox() (core.AABB, bool) { return m.box, m.bound }

func randomSpheres(random *rand.Rand, n int) []Primitive {
	primitives := make([]Primitive, n)
	for i := range primitives {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		primitives[i] = NewSphere(center, 0.2+random.Float64(), nil)
	}
	return primitives
}

// checkBounds verifies every node box is the union of its children, or the primitive box at leaves
func checkBounds(t *testing.T, node *BVHNode) {
	t.Helper()
	if node.IsLeaf() {
		box, _ := node.Primitive.BoundingBox()
		if node.BoundingBox != box {
			t.Fatalf("Leaf box %v differs from primitive box %v", node.BoundingBox, box)
		}
		if node.Left != nil || node.Right != nil {
			t.Fatal("Leaf must not have children")
		}
		return
	}
	if node.Left == nil || node.Right == nil {
		t.Fatal("Interior node must own exactly two children")
	}
	union := node.Left.BoundingBox.Union(node.Right.BoundingBox)
	if node.BoundingBox != union {
		t.Fatalf("Node box %v differs from union of children %v", node.BoundingBox, union)
	}
	checkBounds(t, node.Left)
	checkBounds(t, node.Right)
}

func TestBVH_BoundInvariant(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 64, 257} {
		random := rand.New(rand.NewSource(int64(n)))
		bvh, err := NewBVH(randomSpheres(random, n), random)
		if err != nil {
			t.Fatalf("n=%d: unexpected error %v", n, err)
		}
		checkBounds(t, bvh.Root)

		stats := bvh.getStats()
		if stats.totalPrimitives != n || stats.leafNodes != n {
			t.Errorf("n=%d: expected %d leaves, got %d", n, n, stats.leafNodes)
		}
		if stats.totalNodes != 2*n-1 {
			t.Errorf("n=%d: expected %d nodes in a full binary tree, got %d", n, 2*n-1, stats.totalNodes)
		}
	}
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	primitives := randomSpheres(random, 200)
	bvh, err := NewBVH(primitives, random)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
		direction := core.UniformSampleSphere(core.NewVec2(random.Float64(), random.Float64()))

		bvhRay := core.NewRay(origin, direction)
		var bvhHit material.SurfaceInteraction
		gotHit := bvh.Hit(&bvhRay, &bvhHit)

		bruteRay := core.NewRay(origin, direction)
		var bruteHit material.SurfaceInteraction
		wantHit := false
		for _, p := range primitives {
			if p.Hit(&bruteRay, &bruteHit) {
				wantHit = true
			}
		}

		if gotHit != wantHit {
			t.Fatalf("Ray %d: BVH hit=%v, brute force hit=%v", i, gotHit, wantHit)
		}
		if !gotHit {
			continue
		}
		if math.Abs(bvhHit.T-bruteHit.T) > 1e-9 {
			t.Fatalf("Ray %d: BVH t=%f, brute force t=%f", i, bvhHit.T, bruteHit.T)
		}
		if bvhHit.Point.Subtract(bruteHit.Point).Length() > 1e-9 {
			t.Fatalf("Ray %d: BVH point %v, brute force point %v", i, bvhHit.Point, bruteHit.Point)
		}
		if bvhRay.TMax != bvhHit.T {
			t.Fatalf("Ray %d: TMax %f not shrunk to hit distance %f", i, bvhRay.TMax, bvhHit.T)
		}
	}
}

func TestBVH_MissingBoundingBox(t *testing.T) {
	primitives := []Primitive{
		MockPrimitive{box: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), bound: true},
		MockPrimitive{bound: false},
	}

	bvh, err := NewBVH(primitives, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("Expected error for unbounded primitive")
	}
	if !errors.Is(err, ErrNoBoundingBox) {
		t.Errorf("Expected ErrNoBoundingBox, got %v", err)
	}
	if bvh != nil {
		t.Error("Expected no BVH on failure")
	}
}

func TestBVH_EmptyAndSingle(t *testing.T) {
	bvh, err := NewBVH(nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	var si material.SurfaceInteraction
	if bvh.Hit(&ray, &si) {
		t.Error("Expected no hit for empty BVH")
	}
	if _, ok := bvh.BoundingBox(); ok {
		t.Error("Expected no bounds for empty BVH")
	}

	sphere := NewSphere(core.NewVec3(5, 0, 0), 1, nil)
	bvh, err = NewBVH([]Primitive{sphere}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if !bvh.Root.IsLeaf() {
		t.Error("Expected a single leaf for one primitive")
	}
	if !bvh.Hit(&ray, &si) || math.Abs(si.T-4) > 1e-9 {
		t.Errorf("Expected hit at t=4, got hit t=%f", si.T)
	}
}

func TestBVH_PairOrderedByMin(t *testing.T) {
	far := MockPrimitive{box: core.NewAABB(core.NewVec3(5, 5, 5), core.NewVec3(6, 6, 6)), bound: true}
	near := MockPrimitive{box: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), bound: true}

	// The pair is ordered along whichever axis is drawn; both boxes are ordered the same on every axis
	bvh, err := NewBVH([]Primitive{far, near}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if bvh.Root.Left.Primitive != Primitive(near) {
		t.Error("Expected the box with the smaller minimum on the left")
	}
}

func TestBVH_CallerSliceUntouched(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	primitives := randomSpheres(random, 50)
	original := append([]Primitive(nil), primitives...)

	if _, err := NewBVH(primitives, random); err != nil {
		t.Fatal(err)
	}
	for i := range primitives {
		if primitives[i] != original[i] {
			t.Fatal("NewBVH reordered the caller's slice")
		}
	}
}
