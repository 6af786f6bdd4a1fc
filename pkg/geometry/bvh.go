package geometry

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/log"
	"github.com/df07/go-volpath/pkg/material"
)

var logger = log.New("bvh")

// BVHNode is either a leaf owning one primitive or an interior node owning two
// children. The box of an interior node is the union of its children's boxes.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitive   Primitive // Set on leaves only
}

// IsLeaf reports whether the node holds a primitive
func (n *BVHNode) IsLeaf() bool {
	return n.Primitive != nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	Root *BVHNode
}

// bvhItem pairs a primitive with its precomputed bounds
type bvhItem struct {
	primitive Primitive
	box       core.AABB
}

// NewBVH constructs a BVH by recursive median splits along randomly chosen axes.
// It fails if any primitive has no bounding box.
func NewBVH(primitives []Primitive, random *rand.Rand) (*BVH, error) {
	if len(primitives) == 0 {
		return &BVH{Root: nil}, nil
	}

	// Work on a copy so the caller's slice order is untouched
	items := make([]bvhItem, len(primitives))
	for i, p := range primitives {
		box, ok := p.BoundingBox()
		if !ok {
			err := fmt.Errorf("geometry: building BVH: primitive %d: %w", i, ErrNoBoundingBox)
			logger.Error(err)
			return nil, err
		}
		items[i] = bvhItem{primitive: p, box: box}
	}

	bvh := &BVH{Root: buildBVH(items, random)}

	stats := bvh.getStats()
	logger.Debugf("built BVH: %d primitives, %d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		stats.totalPrimitives, stats.totalNodes, stats.leafNodes, stats.maxDepth, stats.avgDepth)

	return bvh, nil
}

// NewShapeBVH is a convenience wrapper for building over shapes
func NewShapeBVH(shapes []Shape, random *rand.Rand) (*BVH, error) {
	primitives := make([]Primitive, len(shapes))
	for i, s := range shapes {
		primitives[i] = s
	}
	return NewBVH(primitives, random)
}

// buildBVH recursively partitions items
func buildBVH(items []bvhItem, random *rand.Rand) *BVHNode {
	if len(items) == 1 {
		return &BVHNode{BoundingBox: items[0].box, Primitive: items[0].primitive}
	}

	axis := random.Intn(3)
	less := func(i, j int) bool {
		return items[i].box.Min.Get(axis) < items[j].box.Min.Get(axis)
	}

	if len(items) == 2 {
		if less(1, 0) {
			items[0], items[1] = items[1], items[0]
		}
	} else {
		sort.Slice(items, less)
	}

	mid := len(items) / 2
	left := buildBVH(items[:mid], random)
	right := buildBVH(items[mid:], random)

	return &BVHNode{
		BoundingBox: left.BoundingBox.Union(right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// Hit finds the closest primitive hit, shrinking ray.TMax as closer hits are found
func (bvh *BVH) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.hitNode(bvh.Root, ray, si)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray *core.Ray, si *material.SurfaceInteraction) bool {
	// First check if ray hits the bounding box
	if !node.BoundingBox.Hit(*ray, 0, ray.TMax) {
		return false
	}

	if node.IsLeaf() {
		return node.Primitive.Hit(ray, si)
	}

	// A hit on the left shortens ray.TMax, pruning the right subtree
	hitLeft := bvh.hitNode(node.Left, ray, si)
	hitRight := bvh.hitNode(node.Right, ray, si)
	return hitLeft || hitRight
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	if bvh.Root == nil {
		return core.AABB{}, false
	}
	return bvh.Root.BoundingBox, true
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	if bvh.Root == nil {
		return bvhStats{}
	}

	stats := bvhStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.leafNodes > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafNodes)
	}

	return stats
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes      int
	leafNodes       int
	maxDepth        int
	avgDepth        float64
	totalPrimitives int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++

	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.IsLeaf() {
		stats.leafNodes++
		stats.totalPrimitives++
		stats.avgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
