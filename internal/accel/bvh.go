// Package accel implements the mid-split Bounding Volume Hierarchy of
// spec.md §4.3: a single contiguous node array, triangles reordered in
// place during construction, depth-first slab-test traversal. This is
// adapted directly from the teacher's internal/render/raytracing.go BVH
// (arena node slice, -1 child sentinel for leaves, bounds merged from
// children) generalized from per-chunk boxes to per-triangle mid-split with
// destructive in-place partitioning, as the spec requires.
package accel

import (
	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/scene"
)

const leafThreshold = 2

// Node is a single BVH arena entry. For a leaf, First/Count describe a
// contiguous triangle range; for an interior node, Left/Right index into
// Nodes and First/Count are unused.
type Node struct {
	Bounds       geom.AABB
	Left, Right  int
	IsLeaf       bool
	First, Count int
}

// BVH is a binary tree over a triangle slab, built once and traversed many
// times. The triangle slice is exclusively owned by the BVH: construction
// permutes it in place so each leaf can reference a contiguous range
// instead of a per-triangle index list (spec.md §4.3).
type BVH struct {
	Nodes []Node
	Tris  []scene.Triangle
	Root  int
}

// Build constructs a BVH over tris, taking ownership of the slice (it is
// reordered in place). An empty input yields a valid BVH whose single leaf
// has a degenerate, always-missing bounds box (spec.md §7).
func Build(tris []scene.Triangle) *BVH {
	b := &BVH{
		Tris:  tris,
		Nodes: make([]Node, 0, maxNodes(len(tris))),
	}
	if len(tris) == 0 {
		b.Nodes = append(b.Nodes, Node{Bounds: geom.EmptyAABB(), IsLeaf: true})
		b.Root = 0
		return b
	}
	root := b.newLeaf(0, len(tris))
	b.Root = root
	b.split(root)
	return b
}

func maxNodes(n int) int {
	if n == 0 {
		return 1
	}
	return 2*n - 1
}

func (b *BVH) newLeaf(first, count int) int {
	node := Node{First: first, Count: count, IsLeaf: true, Left: -1, Right: -1}
	node.Bounds = b.boundsOf(first, count)
	idx := len(b.Nodes)
	b.Nodes = append(b.Nodes, node)
	return idx
}

func (b *BVH) boundsOf(first, count int) geom.AABB {
	box := geom.EmptyAABB()
	for i := first; i < first+count; i++ {
		box = box.Union(b.Tris[i].Bounds())
	}
	return box
}

// split recursively subdivides the leaf at nodeIdx using mid-split on the
// longest axis, per spec.md §4.3's six-step build algorithm.
func (b *BVH) split(nodeIdx int) {
	node := b.Nodes[nodeIdx]
	if node.Count <= leafThreshold {
		return
	}
	axis := node.Bounds.LargestAxis()
	splitPos := (node.Bounds.Min[axis] + node.Bounds.Max[axis]) / 2

	i, j := node.First, node.First+node.Count-1
	for i <= j {
		if b.Tris[i].Centroid()[axis] < splitPos {
			i++
		} else {
			b.Tris[i], b.Tris[j] = b.Tris[j], b.Tris[i]
			j--
		}
	}
	leftCount := i - node.First
	if leftCount == 0 || leftCount == node.Count {
		return // abort the split: one side got everything, leaf stays.
	}

	leftIdx := b.newLeaf(node.First, leftCount)
	rightIdx := b.newLeaf(i, node.Count-leftCount)

	node.IsLeaf = false
	node.Left, node.Right = leftIdx, rightIdx
	node.First, node.Count = 0, 0
	b.Nodes[nodeIdx] = node

	b.split(leftIdx)
	b.split(rightIdx)
}

// Intersect returns the nearest hit along r, or false on a miss. The
// NodeHits field of the returned record counts interior descents on the
// winning path; it is purely observational (spec.md §4.3).
func (b *BVH) Intersect(r geom.Ray) (scene.HitRecord, bool) {
	return b.intersectNode(b.Root, r)
}

func (b *BVH) intersectNode(nodeIdx int, r geom.Ray) (scene.HitRecord, bool) {
	node := &b.Nodes[nodeIdx]
	if !node.Bounds.Hit(r) {
		return scene.HitRecord{}, false
	}
	if node.IsLeaf {
		best := scene.HitRecord{}
		found := false
		for i := node.First; i < node.First+node.Count; i++ {
			if hit, ok := b.Tris[i].Intersect(r); ok {
				if !found || hit.T < best.T {
					best, found = hit, true
				}
			}
		}
		return best, found
	}

	leftHit, leftOk := b.intersectNode(node.Left, r)
	rightHit, rightOk := b.intersectNode(node.Right, r)
	switch {
	case leftOk && rightOk:
		if leftHit.T < rightHit.T {
			leftHit.NodeHits++
			return leftHit, true
		}
		rightHit.NodeHits++
		return rightHit, true
	case leftOk:
		leftHit.NodeHits++
		return leftHit, true
	case rightOk:
		rightHit.NodeHits++
		return rightHit, true
	default:
		return scene.HitRecord{}, false
	}
}

// TriCount returns the total number of triangles owned by the BVH.
func (b *BVH) TriCount() int {
	return len(b.Tris)
}
