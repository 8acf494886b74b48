package geom

import "math"

// AABB is an axis-aligned bounding box. A freshly constructed AABB is
// empty (Min holds +Inf, Max holds -Inf componentwise) and must be grown by
// Include before use — this also doubles as the degenerate, always-miss box
// spec.md §7 requires for a zero-triangle BVH leaf.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box with no volume, ready to be grown with Include.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// Include grows the box to contain p.
func (b AABB) Include(p Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X(), p.X()), math.Min(b.Min.Y(), p.Y()), math.Min(b.Min.Z(), p.Z())},
		Max: Vec3{math.Max(b.Max.X(), p.X()), math.Max(b.Max.Y(), p.Y()), math.Max(b.Max.Z(), p.Z())},
	}
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X(), o.Min.X()), math.Min(b.Min.Y(), o.Min.Y()), math.Min(b.Min.Z(), o.Min.Z())},
		Max: Vec3{math.Max(b.Max.X(), o.Max.X()), math.Max(b.Max.Y(), o.Max.Y()), math.Max(b.Max.Z(), o.Max.Z())},
	}
}

// Extent returns the per-axis size of the box.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// LargestAxis returns the axis (0=X, 1=Y, 2=Z) with the greatest extent,
// ties broken X > Y > Z per spec.md §4.3.
func (b AABB) LargestAxis() int {
	e := b.Extent()
	axis := 0
	best := e.X()
	if e.Y() > best {
		axis, best = 1, e.Y()
	}
	if e.Z() > best {
		axis = 2
	}
	return axis
}

// Hit implements the slab test of spec.md §4.1: a predicate only, no t-value
// is returned because the BVH only uses AABB intersection for pruning.
// Division by zero on an axis-parallel ray yields +-Inf, which min/max
// handle correctly without special-casing.
func (b AABB) Hit(r Ray) bool {
	// An empty (inverted) box contains no point, so it never hits; without
	// this check the t1/t2 swap below would turn it into an infinite slab.
	if b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z() {
		return false
	}
	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin, dir := r.Origin[axis], r.Direction[axis]
		t1 := (b.Min[axis] - origin) / dir
		t2 := (b.Max[axis] - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}
	return tMax >= tMin && tMin < 1e30 && tMax > 0
}

// Contains reports whether p lies within the box, inclusive.
func (b AABB) Contains(p Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}
