package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/material"
)

// BVHAccelerator is the subset of *accel.BVH that Mesh needs. Declared here
// (rather than importing internal/accel directly) to avoid a dependency
// cycle — accel.BVH operates on scene.Triangle, so scene cannot import accel.
type BVHAccelerator interface {
	Intersect(r geom.Ray) (HitRecord, bool)
	TriCount() int
}

// Mesh is an OBJ-loaded triangle set with a per-instance transform and a
// single material, wrapping a BVH (spec.md §3/§4.3). The BVH is not
// exclusively owned: multiple Mesh instances may share one *accel.BVH (see
// internal/meshcache) when they reference the same source file with
// different transforms.
type Mesh struct {
	BVH       BVHAccelerator
	Transform geom.Mat4
	Mat       material.Handle
}

// Intersect traces r in mesh-local space by applying the inverse transform,
// then maps the resulting hit back to world space (spec.md §4.1's Ray
// Transform is exactly this mechanism). hit.T from the BVH is a parametric
// distance along the normalized local-space direction, not a world-space
// distance, so it is recomputed from the world-space position, in units of
// r.Direction's length (the same parametric t the other primitives report),
// rather than reused directly — otherwise a non-uniformly (or non-unit-)
// scaled instance would sort incorrectly against other scene primitives.
func (m *Mesh) Intersect(r geom.Ray) (HitRecord, bool) {
	local := r.Transform(m.Transform)
	hit, ok := m.BVH.Intersect(local)
	if !ok {
		return HitRecord{}, false
	}
	normalMat := m.Transform.Inv().Transpose()
	hit.Position = mulPoint(m.Transform, hit.Position)
	hit.Normal = mulVector(normalMat, hit.Normal).Normalize()
	hit.T = hit.Position.Sub(r.Origin).Len() / r.Direction.Len()
	hit.Material = m.Mat
	return hit, true
}

func mulPoint(m geom.Mat4, v geom.Vec3) geom.Vec3 {
	h := m.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 1})
	return geom.Vec3{h[0], h[1], h[2]}
}

func mulVector(m geom.Mat4, v geom.Vec3) geom.Vec3 {
	h := m.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 0})
	return geom.Vec3{h[0], h[1], h[2]}
}
