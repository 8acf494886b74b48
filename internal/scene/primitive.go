// Package scene implements the heterogeneous primitive set of spec.md §3/§4.2
// (Sphere, Plane, Quad, Triangle, Mesh) and the Scene aggregate that
// dispatches nearest-hit queries over them. Every primitive implements the
// Primitive interface and the Scene holds them as an interface list, so the
// set is open to any other type with an Intersect method.
package scene

import (
	"math"

	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/material"
)

// HitRecord carries everything the renderer needs from a successful
// intersection (spec.md §3's HitData).
type HitRecord struct {
	T        float64
	Position geom.Vec3
	Normal   geom.Vec3
	Bary     geom.Vec3 // (u, v, 1-u-v) for triangles, zero otherwise.
	NodeHits int       // BVH interior nodes visited on the winning path (debug only).
	Material material.Handle
}

// Primitive is implemented by every member of the closed set below, plus
// *Mesh (internal/scene/mesh.go).
type Primitive interface {
	Intersect(r geom.Ray) (HitRecord, bool)
}

// Sphere is a solid ball defined by center and radius.
type Sphere struct {
	Center geom.Vec3
	Radius float64
	Mat    material.Handle
}

func (s Sphere) Intersect(r geom.Ray) (HitRecord, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return HitRecord{}, false
	}
	sqrtD := math.Sqrt(disc)
	t := (-halfB - sqrtD) / a
	if t <= 0 {
		t = (-halfB + sqrtD) / a
	}
	if t <= 0 {
		return HitRecord{}, false
	}
	p := r.At(t)
	n := p.Sub(s.Center).Mul(1 / s.Radius)
	return HitRecord{T: t, Position: p, Normal: n, Material: s.Mat}, true
}

// Plane is an infinite plane through P0 with unit normal Normal.
type Plane struct {
	P0     geom.Vec3
	Normal geom.Vec3
	Mat    material.Handle
}

const planeEpsilon = 1e-6

func (p Plane) Intersect(r geom.Ray) (HitRecord, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) <= planeEpsilon {
		return HitRecord{}, false
	}
	t := p.P0.Sub(r.Origin).Dot(p.Normal) / denom
	if t <= 0 {
		return HitRecord{}, false
	}
	return HitRecord{T: t, Position: r.At(t), Normal: p.Normal, Material: p.Mat}, true
}

// Quad is a finite parallelogram spanned by U and V from corner P0.
// It is treated as two-sided (spec.md §4.2) because Cornell-box style walls
// are hit from the inside.
type Quad struct {
	P0, U, V geom.Vec3
	Mat      material.Handle
}

func (q Quad) Intersect(r geom.Ray) (HitRecord, bool) {
	n := q.U.Cross(q.V)
	nn := n.Dot(n)
	if nn == 0 {
		return HitRecord{}, false
	}
	w := n.Mul(1 / nn)
	unitN := n.Normalize()

	denom := unitN.Dot(r.Direction)
	if math.Abs(denom) <= planeEpsilon {
		return HitRecord{}, false
	}
	t := q.P0.Sub(r.Origin).Dot(unitN) / denom
	if t <= 0 {
		return HitRecord{}, false
	}
	hit := r.At(t)
	p := hit.Sub(q.P0)
	alpha := w.Dot(p.Cross(q.V))
	beta := w.Dot(q.U.Cross(p))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return HitRecord{}, false
	}
	if unitN.Dot(r.Direction) > 0 {
		unitN = unitN.Mul(-1)
	}
	return HitRecord{T: t, Position: hit, Normal: unitN, Material: q.Mat}, true
}

// Triangle is a single triangle, optionally carrying per-vertex normals and
// UVs (both optional; only Verts is required per spec.md §3).
type Triangle struct {
	Verts   [3]geom.Vec3
	Normals *[3]geom.Vec3
	UVs     *[3]geom.Vec2
	Mat     material.Handle
}

// Centroid returns (v0+v1+v2)/3, used by BVH construction to partition by
// spatial midpoint rather than by triangle bounds.
func (t Triangle) Centroid() geom.Vec3 {
	return t.Verts[0].Add(t.Verts[1]).Add(t.Verts[2]).Mul(1.0 / 3.0)
}

// Bounds returns the tight AABB of the triangle's three vertices.
func (t Triangle) Bounds() geom.AABB {
	return geom.EmptyAABB().Include(t.Verts[0]).Include(t.Verts[1]).Include(t.Verts[2])
}

const triangleEpsilon = 1e-8

// Intersect implements Moller-Trumbore, culling back-faces (det < epsilon)
// per spec.md §4.2.
func (t Triangle) Intersect(r geom.Ray) (HitRecord, bool) {
	edge1 := t.Verts[1].Sub(t.Verts[0])
	edge2 := t.Verts[2].Sub(t.Verts[0])
	pvec := r.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if det < triangleEpsilon {
		return HitRecord{}, false
	}
	invDet := 1 / det
	tvec := r.Origin.Sub(t.Verts[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return HitRecord{}, false
	}
	qvec := tvec.Cross(edge1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return HitRecord{}, false
	}
	tt := edge2.Dot(qvec) * invDet
	if tt <= 0 {
		return HitRecord{}, false
	}
	n := edge1.Cross(edge2).Normalize()
	return HitRecord{
		T:        tt,
		Position: r.At(tt),
		Normal:   n,
		Bary:     geom.Vec3{u, v, 1 - u - v},
		Material: t.Mat,
	}, true
}
