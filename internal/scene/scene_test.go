package scene

import (
	"math"
	"testing"

	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/internal/material"
)

func vecClose(a, b geom.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}

func TestSphereHitCorrectness(t *testing.T) {
	mat := material.Lambertian{Albedo: geom.Vec3{1, 0, 0}}
	s := Sphere{Center: geom.Vec3{0, 0, 0}, Radius: 1, Mat: mat}

	hit, ok := s.Intersect(geom.NewRay(geom.Vec3{0, 0, -5}, geom.Vec3{0, 0, 1}))
	if !ok {
		t.Fatal("expected hit")
	}
	if !vecClose(hit.Position, geom.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("position = %v, want (0,0,-1)", hit.Position)
	}
	if !vecClose(hit.Normal, geom.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("normal = %v, want (0,0,-1)", hit.Normal)
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("t = %f, want 4", hit.T)
	}

	_, ok = s.Intersect(geom.NewRay(geom.Vec3{2, 0, -5}, geom.Vec3{0, 0, 1}))
	if ok {
		t.Fatal("expected miss for offset ray")
	}
}

func TestQuadTwoSidedness(t *testing.T) {
	mat := material.Lambertian{Albedo: geom.Vec3{1, 1, 1}}
	q := Quad{P0: geom.Vec3{0, 0, 0}, U: geom.Vec3{1, 0, 0}, V: geom.Vec3{0, 0, 1}, Mat: mat}

	above, ok := q.Intersect(geom.NewRay(geom.Vec3{0.5, 1, 0.5}, geom.Vec3{0, -1, 0}))
	if !ok {
		t.Fatal("expected hit from above")
	}
	below, ok := q.Intersect(geom.NewRay(geom.Vec3{0.5, -1, 0.5}, geom.Vec3{0, 1, 0}))
	if !ok {
		t.Fatal("expected hit from below")
	}
	if !vecClose(above.Normal, below.Normal.Mul(-1), 1e-9) {
		t.Fatalf("normals not antiparallel: above=%v below=%v", above.Normal, below.Normal)
	}
}

func TestPlaneGrazingRayMisses(t *testing.T) {
	mat := material.Lambertian{Albedo: geom.Vec3{1, 1, 1}}
	p := Plane{P0: geom.Vec3{0, 0, 0}, Normal: geom.Vec3{0, 1, 0}, Mat: mat}
	r := geom.NewRay(geom.Vec3{0, 1, 0}, geom.Vec3{1, 0, 0}) // parallel to the plane.
	if _, ok := p.Intersect(r); ok {
		t.Fatal("expected miss for ray parallel to plane")
	}
}

func TestTriangleDegenerateMisses(t *testing.T) {
	mat := material.Lambertian{Albedo: geom.Vec3{1, 1, 1}}
	// Zero-area triangle: all three vertices collinear.
	tri := Triangle{Verts: [3]geom.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, Mat: mat}
	r := geom.NewRay(geom.Vec3{0.5, 1, 0}, geom.Vec3{0, -1, 0})
	if _, ok := tri.Intersect(r); ok {
		t.Fatal("expected degenerate triangle to be silently missed")
	}
}

func TestSceneIntersectPicksNearest(t *testing.T) {
	mat := material.Lambertian{Albedo: geom.Vec3{1, 1, 1}}
	s := New()
	s.Add(Sphere{Center: geom.Vec3{0, 0, 5}, Radius: 1, Mat: mat})
	s.Add(Sphere{Center: geom.Vec3{0, 0, 10}, Radius: 1, Mat: mat})

	hit, ok := s.Intersect(geom.NewRay(geom.Vec3{0, 0, 0}, geom.Vec3{0, 0, 1}))
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected nearer sphere at t=4, got t=%f", hit.T)
	}
}
