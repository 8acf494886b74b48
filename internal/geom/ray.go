package geom

import "github.com/go-gl/mathgl/mgl64"

// Ray is an origin/direction pair. Direction is not normalized on
// construction; callers that need a unit direction normalize explicitly
// (spec.md §3).
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay constructs a ray from origin and direction, unmodified.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray into the local space defined by the inverse of m:
// it is used to trace against mesh-local geometry without re-baking every
// triangle into world space. The transformed direction is normalized.
func (r Ray) Transform(m Mat4) Ray {
	inv := m.Inv()
	invT := inv.Transpose()
	origin := mulPoint(inv, r.Origin)
	direction := mulVector(invT, r.Direction).Normalize()
	return Ray{Origin: origin, Direction: direction}
}

func mulPoint(m Mat4, v Vec3) Vec3 {
	h := m.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 1})
	return Vec3{h[0], h[1], h[2]}
}

func mulVector(m Mat4, v Vec3) Vec3 {
	h := m.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 0})
	return Vec3{h[0], h[1], h[2]}
}
