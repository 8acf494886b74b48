// Package geom provides the vector, matrix, ray and bounding-box primitives
// shared by every other tracer package. Types are plain values with no
// aliasing concerns, following the teacher's mathgl-backed Camera.
package geom

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-component vector. It is a value type: all operations return a
// new Vec3 rather than mutating the receiver.
type Vec3 = mgl64.Vec3

// Vec2 is a 2-component vector, used for triangle UV coordinates.
type Vec2 = mgl64.Vec2

// Mat4 is a 4x4 affine matrix used for mesh instance transforms.
type Mat4 = mgl64.Mat4

// Up is the world up direction, Y-up right-handed per spec.
var Up = Vec3{0, 1, 0}

// Reflect computes the reflection of d about normal n: d - 2(d.n)n.
func Reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// RandomUnitSphere returns a uniformly distributed point inside the unit
// ball by rejection sampling.
func RandomUnitSphere(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed point on the unit sphere.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	return RandomUnitSphere(rng).Normalize()
}

// RandomHemisphere returns a unit vector v with v.Dot(normal) > 0: a uniform
// unit vector flipped into the hemisphere around normal, per spec §4.4.
func RandomHemisphere(rng *rand.Rand, normal Vec3) Vec3 {
	v := RandomUnitVector(rng)
	if v.Dot(normal) < 0 {
		v = v.Mul(-1)
	}
	return v
}

// RandomInUnitDisk returns a point in the unit disk on the XY plane. The
// camera does not use it: its primary-ray jitter is uniform in a square.
func RandomInUnitDisk(rng *rand.Rand) (x, y float64) {
	for {
		x, y = 2*rng.Float64()-1, 2*rng.Float64()-1
		if x*x+y*y < 1 {
			return
		}
	}
}

// NearZero reports whether every component of v has magnitude below eps.
func NearZero(v Vec3, eps float64) bool {
	return math.Abs(v.X()) < eps && math.Abs(v.Y()) < eps && math.Abs(v.Z()) < eps
}
