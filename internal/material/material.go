// Package material implements the closed set of material variants from
// spec.md §3/§4.4: Lambertian, Metal and Emissive. Each material is an
// immutable value once constructed and is shared by reference among any
// number of primitives — Go's garbage collector gives safe concurrent
// sharing without the atomic-refcount handles spec.md §9 raises as one
// option (see SPEC_FULL.md §9, Open Question (d)).
package material

import (
	"math/rand"

	"github.com/barretodiego/pathtracer/internal/geom"
)

const scatterEpsilon = 1e-4

// ScatterResult carries the ray a material emits after a hit.
type ScatterResult struct {
	Ray geom.Ray
	Ok  bool
}

// Material answers the three questions of spec.md §4.4: attenuation,
// scatter, and whether the surface itself emits light.
type Material interface {
	// Attenuation returns the albedo (diffuse/metal) or emitted radiance
	// (emissive) at a hit point.
	Attenuation(p, n geom.Vec3) geom.Vec3
	// Scatter returns the next ray for a path continuing past this hit.
	// Emissive materials never scatter.
	Scatter(in geom.Ray, p, n geom.Vec3, rng *rand.Rand) ScatterResult
	// Emissive reports whether this material terminates a path by emitting
	// light rather than scattering it.
	Emissive() bool
}

// Lambertian is a diffuse material with a constant albedo.
type Lambertian struct {
	Albedo geom.Vec3
}

func (m Lambertian) Attenuation(_, _ geom.Vec3) geom.Vec3 { return m.Albedo }

func (m Lambertian) Scatter(_ geom.Ray, p, n geom.Vec3, rng *rand.Rand) ScatterResult {
	// The kernel has already offset p by epsilon*n before calling Scatter,
	// so the raw position is used here (spec.md §4.4).
	dir := n.Add(geom.RandomHemisphere(rng, n))
	return ScatterResult{Ray: geom.NewRay(p, dir), Ok: true}
}

func (m Lambertian) Emissive() bool { return false }

// Metal is a rough-reflective material; Roughness >= 0, 0 is a perfect
// mirror.
type Metal struct {
	Albedo    geom.Vec3
	Roughness float64
}

func (m Metal) Attenuation(_, _ geom.Vec3) geom.Vec3 { return m.Albedo }

func (m Metal) Scatter(in geom.Ray, p, n geom.Vec3, rng *rand.Rand) ScatterResult {
	reflected := geom.Reflect(in.Direction.Normalize(), n)
	dir := reflected.Add(geom.RandomUnitSphere(rng).Mul(m.Roughness))
	origin := p.Add(n.Mul(scatterEpsilon))
	return ScatterResult{Ray: geom.NewRay(origin, dir), Ok: true}
}

func (m Metal) Emissive() bool { return false }

// Emissive is a light-emitting material; it never scatters.
type Emissive struct {
	Radiance geom.Vec3
}

func (m Emissive) Attenuation(_, _ geom.Vec3) geom.Vec3 { return m.Radiance }

func (m Emissive) Scatter(_ geom.Ray, _, _ geom.Vec3, _ *rand.Rand) ScatterResult {
	return ScatterResult{}
}

func (m Emissive) Emissive() bool { return true }

// Handle is the shared reference to a material that scene primitives hold
// (spec.md §3: "materials are shared... because the same material often
// backs many primitives"). Materials are immutable value types, so sharing
// the interface value itself is sufficient — no separate indirection layer
// is needed.
type Handle = Material
