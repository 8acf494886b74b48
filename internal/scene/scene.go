package scene

import "github.com/barretodiego/pathtracer/internal/geom"

// Scene holds an insertion-ordered list of primitives and dispatches
// nearest-hit queries over them with a linear scan (spec.md §4.6): meshes
// subsume their triangles into a single BVH, so the top-level scan is only
// over O(N) coarse objects, which is acceptable for the tens of primitives a
// scene described this way typically holds. There is deliberately no
// top-level BVH.
type Scene struct {
	Objects []Primitive

	// EnvironmentLight toggles the procedural sky fallback a ray receives
	// on miss (spec.md §9 Open Question (b)); false makes misses
	// contribute black, useful for scenes that are fully enclosed.
	EnvironmentLight bool
}

// New returns an empty scene with the environment light enabled by default.
func New() *Scene {
	return &Scene{EnvironmentLight: true}
}

// Add appends a primitive to the scene.
func (s *Scene) Add(p Primitive) {
	s.Objects = append(s.Objects, p)
}

// Intersect returns the nearest hit across every primitive, or false on a
// miss.
func (s *Scene) Intersect(r geom.Ray) (HitRecord, bool) {
	best := HitRecord{}
	found := false
	for _, obj := range s.Objects {
		if hit, ok := obj.Intersect(r); ok {
			if !found || hit.T < best.T {
				best, found = hit, true
			}
		}
	}
	return best, found
}
