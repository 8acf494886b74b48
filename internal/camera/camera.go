// Package camera implements the Camera of spec.md §3/§4.5, adapted directly
// from the teacher's internal/render/camera.go (yaw/pitch FPS camera with
// ±89° pitch clamp and a derived Front vector) and extended with the
// viewport/near-plane state a path tracer's primary-ray generator needs.
package camera

import (
	"math"
	"math/rand"

	"github.com/barretodiego/pathtracer/internal/geom"
)

// Camera is mutated only by the host between render passes, never during
// one (spec.md §3).
type Camera struct {
	Position  geom.Vec3
	Direction geom.Vec3 // unit vector; derived from Yaw/Pitch.
	Yaw       float64   // degrees
	Pitch     float64   // degrees

	NearPlane float64
	Viewport  geom.Vec3 // {width, height, 0}
}

// New creates a camera at position looking down -Z (yaw = -90, matching the
// teacher's convention), with a near plane of 1.
func New(position geom.Vec3) *Camera {
	c := &Camera{
		Position:  position,
		Yaw:       -90,
		Pitch:     0,
		NearPlane: 1,
	}
	c.updateDirection()
	return c
}

// SetRotation sets yaw/pitch in degrees, clamping pitch to ±89 (spec.md §3),
// and re-derives Direction atomically — the camera's public invariant from
// spec.md §4.5 that whoever mutates yaw/pitch must re-derive direction
// before the next sample pass.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
	c.updateDirection()
}

func clampPitch(p float64) float64 {
	if p > 89 {
		return 89
	}
	if p < -89 {
		return -89
	}
	return p
}

func (c *Camera) updateDirection() {
	yawRad := c.Yaw * math.Pi / 180
	pitchRad := c.Pitch * math.Pi / 180
	c.Direction = geom.Vec3{
		math.Cos(yawRad) * math.Cos(pitchRad),
		math.Sin(pitchRad),
		math.Sin(yawRad) * math.Cos(pitchRad),
	}.Normalize()
}

// UpdateViewport recomputes Viewport for a screen of the given pixel
// dimensions (spec.md §4.5): a fixed 1.5-unit vertical extent scaled by
// aspect ratio. Called at the start of every sample pass.
func (c *Camera) UpdateViewport(screenWidth, screenHeight int) {
	aspect := float64(screenWidth) / float64(screenHeight)
	c.Viewport = geom.Vec3{1.5 * aspect, 1.5, 0}
}

// basis returns the camera's right (adj) and local-up axes, derived fresh
// from Direction on every call since the camera may be mutated between
// passes but never mid-pass.
func (c *Camera) basis() (adj, localUp geom.Vec3) {
	adj = geom.Up.Cross(c.Direction).Normalize()
	localUp = adj.Cross(c.Direction).Normalize()
	return
}

// PrimaryRay generates a jittered primary ray for pixel (x, y) of a width x
// height image, per spec.md §4.5's five-step construction. rng supplies the
// per-sample anti-aliasing jitter.
func (c *Camera) PrimaryRay(x, y, width, height int, rng *rand.Rand) geom.Ray {
	adj, localUp := c.basis()
	vw, vh := c.Viewport.X(), c.Viewport.Y()

	bottomLeft := adj.Mul(-vw / 2).Add(localUp.Mul(-vh / 2))

	jx, jy := rng.Float64()-0.5, rng.Float64()-0.5
	sx := (float64(x) + jx) / float64(width)
	sy := (float64(y) + jy) / float64(height)

	dir := bottomLeft.
		Add(adj.Mul(vw * sx)).
		Add(localUp.Mul(vh * sy)).
		Add(c.Direction.Mul(c.NearPlane)).
		Normalize()

	return geom.NewRay(c.Position, dir)
}
