// Package film implements the Framebuffer of spec.md §3/§6: a float RGB
// accumulator plus gamma-2.0 tone-mapped byte export. Adapted from the
// teacher's internal/render/postprocess.go gamma step (pow(color, 1/2.2)),
// generalized to the spec's plain square-root tone map.
package film

import (
	"math"

	"github.com/barretodiego/pathtracer/internal/geom"
	"github.com/barretodiego/pathtracer/pkg/mathutil"
)

// Framebuffer stores accumulated radiance, not the mean: normalization by
// sample count happens only at export time, never in place during
// accumulation (spec.md §3).
type Framebuffer struct {
	Data          []geom.Vec3
	Width, Height int
}

// New allocates a cleared framebuffer of the given pixel dimensions.
func New(width, height int) *Framebuffer {
	return &Framebuffer{Data: make([]geom.Vec3, width*height), Width: width, Height: height}
}

// Reset zeros every accumulator cell in place, without reallocating.
func (f *Framebuffer) Reset() {
	for i := range f.Data {
		f.Data[i] = geom.Vec3{}
	}
}

// Resize reallocates the buffer if the requested dimensions differ from the
// current ones, clearing it in the process. A camera or viewport change
// must always be paired with a Reset (or a Resize, which implies one) —
// otherwise stale radiance from an earlier pose persists (spec.md §3/§5).
func (f *Framebuffer) Resize(width, height int) {
	if f.Width == width && f.Height == height {
		f.Reset()
		return
	}
	f.Width, f.Height = width, height
	f.Data = make([]geom.Vec3, width*height)
}

// Add accumulates radiance into pixel (x, y). Pixel tasks touch disjoint
// cells so no synchronization is required between concurrent callers
// writing different pixels (spec.md §5).
func (f *Framebuffer) Add(x, y int, radiance geom.Vec3) {
	i := x + y*f.Width
	f.Data[i] = f.Data[i].Add(radiance)
}

// Set writes a direct (non-accumulating) value into pixel (x, y), used by
// the debug passes that do not accumulate across samples (spec.md §4.7).
func (f *Framebuffer) Set(x, y int, value geom.Vec3) {
	f.Data[x+y*f.Width] = value
}

// ToBytes exports a width*height*4 RGBA byte buffer (A=255), tone-mapped by
// byte = clamp(sqrt(accum/numSamples))*255 — gamma-2.0, per spec.md §6.
// numSamples must be >= 1: dividing by zero is an accumulator-underflow
// programmer error (spec.md §7), not a recoverable one.
func (f *Framebuffer) ToBytes(numSamples int) []byte {
	if numSamples <= 0 {
		panic("film: ToBytes called with numSamples <= 0")
	}
	return f.tonemap(1.0 / float64(numSamples))
}

// ToBytesDirect exports the accumulator without dividing by a sample count
// (spec.md §6's to_bytes_1), for debug passes whose cells already hold a
// direct value rather than a running sum.
func (f *Framebuffer) ToBytesDirect() []byte {
	return f.tonemap(1.0)
}

func (f *Framebuffer) tonemap(scale float64) []byte {
	out := make([]byte, f.Width*f.Height*4)
	for i, v := range f.Data {
		r := mathutil.Clamp(math.Sqrt(math.Max(0, v.X()*scale)), 0, 1)
		g := mathutil.Clamp(math.Sqrt(math.Max(0, v.Y()*scale)), 0, 1)
		bch := mathutil.Clamp(math.Sqrt(math.Max(0, v.Z()*scale)), 0, 1)
		o := i * 4
		out[o] = byte(r * 255)
		out[o+1] = byte(g * 255)
		out[o+2] = byte(bch * 255)
		out[o+3] = 255
	}
	return out
}
