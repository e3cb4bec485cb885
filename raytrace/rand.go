package raytrace

import (
	"math"
	"math/rand"
)

// Rand wraps a per-thread *rand.Rand. A process-global RNG is unsafe once
// tracing fans out across tile workers; every worker owns its own stream.
type Rand struct {
	r *rand.Rand
}

// NewRand seeds a stream deterministically from (frame, px, py, sample) so a
// render with SS4 or SS1 and no extra jitter reproduces byte-identical
// output across runs. Different (px, py) pairs necessarily get different
// streams even when they land on the same tile.
func NewRand(frame, px, py, sample int) *Rand {
	seed := hashSeed(frame, px, py, sample)
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// hashSeed combines four ints into a single int64 seed via a splitmix64-style
// avalanche, so nearby (px, py) pairs don't produce correlated streams.
func hashSeed(a, b, c, d int) int64 {
	x := uint64(a)*0x9E3779B97F4A7C15 ^ uint64(b)*0xBF58476D1CE4E5B9
	x ^= uint64(c)*0x94D049BB133111EB ^ uint64(d)*0xD6E8FEB86659FD93
	x ^= x >> 33
	x *= 0xFF51AFD7ED558CCD
	x ^= x >> 33
	return int64(x)
}

func (rr *Rand) Float64() float64 {
	return rr.r.Float64()
}

// PointOnDisk returns a uniformly sampled point inside a disk of the given
// radius, used to jitter the reflection direction in Trace.
func (rr *Rand) PointOnDisk(radius float64) (x, y float64) {
	theta := rr.r.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(rr.r.Float64())
	return r * math.Cos(theta), r * math.Sin(theta)
}
