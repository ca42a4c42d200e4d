package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for rendering algorithms.
// Each worker owns its own Sampler; implementations are not safe for concurrent use.
type Sampler interface {
	Get1D() float32
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit sphere.
// Rejection sampling: points in [-1,1]³ are drawn until one has squared length < 1.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := NewVec3(
			2*sampler.Get1D()-1,
			2*sampler.Get1D()-1,
			2*sampler.Get1D()-1,
		)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a point uniformly distributed inside the unit disk in
// the XY plane (for depth of field). Each attempt consumes two draws.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(2*sampler.Get1D()-1, 2*sampler.Get1D()-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
