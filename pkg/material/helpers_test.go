package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// constSampler always returns the same value
type constSampler float32

func (c constSampler) Get1D() float32 { return float32(c) }

func newTestSampler() core.Sampler {
	return core.NewSeededSampler(42)
}

func vecNear(a, b core.Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps
}
