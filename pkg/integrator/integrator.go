package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// world is read-only; sampler is owned by the calling worker.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}
