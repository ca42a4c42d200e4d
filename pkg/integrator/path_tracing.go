package integrator

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

const (
	// DefaultMaxDepth is the bounce limit after which a path contributes black
	DefaultMaxDepth = 50

	// MinHitDistance keeps bounced rays from re-hitting their own origin (shadow acne)
	MinHitDistance float32 = 0.001
)

// PathTracingIntegrator implements unidirectional path tracing with a hard depth cutoff
type PathTracingIntegrator struct {
	MaxDepth    int
	TopColor    core.Vec3 // Background color straight up
	BottomColor core.Vec3 // Background color straight down
}

// NewPathTracingIntegrator creates a new path tracing integrator with the
// white to sky-blue background
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:    maxDepth,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.RayColorFromDepth(ray, world, sampler, 0)
}

// RayColorFromDepth computes the color for a ray that has already bounced depth times.
// Each bounce multiplies the accumulated attenuation; the loop ends on a miss
// (background), an absorption or the depth limit (black).
func (pt *PathTracingIntegrator) RayColorFromDepth(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; ; depth++ {
		hit, isHit := world.Hit(ray, MinHitDistance, math32.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.BackgroundGradient(ray))
		}

		if depth >= pt.MaxDepth {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.BottomColor.Lerp(pt.TopColor, t)
}
