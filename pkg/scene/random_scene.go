package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

const (
	gridExtent        = 11
	smallSphereRadius = 0.2
)

// NewRandomScene creates the cover scene: a grid of small random spheres
// around three large ones. The same generator state yields the same scene.
func NewRandomScene(random *rand.Rand, cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("random", cameraOverrides...)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Keep the grid clear of the large metal sphere
	clearing := core.NewVec3(4, smallSphereRadius, 0)

	for a := -gridExtent; a < gridExtent; a++ {
		for b := -gridExtent; b < gridExtent; b++ {
			chooseMat := random.Float32()
			center := core.NewVec3(
				float32(a)+0.9*random.Float32(),
				smallSphereRadius,
				float32(b)+0.9*random.Float32(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(core.NewVec3(
					random.Float32()*random.Float32(),
					random.Float32()*random.Float32(),
					random.Float32()*random.Float32(),
				))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float32()),
					0.5*(1+random.Float32()),
					0.5*(1+random.Float32()),
				)
				mat = material.NewMetal(albedo, 0.5*random.Float32())
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, smallSphereRadius, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))

	return s
}
