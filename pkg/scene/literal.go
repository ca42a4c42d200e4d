package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewLiteralScene creates the four sphere scene: a diffuse sphere between a
// fuzzy metal and a glass sphere, on a large diffuse ground sphere
func NewLiteralScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("literal", cameraOverrides...)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0), 0.3))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))

	return s
}

// NewHollowGlassScene is the literal scene with the glass sphere turned into
// a thin shell. The inner sphere has a negative radius so its normals point inward.
func NewHollowGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewLiteralScene(cameraOverrides...)
	s.Name = "hollow-glass"
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, material.NewDielectric(1.5))
	return s
}
