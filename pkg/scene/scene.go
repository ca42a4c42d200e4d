package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the image settings a scene renders best with
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the settings shared by the built-in scenes
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           640,
		Height:          320,
		SamplesPerPixel: 65,
		MaxDepth:        integrator.DefaultMaxDepth,
	}
}

// newScene creates an empty scene with the default camera, letting
// cameraOverrides replace any non-zero field
func newScene(name string, cameraOverrides ...renderer.CameraConfig) *Scene {
	samplingConfig := DefaultSamplingConfig()

	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.AspectRatio = float32(samplingConfig.Width) / float32(samplingConfig.Height)
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:           name,
		World:          geometry.NewWorld(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Camera builds the scene camera for an image of the given size
func (s *Scene) Camera(width, height int) *renderer.Camera {
	config := s.CameraConfig
	config.AspectRatio = float32(width) / float32(height)
	return renderer.NewCamera(config)
}

// RenderConfig returns the renderer defaults with this scene's sampling settings applied
func (s *Scene) RenderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = s.SamplingConfig.Width
	config.Height = s.SamplingConfig.Height
	config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	config.MaxDepth = s.SamplingConfig.MaxDepth
	return config
}
