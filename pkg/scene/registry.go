package scene

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Random      bool   `json:"random"`      // Whether the layout depends on the seed
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type sceneFactory func(random *rand.Rand, cameraOverrides ...renderer.CameraConfig) *Scene

type registeredScene struct {
	info   SceneInfo
	create sceneFactory
}

const builtInGroup = "Built-in Scenes"

var registry = []registeredScene{
	{
		info: SceneInfo{
			ID:          "random",
			Description: "Grid of small random spheres around three large ones",
			Random:      true,
		},
		create: NewRandomScene,
	},
	{
		info: SceneInfo{
			ID:          "literal",
			Description: "Diffuse, metal and glass spheres on a ground sphere",
		},
		create: func(_ *rand.Rand, overrides ...renderer.CameraConfig) *Scene {
			return NewLiteralScene(overrides...)
		},
	},
	{
		info: SceneInfo{
			ID:          "hollow-glass",
			Description: "Literal scene with a hollow glass sphere",
		},
		create: func(_ *rand.Rand, overrides ...renderer.CameraConfig) *Scene {
			return NewHollowGlassScene(overrides...)
		},
	},
}

// DefaultSceneID names the scene rendered when none is requested
const DefaultSceneID = "random"

// ListScenes returns every built-in scene in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, entry := range registry {
		info := entry.info
		info.DisplayName = titleCase(info.ID)
		info.Group = builtInGroup
		scenes = append(scenes, info)
	}
	return scenes
}

// ListAllScenes returns the built-in scenes grouped by category
func ListAllScenes() ScenesResponse {
	return ScenesResponse{
		Groups: []SceneGroup{{Name: builtInGroup, Scenes: ListScenes()}},
	}
}

// Create builds the scene registered under id. random drives scenes whose
// layout is random and is ignored by the others; nil means seed 0.
func Create(id string, random *rand.Rand, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, entry := range registry {
		if entry.info.ID != id {
			continue
		}
		if random == nil {
			random = rand.New(rand.NewSource(0))
		}
		return entry.create(random, cameraOverrides...), nil
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(SceneIDs(), ", "))
}

// SceneIDs returns the identifiers accepted by Create
func SceneIDs() []string {
	ids := make([]string, len(registry))
	for i, entry := range registry {
		ids[i] = entry.info.ID
	}
	return ids
}

// titleCase converts an identifier to title case
// e.g., "hollow-glass" -> "Hollow Glass"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
