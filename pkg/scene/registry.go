package scene

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewScene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Short description
}

// builder creates a scene for an image size and seed
type builder func(width, height int, seed int64) *Scene

type registryEntry struct {
	description string
	build       builder
}

var registry = map[string]registryEntry{
	"spheres": {
		description: "Random spheres on a checkered ground under a grid of lights",
		build: func(width, height int, seed int64) *Scene {
			s := NewSpheresScene(width, height, rand.New(rand.NewSource(seed)))
			s.SamplingConfig.Seed = seed
			return s
		},
	},
	"quads": {
		description: "Open box of colored quads lit from above",
		build: func(width, height int, seed int64) *Scene {
			s := NewQuadsScene(width, height)
			s.SamplingConfig.Seed = seed
			return s
		},
	},
	"single-sphere": {
		description: "Diffuse unit sphere lit from behind the camera",
		build: func(width, height int, seed int64) *Scene {
			s := NewSingleSphereScene(width, height)
			s.SamplingConfig.Seed = seed
			return s
		},
	},
	"hollow-glass": {
		description: "Glass shell with a negative-radius inner surface around a diffuse core",
		build: func(width, height int, seed int64) *Scene {
			s := NewHollowGlassScene(width, height)
			s.SamplingConfig.Seed = seed
			return s
		},
	},
}

// ListScenes returns the names of all built-in scenes, sorted
func ListScenes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListSceneInfo returns metadata for all built-in scenes, sorted by ID
func ListSceneInfo() []SceneInfo {
	var infos []SceneInfo
	for _, name := range ListScenes() {
		infos = append(infos, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: registry[name].description,
		})
	}
	return infos
}

// NewScene builds the named scene for the given image size. The seed drives
// both random scene layout and the render's sampling.
func NewScene(name string, width, height int, seed int64) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(ListScenes(), ", "))
	}
	return entry.build(width, height, seed), nil
}

// titleCase converts a filename-style string to title case
// e.g., "hollow-glass" -> "Hollow Glass"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
