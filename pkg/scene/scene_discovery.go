package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name used on the command line
	DisplayName string // Human readable name
	Description string
}

type sceneEntry struct {
	info  SceneInfo
	build func(seed int64, overrides ...geometry.CameraConfig) (*Scene, error)
}

var builtinScenes = map[string]sceneEntry{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default", Description: "Diffuse, glass and gold spheres on a ground sphere"},
		build: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(overrides...)
		},
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Grid of random small spheres around three large ones"},
		build: NewSphereGridScene,
	},
	"simple": {
		info: SceneInfo{ID: "simple", DisplayName: "Simple", Description: "One sphere in front of a pinhole camera"},
		build: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewSimpleScene(overrides...)
		},
	},
	"gradient": {
		info: SceneInfo{ID: "gradient", DisplayName: "Gradient", Description: "Empty scene, sky gradient only"},
		build: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewGradientScene(overrides...)
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes
}

// Create builds the named scene. The seed only affects scenes with random placement.
func Create(name string, seed int64, overrides ...geometry.CameraConfig) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s, err := entry.build(seed, overrides...)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}
	return s, nil
}
