package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Load for an ID with no preset
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // One-line summary
	Volumetric  bool   `json:"volumetric"`  // Whether the scene needs the volumetric integrator
}

type preset struct {
	info  SceneInfo
	build func() (*Scene, error)
}

func infallible(build func() *Scene) func() (*Scene, error) {
	return func() (*Scene, error) { return build(), nil }
}

var presets = map[string]preset{
	"cornell": {
		info:  SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with two diffuse blocks"},
		build: infallible(NewCornellScene),
	},
	"cornell-glass": {
		info:  SceneInfo{ID: "cornell-glass", Name: "Cornell Box (glass)", Description: "Cornell box with a glass and a rough gold sphere"},
		build: infallible(NewGlassCornellScene),
	},
	"cornell-fog": {
		info:  SceneInfo{ID: "cornell-fog", Name: "Foggy Cornell Box", Description: "Cornell box filled with homogeneous fog", Volumetric: true},
		build: infallible(NewFoggyCornellScene),
	},
	"glossy": {
		info:  SceneInfo{ID: "glossy", Name: "Glossy Spheres", Description: "Plastic, metal, glass and mirror spheres under an environment light"},
		build: infallible(NewGlossyScene),
	},
	"smoke": {
		info:  SceneInfo{ID: "smoke", Name: "Smoke", Description: "Heterogeneous grid medium lit by a sphere and a point light", Volumetric: true},
		build: NewSmokeScene,
	},
	"next-week": {
		info:  SceneInfo{ID: "next-week", Name: "Next Week", Description: "Motion blur, marble noise, instanced spheres and subsurface fog in a hazy room", Volumetric: true},
		build: func() (*Scene, error) { return NewNextWeekScene(7) },
	},
	"furnace": {
		info:  SceneInfo{ID: "furnace", Name: "White Furnace", Description: "White diffuse sphere in a uniform environment; converges to 1 everywhere"},
		build: infallible(NewFurnaceScene),
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		infos = append(infos, p.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Load builds the built-in scene with the given ID
func Load(id string) (*Scene, SceneInfo, error) {
	p, ok := presets[id]
	if !ok {
		return nil, SceneInfo{}, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}
	s, err := p.build()
	if err != nil {
		return nil, SceneInfo{}, err
	}
	return s, p.info, nil
}
