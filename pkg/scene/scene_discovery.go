package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned when a name matches no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string       `json:"id"`          // Unique identifier
	DisplayName string       `json:"displayName"` // UI display name
	Description string       `json:"description"` // Optional description
	Group       string       `json:"group"`       // Grouping category
	Camera      CameraPreset `json:"camera"`      // Intended viewpoint
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

// Entry is a catalogue item: metadata plus the function that builds the world
type Entry struct {
	SceneInfo
	Build func(opts BuildOptions) *World
}

// NewWorld builds the entry's world, filling unset options with defaults
func (e Entry) NewWorld(opts BuildOptions) *World {
	return e.Build(opts.withDefaults())
}

const (
	groupSpheres  = "Spheres"
	groupTextures = "Textures"
	groupLights   = "Quads and Lights"
)

// catalogue lists the built-in scenes in presentation order
var catalogue = []Entry{
	{
		SceneInfo: SceneInfo{
			ID: "one-sphere", DisplayName: "One Sphere", Group: groupSpheres,
			Description: "A single diffuse sphere resting on a large ground sphere",
			Camera:      frontCamera,
		},
		Build: NewOneSphereScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "metal-spheres", DisplayName: "Metal Spheres", Group: groupSpheres,
			Description: "Diffuse sphere between a fuzzy silver and a rough gold metal sphere",
			Camera:      frontCamera,
		},
		Build: NewMetalSpheresScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "glass-spheres", DisplayName: "Glass Spheres", Group: groupSpheres,
			Description: "Two glass spheres beside a rough gold sphere",
			Camera:      frontCamera,
		},
		Build: NewGlassSpheresScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "three-spheres", DisplayName: "Three Spheres", Group: groupSpheres,
			Description: "Glass, diffuse and mirror spheres in a row",
			Camera:      frontCamera,
		},
		Build: NewThreeSpheresScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "hollow-glass-sphere", DisplayName: "Hollow Glass Sphere", Group: groupSpheres,
			Description: "Three spheres where the glass one is a thin hollow shell",
			Camera:      frontCamera,
		},
		Build: NewHollowGlassSphereScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "red-and-blue", DisplayName: "Red and Blue", Group: groupSpheres,
			Description: "Two touching spheres framing a wide field of view",
			Camera:      frontCamera,
		},
		Build: NewRedAndBlueScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "many-spheres", DisplayName: "Many Spheres", Group: groupSpheres,
			Description: "Randomly placed small spheres around three large ones",
			Camera: CameraPreset{
				Position: pt(13, 2, 3), FocusPoint: pt(0, 0, 0), FieldOfView: 20,
			},
		},
		Build: NewManySpheresScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "earth", DisplayName: "Earth", Group: groupTextures,
			Description: "Image-textured globe",
			Camera: CameraPreset{
				Position: pt(0, 0, 12), FocusPoint: pt(0, 0, 0), FieldOfView: 20,
			},
		},
		Build: NewEarthScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "two-perlin-spheres", DisplayName: "Two Perlin Spheres", Group: groupTextures,
			Description: "Perlin turbulence on a sphere and the ground",
			Camera: CameraPreset{
				Position: pt(13, 2, 3), FocusPoint: pt(0, 0, 0), FieldOfView: 20,
			},
		},
		Build: NewTwoPerlinSpheresScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "quads", DisplayName: "Quads", Group: groupLights,
			Description: "Five colored quads forming an open box",
			Camera: CameraPreset{
				Position: pt(0, 0, 9), FocusPoint: pt(0, 0, 0), FieldOfView: 80,
			},
		},
		Build: NewQuadsScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "simple-light", DisplayName: "Simple Light", Group: groupLights,
			Description: "Perlin spheres lit only by a rectangular light",
			Camera: CameraPreset{
				Position: pt(26, 3, 6), FocusPoint: pt(0, 2, 0), FieldOfView: 20,
			},
		},
		Build: NewSimpleLightScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "cornell-box", DisplayName: "Cornell Box", Group: groupLights,
			Description: "Empty Cornell box with a ceiling light",
			Camera:      cornellCamera,
		},
		Build: NewCornellBoxScene,
	},
	{
		SceneInfo: SceneInfo{
			ID: "cornell-box-two-boxes", DisplayName: "Cornell Box with Boxes", Group: groupLights,
			Description: "Cornell box holding two rotated blocks",
			Camera:      cornellCamera,
		},
		Build: NewCornellBoxTwoBoxesScene,
	},
}

var (
	frontCamera = CameraPreset{Position: pt(0, 0, 0), FocusPoint: pt(0, 0, -1), FieldOfView: 90}

	cornellCamera = CameraPreset{Position: pt(278, 278, -800), FocusPoint: pt(278, 278, 0), FieldOfView: 40}
)

// All returns every built-in scene in presentation order
func All() []Entry {
	entries := make([]Entry, len(catalogue))
	copy(entries, catalogue)
	return entries
}

// Lookup finds a built-in scene by ID or display name, ignoring case
func Lookup(name string) (Entry, error) {
	key := strings.TrimSpace(name)
	for _, entry := range catalogue {
		if strings.EqualFold(entry.ID, key) || strings.EqualFold(entry.DisplayName, key) {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// IDs returns the identifiers of all built-in scenes
func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, entry := range catalogue {
		ids[i] = entry.ID
	}
	return ids
}

// ListAllScenes returns the built-in scenes grouped by category, groups in
// order of first appearance
func ListAllScenes() ScenesResponse {
	var response ScenesResponse
	index := make(map[string]int)

	for _, entry := range catalogue {
		i, exists := index[entry.Group]
		if !exists {
			i = len(response.Groups)
			index[entry.Group] = i
			response.Groups = append(response.Groups, SceneGroup{Name: entry.Group})
		}
		response.Groups[i].Scenes = append(response.Groups[i].Scenes, entry.SceneInfo)
	}

	return response
}
