package scene

import (
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// DefaultAssetDir is where scenes look for image textures
const DefaultAssetDir = "res"

// World contains everything a render reads: the object tree and the color of
// empty space. It is built once and never modified while rendering.
type World struct {
	Root       geometry.Shape
	Background core.Color
}

// CameraPreset is the viewpoint a scene is designed to be seen from
type CameraPreset struct {
	Position    core.Point `json:"position"`
	FocusPoint  core.Point `json:"focusPoint"`
	FieldOfView float64    `json:"fieldOfView"` // Vertical field of view in degrees
}

// BuildOptions supplies the collaborators a scene builder may need
type BuildOptions struct {
	Sampler  core.Sampler // Randomness for procedurally placed objects and noise lattices
	Logger   core.Logger  // Receives asset loading warnings
	AssetDir string       // Directory holding image textures
}

// withDefaults fills in a time-seeded sampler, a silent logger and the default asset dir
func (o BuildOptions) withDefaults() BuildOptions {
	if o.Sampler == nil {
		o.Sampler = core.NewSeededSampler(0)
	}
	if o.Logger == nil {
		o.Logger = core.NopLogger{}
	}
	if o.AssetDir == "" {
		o.AssetDir = DefaultAssetDir
	}
	return o
}

func (o BuildOptions) assetPath(name string) string {
	return filepath.Join(o.AssetDir, name)
}

func pt(x, y, z float64) core.Point {
	return core.NewVec3(x, y, z)
}

var (
	skyBlue = core.NewColor(0.7, 0.8, 1.0)
	black   = core.NewColor(0, 0, 0)
)
