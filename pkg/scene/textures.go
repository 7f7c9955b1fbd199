package scene

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// EarthTexture is the image wrapped around the globe in the earth scene
const EarthTexture = "earth.jpg"

// NewEarthScene creates a globe textured with AssetDir/earth.jpg. When the image
// cannot be loaded the globe shows the placeholder checkerboard instead.
func NewEarthScene(opts BuildOptions) *World {
	earth := loaders.LoadImageOrDefault(opts.assetPath(EarthTexture), opts.Logger)
	return &World{
		Root:       geometry.NewSphere(pt(0, 0, -12), 2, material.NewSimple(earth)),
		Background: skyBlue,
	}
}

// perlinSpheres is a turbulence-textured ground and sphere sharing one lattice
func perlinSpheres(opts BuildOptions) *geometry.Collection {
	marble := material.NewSimple(texture.NewNoise(4, opts.Sampler))
	return geometry.NewCollection(
		geometry.NewSphere(pt(0, -1000, 0), 1000, marble),
		geometry.NewSphere(pt(0, 2, 0), 2, marble),
	)
}

// NewTwoPerlinSpheresScene creates the Perlin spheres under daylight
func NewTwoPerlinSpheresScene(opts BuildOptions) *World {
	return &World{Root: perlinSpheres(opts), Background: skyBlue}
}
