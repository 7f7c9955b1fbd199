package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads forming an open box
func NewQuadsScene(opts BuildOptions) *World {
	leftRed := material.NewLambertian(core.NewColor(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewColor(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewColor(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewColor(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewColor(0.2, 0.8, 0.8))

	return &World{
		Root: geometry.NewCollection(
			geometry.NewQuad(pt(-3, -2, 5), pt(0, 0, -4), pt(0, 4, 0), leftRed),
			geometry.NewQuad(pt(-2, -2, 0), pt(4, 0, 0), pt(0, 4, 0), backGreen),
			geometry.NewQuad(pt(3, -2, 1), pt(0, 0, 4), pt(0, 4, 0), rightBlue),
			geometry.NewQuad(pt(-2, 3, 1), pt(4, 0, 0), pt(0, 0, 4), upperOrange),
			geometry.NewQuad(pt(-2, -3, 5), pt(4, 0, 0), pt(0, 0, -4), lowerTeal),
		),
		Background: skyBlue,
	}
}

// NewSimpleLightScene creates the Perlin spheres in darkness, lit by one quad light
func NewSimpleLightScene(opts BuildOptions) *World {
	root := perlinSpheres(opts)
	root.Add(geometry.NewQuad(pt(3, 1, -2), pt(2, 0, 0), pt(0, 2, 0), material.NewLight(core.NewColor(4, 4, 4))))
	return &World{Root: root, Background: black}
}
