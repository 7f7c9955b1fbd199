package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellBoxSize is the standard 555 unit Cornell box edge
const cornellBoxSize = 555.0

// cornellWalls creates the five walls and the ceiling light of a Cornell box.
// The box is open towards -Z where the camera sits.
func cornellWalls() (*geometry.Collection, *material.Lambertian) {
	red := material.NewLambertian(core.NewColor(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewColor(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewColor(0.12, 0.45, 0.15))
	light := material.NewLight(core.NewColor(15, 15, 15))

	s := cornellBoxSize
	walls := geometry.NewCollection(
		// Right wall (green) at x=555
		geometry.NewQuad(pt(s, 0, 0), pt(0, s, 0), pt(0, 0, s), green),
		// Left wall (red) at x=0
		geometry.NewQuad(pt(0, 0, 0), pt(0, s, 0), pt(0, 0, s), red),
		// Ceiling light, just below the ceiling
		geometry.NewQuad(pt(343, 554, 332), pt(-130, 0, 0), pt(0, 0, -105), light),
		// Floor
		geometry.NewQuad(pt(0, 0, 0), pt(s, 0, 0), pt(0, 0, s), white),
		// Ceiling
		geometry.NewQuad(pt(s, s, s), pt(-s, 0, 0), pt(0, 0, -s), white),
		// Back wall
		geometry.NewQuad(pt(0, 0, s), pt(s, 0, 0), pt(0, s, 0), white),
	)
	return walls, white
}

// NewCornellBoxScene creates the classic empty Cornell box
func NewCornellBoxScene(opts BuildOptions) *World {
	walls, _ := cornellWalls()
	return &World{Root: walls, Background: black}
}

// NewCornellBoxTwoBoxesScene adds a tall and a short block, each turned about
// the vertical axis, to the Cornell box. A positive angle turns +X towards +Z,
// so the tall block faces left and the short one right.
func NewCornellBoxTwoBoxesScene(opts BuildOptions) *World {
	walls, white := cornellWalls()
	up := core.NewVec3(0, 1, 0)

	walls.Add(
		geometry.NewOrientedBox(pt(0, 0, 0), pt(165, 330, 165),
			core.QuaternionFromAxisAngle(up, degreesToRadians(-15)), core.NewVec3(265, 0, 295), white),
		geometry.NewOrientedBox(pt(0, 0, 0), pt(165, 165, 165),
			core.QuaternionFromAxisAngle(up, degreesToRadians(18)), core.NewVec3(130, 0, 65), white),
	)

	return &World{Root: walls, Background: black}
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
