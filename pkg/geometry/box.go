package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox creates the axis-aligned box spanning the two opposite corners a and b,
// built from six quads with outward-facing normals
func NewBox(a, b core.Point, mat material.Material) *Collection {
	return NewOrientedBox(a, b, core.IdentityQuaternion, core.NewVec3(0, 0, 0), mat)
}

// NewOrientedBox creates a box spanning corners a and b, rotates it about the
// origin with rotation and then moves it by offset. Boxes meant to spin in place
// should be built at the origin and placed with offset.
func NewOrientedBox(a, b core.Point, rotation core.Quaternion, offset core.Vec3, mat material.Material) *Collection {
	lo := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	hi := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := rotation.Rotate(core.NewVec3(hi.X-lo.X, 0, 0))
	dy := rotation.Rotate(core.NewVec3(0, hi.Y-lo.Y, 0))
	dz := rotation.Rotate(core.NewVec3(0, 0, hi.Z-lo.Z))

	place := func(p core.Point) core.Point {
		return rotation.Rotate(p).Add(offset)
	}

	// Each face is a corner plus two edges ordered so U × V points out of the box
	return NewCollection(
		NewQuad(place(core.NewVec3(lo.X, lo.Y, hi.Z)), dx, dy, mat),          // front (+Z)
		NewQuad(place(core.NewVec3(hi.X, lo.Y, hi.Z)), dz.Negate(), dy, mat), // right (+X)
		NewQuad(place(core.NewVec3(hi.X, lo.Y, lo.Z)), dx.Negate(), dy, mat), // back (-Z)
		NewQuad(place(core.NewVec3(lo.X, lo.Y, lo.Z)), dz, dy, mat),          // left (-X)
		NewQuad(place(core.NewVec3(lo.X, hi.Y, hi.Z)), dx, dz.Negate(), mat), // top (+Y)
		NewQuad(place(core.NewVec3(lo.X, lo.Y, lo.Z)), dx, dz, mat),          // bottom (-Y)
	)
}
