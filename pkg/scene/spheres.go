package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// groundSphere is the huge sphere the small-scale scenes stand on
func groundSphere(mat material.Material) *geometry.Sphere {
	return geometry.NewSphere(pt(0, -100.5, -1), 100, mat)
}

// NewOneSphereScene creates a single blue sphere on a blue ground
func NewOneSphereScene(opts BuildOptions) *World {
	blue := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	return &World{
		Root: geometry.NewCollection(
			geometry.NewSphere(pt(0, 0, -1), 0.5, blue),
			groundSphere(blue),
		),
		Background: skyBlue,
	}
}

// threeSpheres lays out the ground and a left/center/right row of spheres
func threeSpheres(center, left, right material.Material) *geometry.Collection {
	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	return geometry.NewCollection(
		groundSphere(ground),
		geometry.NewSphere(pt(0, 0, -1), 0.5, center),
		geometry.NewSphere(pt(-1, 0, -1), 0.5, left),
		geometry.NewSphere(pt(1, 0, -1), 0.5, right),
	)
}

// NewMetalSpheresScene creates a diffuse sphere between two metal ones
func NewMetalSpheresScene(opts BuildOptions) *World {
	return &World{
		Root: threeSpheres(
			material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)),
			material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3),
			material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0),
		),
		Background: skyBlue,
	}
}

// NewGlassSpheresScene creates two glass spheres and a rough gold one
func NewGlassSpheresScene(opts BuildOptions) *World {
	glass := material.NewDielectric(1.5)
	return &World{
		Root:       threeSpheres(glass, glass, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)),
		Background: skyBlue,
	}
}

// NewThreeSpheresScene creates glass, diffuse and mirror spheres
func NewThreeSpheresScene(opts BuildOptions) *World {
	return &World{
		Root: threeSpheres(
			material.NewLambertian(core.NewColor(0.1, 0.2, 0.5)),
			material.NewDielectric(1.5),
			material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0),
		),
		Background: skyBlue,
	}
}

// NewHollowGlassSphereScene is the three spheres scene with a bubble inside the glass.
// The inner sphere has a negative radius so its normals point inwards.
func NewHollowGlassSphereScene(opts BuildOptions) *World {
	glass := material.NewDielectric(1.5)
	root := threeSpheres(
		material.NewLambertian(core.NewColor(0.1, 0.2, 0.5)),
		glass,
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0),
	)
	root.Add(geometry.NewSphere(pt(-1, 0, -1), -0.4, glass))
	return &World{Root: root, Background: skyBlue}
}

// NewRedAndBlueScene creates two touching spheres for checking the field of view
func NewRedAndBlueScene(opts BuildOptions) *World {
	r := math.Cos(math.Pi / 4)
	return &World{
		Root: geometry.NewCollection(
			geometry.NewSphere(pt(-r, 0, -1), r, material.NewLambertian(core.NewColor(0, 0, 1))),
			geometry.NewSphere(pt(r, 0, -1), r, material.NewLambertian(core.NewColor(1, 0, 0))),
		),
		Background: skyBlue,
	}
}

// NewManySpheresScene scatters small random spheres over a 22x22 grid around
// three large feature spheres. Placement and materials come from opts.Sampler.
func NewManySpheresScene(opts BuildOptions) *World {
	sampler := opts.Sampler
	world := geometry.NewCollection(
		geometry.NewSphere(pt(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	)

	glass := material.NewDielectric(1.5)
	clearing := pt(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := pt(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.65:
				albedo := randomColor(sampler, 0, 1).MultiplyColor(randomColor(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.80:
				mat = material.NewMetal(randomColor(sampler, 0.5, 1), 0.5*sampler.Get1D())
			default:
				mat = glass
			}
			world.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	world.Add(
		geometry.NewSphere(pt(0, 1, 0), 1, glass),
		geometry.NewSphere(pt(-4, 1, 0), 1, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(pt(4, 1, 0), 1, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	return &World{Root: world, Background: skyBlue}
}

func randomColor(sampler core.Sampler, lo, hi float64) core.Color {
	v := core.RandomVec3InRange(sampler, lo, hi)
	return core.NewColor(v.X, v.Y, v.Z)
}
