package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	nonEmissive
	RefractionIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Deflect either reflects or refracts, choosing reflection with the Schlick probability
func (d *Dielectric) Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool) {
	var refractionRatio float64
	if hit.Facing == Inward {
		refractionRatio = 1.0 / d.RefractionIndex // entering the material from air
	} else {
		refractionRatio = d.RefractionIndex // leaving the material
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)

	var direction core.Vec3
	if unitDirection.CannotRefract(hit.Normal, refractionRatio) ||
		sampler.Get1D() < Reflectance(cosTheta, d.RefractionIndex) {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	return Deflection{
		// Clear glass absorbs nothing
		Attenuation: core.White,
		Scattered:   core.NewRay(hit.Point, direction),
	}, true
}

func (*Dielectric) material() {}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
