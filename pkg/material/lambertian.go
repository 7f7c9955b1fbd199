package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	nonEmissive
	Albedo core.Color // Fraction of light reflected per channel
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Deflect scatters towards normal + random unit vector, which gives a cosine-weighted
// distribution around the normal
func (l *Lambertian) Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool) {
	return Deflection{
		Attenuation: l.Albedo,
		Scattered:   core.NewRay(hit.Point, diffuseDirection(hit.Normal, sampler)),
	}, true
}

func (*Lambertian) material() {}

// diffuseDirection returns normal + random unit vector, or the bare normal when
// the two nearly cancel
func diffuseDirection(normal core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := normal.Add(core.RandomUnitVector(sampler))
	if direction.IsNearZero() {
		return normal
	}
	return direction
}
