package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	nonEmissive
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// Deflect mirrors the ray about the normal and perturbs it by Fuzz.
// A fuzzed ray can end up below the surface; it is still returned as a deflection.
func (m *Metal) Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))
	}

	return Deflection{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, reflected),
	}, true
}

func (*Metal) material() {}
