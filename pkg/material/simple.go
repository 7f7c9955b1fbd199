package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Simple is a diffuse material whose albedo comes from a texture
type Simple struct {
	nonEmissive
	Texture texture.Texture
}

// NewSimple creates a textured diffuse material
func NewSimple(tex texture.Texture) *Simple {
	return &Simple{Texture: tex}
}

// Deflect scatters like Lambertian, attenuating by the texture color at the hit
func (s *Simple) Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool) {
	return Deflection{
		Attenuation: s.Texture.ColorAt(hit.U, hit.V, hit.Point),
		Scattered:   core.NewRay(hit.Point, diffuseDirection(hit.Normal, sampler)),
	}, true
}

func (*Simple) material() {}
