package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Light is an emissive surface. It absorbs every ray that reaches it.
type Light struct {
	Color core.Color // Emitted radiance, may exceed 1
}

// NewLight creates a new light material
func NewLight(color core.Color) *Light {
	return &Light{Color: color}
}

// Deflect always ends the path
func (l *Light) Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool) {
	return Deflection{}, false
}

// Emit returns the configured color everywhere on the surface
func (l *Light) Emit(u, v float64, point core.Point) core.Color {
	return l.Color
}

func (*Light) material() {}
