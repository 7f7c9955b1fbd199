package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material decides how light leaves a surface. The set of materials is closed:
// Lambertian, Metal, Dielectric, Simple and Light.
type Material interface {
	// Deflect picks an outgoing ray for an incoming one. It reports false when the
	// surface absorbs the ray and the path ends.
	Deflect(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (Deflection, bool)

	// Emit returns the radiance given off by the surface at the hit position
	Emit(u, v float64, point core.Point) core.Color

	material()
}

// Deflection is a material's chosen outgoing ray and the attenuation applied to
// the light carried back along it
type Deflection struct {
	Attenuation core.Color
	Scattered   core.Ray
}

// Facing tells which side of a surface a ray arrived from
type Facing int

const (
	// Inward means the ray hit the front face, travelling against the outward normal
	Inward Facing = iota
	// Outward means the ray hit the back face, leaving the object
	Outward
)

func (f Facing) String() string {
	switch f {
	case Inward:
		return "inward"
	case Outward:
		return "outward"
	default:
		return "unknown"
	}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Point // Point of intersection
	Normal   core.Vec3  // Unit normal, always opposing the incoming ray
	T        float64    // Parameter t along the ray
	U, V     float64    // Surface coordinates for texture lookup
	Facing   Facing     // Which side of the surface was hit
	Material Material   // Shared with the scene, never copied per hit
}

// SetFaceNormal sets the normal vector and determines which side was hit.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	if ray.Direction.Dot(outwardNormal) < 0 {
		h.Facing = Inward
		h.Normal = outwardNormal
	} else {
		h.Facing = Outward
		h.Normal = outwardNormal.Negate()
	}
}

// nonEmissive supplies the black emission shared by every material except Light
type nonEmissive struct{}

func (nonEmissive) Emit(u, v float64, point core.Point) core.Color {
	return core.Black
}
