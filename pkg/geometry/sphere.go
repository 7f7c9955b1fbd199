package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inInterval(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inInterval(root, tMin, tMax) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

func (*Sphere) shape() {}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis, v from the south pole (0) to the north pole (1).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Atan2(p.Z, p.X) + math.Pi
	phi := math.Asin(max(-1, min(1, p.Y))) + math.Pi/2
	return 1 - theta/(2*math.Pi), phi / math.Pi
}

// inInterval reports whether t lies in the half-open interval [tMin, tMax)
func inInterval(t, tMin, tMax float64) bool {
	return t >= tMin && t < tMax
}
