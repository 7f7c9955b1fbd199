package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Q        core.Point        // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	D        float64           // Plane equation constant: dot(Normal, p) = D
	W        core.Vec3         // (U × V) / |U × V|², used for planar coordinates
	Material material.Material // Material of the quad
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(q core.Point, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	return &Quad{
		Q:        q,
		U:        u,
		V:        v,
		Normal:   normal,
		D:        normal.Dot(q),
		W:        n.Divide(n.Dot(n)),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := q.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !inInterval(t, tMin, tMax) {
		return nil, false
	}

	// Express the hit point in the quad's own (U, V) frame
	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Q)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		U:        alpha,
		V:        beta,
		Material: q.Material,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

func (*Quad) shape() {}
