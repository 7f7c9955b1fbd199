package core

import "math"

// Quaternion is a rotation quaternion with vector part (X, Y, Z) and scalar part W
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion leaves points unchanged
var IdentityQuaternion = Quaternion{W: 1}

// NewQuaternion creates a quaternion from its components
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// QuaternionFromAxisAngle builds a unit quaternion for angle radians about a unit axis
func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	sinHalf, cosHalf := math.Sincos(angle / 2)
	return Quaternion{
		X: axis.X * sinHalf,
		Y: axis.Y * sinHalf,
		Z: axis.Z * sinHalf,
		W: cosHalf,
	}
}

// Inverse returns the conjugate, which is the inverse of a unit quaternion
func (q Quaternion) Inverse() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Multiply returns the Hamilton product q*r
func (q Quaternion) Multiply(r Quaternion) Quaternion {
	return Quaternion{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate applies the rotation to p as q⁻¹·p·q. With this convention a positive
// angle about +Y carries +X towards +Z.
func (q Quaternion) Rotate(p Vec3) Vec3 {
	prime := q.Inverse().Multiply(Quaternion{X: p.X, Y: p.Y, Z: p.Z}).Multiply(q)
	return Vec3{prime.X, prime.Y, prime.Z}
}
