package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture maps a surface position to a color. UV coordinates are used by image
// textures, the 3D point by procedural ones.
type Texture interface {
	ColorAt(u, v float64, point core.Point) core.Color
	texture()
}

// Solid is a uniform color
type Solid struct {
	Color core.Color
}

// NewSolid creates a solid color texture
func NewSolid(color core.Color) *Solid {
	return &Solid{Color: color}
}

// ColorAt returns the solid color regardless of UV or position
func (s *Solid) ColorAt(u, v float64, point core.Point) core.Color {
	return s.Color
}

func (*Solid) texture() {}

// Checker is a 3D checkerboard alternating between two colors
type Checker struct {
	Even         core.Color
	Odd          core.Color
	InverseScale float64
}

// NewChecker creates a checkerboard with cells of the given size in world units
func NewChecker(even, odd core.Color, scale float64) *Checker {
	return &Checker{Even: even, Odd: odd, InverseScale: 1.0 / scale}
}

// ColorAt picks Even or Odd from the parity of the cell containing point
func (c *Checker) ColorAt(u, v float64, point core.Point) core.Color {
	x := int(math.Floor(c.InverseScale * point.X))
	y := int(math.Floor(c.InverseScale * point.Y))
	z := int(math.Floor(c.InverseScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

func (*Checker) texture() {}

// Noise is a grey marble-like pattern driven by Perlin turbulence
type Noise struct {
	Perlin *Perlin
	Scale  float64
}

// NewNoise creates a noise texture with its own Perlin lattice drawn from sampler
func NewNoise(scale float64, sampler core.Sampler) *Noise {
	return &Noise{Perlin: NewPerlin(sampler), Scale: scale}
}

// ColorAt returns white scaled by the turbulence at the scaled point
func (n *Noise) ColorAt(u, v float64, point core.Point) core.Color {
	return core.White.Multiply(n.Perlin.Turbulence(point.Multiply(n.Scale), DefaultTurbulenceDepth))
}

func (*Noise) texture() {}
