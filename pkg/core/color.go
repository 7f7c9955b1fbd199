package core

import "math"

// Color is a linear RGB radiance triple. Channels are unbounded while light is
// accumulated and only brought into [0, 1] for output.
type Color struct {
	R, G, B float64
}

var (
	Black   = Color{0, 0, 0}
	White   = Color{1, 1, 1}
	Magenta = Color{1, 0, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromRGB8 converts 8-bit channels to a linear Color in [0, 1]
func ColorFromRGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise (Hadamard) product used for attenuation
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// GammaCorrect applies gamma 2 correction (square root per channel).
// Negative channels map to zero.
func (c Color) GammaCorrect() Color {
	return Color{linearToGamma(c.R), linearToGamma(c.G), linearToGamma(c.B)}
}

func linearToGamma(v float64) float64 {
	if v > 0 {
		return math.Sqrt(v)
	}
	return 0
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// RGB8 quantizes a color already in [0, 1] to 8 bits per channel with floor(v*255)
func (c Color) RGB8() [3]uint8 {
	return [3]uint8{quantize(c.R), quantize(c.G), quantize(c.B)}
}

func quantize(v float64) uint8 {
	return uint8(math.Floor(max(0, min(1, v)) * 255))
}

// AverageColors returns the arithmetic mean of the samples, the Monte Carlo
// estimate of a pixel's radiance. An empty slice averages to black.
func AverageColors(samples []Color) Color {
	if len(samples) == 0 {
		return Black
	}
	var sum Color
	for _, s := range samples {
		sum = sum.Add(s)
	}
	return sum.Multiply(1.0 / float64(len(samples)))
}

// Luminance returns the perceptual luminance of the color
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}
