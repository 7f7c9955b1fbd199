package texture

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

const defaultImageGrid = 10

// Image is a texture backed by a decoded raster
type Image struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x], y=0 is the top row
}

// NewImage creates an image texture. len(pixels) must be width*height.
func NewImage(width, height int, pixels []core.Color) *Image {
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// DefaultImage is the placeholder used when an image asset cannot be loaded:
// a 10x10 checkerboard of black and magenta.
func DefaultImage() *Image {
	pixels := make([]core.Color, 0, defaultImageGrid*defaultImageGrid)
	for y := 0; y < defaultImageGrid; y++ {
		for x := 0; x < defaultImageGrid; x++ {
			if (x+y)%2 == 0 {
				pixels = append(pixels, core.Black)
			} else {
				pixels = append(pixels, core.Magenta)
			}
		}
	}
	return NewImage(defaultImageGrid, defaultImageGrid, pixels)
}

// ColorAt samples the nearest pixel. UV is clamped to [0,1] and v=1 is the top row.
func (t *Image) ColorAt(u, v float64, point core.Point) core.Color {
	u = max(0, min(1, u))
	v = 1.0 - max(0, min(1, v))

	// u or v of exactly 1 would index one past the edge
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

func (*Image) texture() {}
