package renderer

import (
	"image"
	"image/color"
	"sync"
)

// Raster is the rendered image as 8-bit RGB triples, row-major from the top-left.
// Pixel writes are serialized so workers can share one raster.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel

	mu sync.Mutex
}

// NewRaster creates a black raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// SetRGB stores the pixel at column x, row y
func (r *Raster) SetRGB(x, y int, rgb [3]uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offset := (y*r.Width + x) * 3
	copy(r.Pix[offset:offset+3], rgb[:])
}

// RGBAt returns the pixel at column x, row y
func (r *Raster) RGBAt(x, y int) [3]uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	offset := (y*r.Width + x) * 3
	return [3]uint8{r.Pix[offset], r.Pix[offset+1], r.Pix[offset+2]}
}

// ToImage copies the raster into an opaque image for the standard encoders
func (r *Raster) ToImage() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			offset := (y*r.Width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: r.Pix[offset], G: r.Pix[offset+1], B: r.Pix[offset+2], A: 255})
		}
	}
	return img
}
