package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// sniffLen is the number of leading bytes filetype needs to recognise a format
const sniffLen = 261

var (
	// ErrNotImage is returned when a file's contents are not a recognised image format
	ErrNotImage = errors.New("not an image file")
	// ErrEmptyImage is returned for images with no pixels
	ErrEmptyImage = errors.New("image has zero width or height")
)

// LoadImage loads an image file into an image texture. The path may start with ~.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(filename string) (*texture.Image, error) {
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to expand image path %q: %w", filename, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if err := sniffImage(file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return ImageTexture(img)
}

// sniffImage checks the file header against known image signatures and rewinds the file
func sniffImage(file io.ReadSeeker) error {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read image header: %w", err)
	}
	if !filetype.IsImage(head[:n]) {
		return ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind image file: %w", err)
	}
	return nil
}

// ImageTexture converts a decoded image to a texture, quantizing each pixel to 8 bits per channel
func ImageTexture(img image.Image) (*texture.Image, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.ColorFromRGB8(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return texture.NewImage(width, height, pixels), nil
}

// LoadImageOrDefault loads an image texture, substituting texture.DefaultImage
// when the file is missing or unreadable. The failure is logged, never returned.
func LoadImageOrDefault(filename string, logger core.Logger) *texture.Image {
	img, err := LoadImage(filename)
	if err != nil {
		if logger != nil {
			logger.Printf("Warning: using placeholder texture for %s: %v\n", filename, err)
		}
		return texture.DefaultImage()
	}
	return img
}
