package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// recordingLogger keeps every formatted message
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

func writeTestImage(t *testing.T, path string, encode func(f *os.File, img image.Image) error) {
	t.Helper()

	// Top-left white, top-right red, bottom-left green, bottom-right blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
}

func TestLoadImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(f *os.File, img image.Image) error
	}{
		{"png", "test.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"bmp", "test.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeTestImage(t, path, tt.encode)

			img, err := LoadImage(path)
			require.NoError(t, err)
			assert.Equal(t, 2, img.Width)
			assert.Equal(t, 2, img.Height)
			assert.Equal(t, []core.Color{
				core.NewColor(1, 1, 1),
				core.NewColor(1, 0, 0),
				core.NewColor(0, 1, 0),
				core.NewColor(0, 0, 1),
			}, img.Pixels)

			// v=1 is the top row
			origin := core.NewVec3(0, 0, 0)
			assert.Equal(t, core.NewColor(1, 0, 0), img.ColorAt(0.9, 0.9, origin))
			assert.Equal(t, core.NewColor(0, 1, 0), img.ColorAt(0.1, 0.1, origin))
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	notImage := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(notImage, []byte(strings.Repeat("not an image ", 40)), 0o644))
	_, err = LoadImage(notImage)
	assert.ErrorIs(t, err, ErrNotImage)

	// Valid PNG signature but truncated body
	truncated := filepath.Join(dir, "truncated.png")
	require.NoError(t, os.WriteFile(truncated, []byte("\x89PNG\r\n\x1a\n\x00\x00"), 0o644))
	_, err = LoadImage(truncated)
	assert.Error(t, err)
}

func TestImageTexture_Empty(t *testing.T) {
	_, err := ImageTexture(image.NewRGBA(image.Rect(0, 0, 0, 4)))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestLoadImageOrDefault(t *testing.T) {
	logger := &recordingLogger{}
	img := LoadImageOrDefault(filepath.Join(t.TempDir(), "earth.jpg"), logger)

	assert.Equal(t, texture.DefaultImage(), img)
	assert.Len(t, logger.messages, 1)

	path := filepath.Join(t.TempDir(), "ok.png")
	writeTestImage(t, path, func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	loaded := LoadImageOrDefault(path, logger)
	assert.Equal(t, 2, loaded.Width)
	assert.Len(t, logger.messages, 1, "no warning for a good file")
}
