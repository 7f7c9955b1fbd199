package renderer

import (
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func createTestWorld() *scene.World {
	return &scene.World{
		Root: geometry.NewCollection(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.7, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3)),
		),
		Background: core.NewColor(0.7, 0.8, 1.0),
	}
}

func TestRender_BackgroundOnly(t *testing.T) {
	world := &scene.World{Root: geometry.NewCollection(), Background: core.NewColor(0.25, 0.25, 0.25)}
	settings := testSettings(8, 6)

	raster, stats, err := Render(world, settings, RenderOptions{Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 8, raster.Width)
	require.Equal(t, 6, raster.Height)

	// sqrt(0.25) = 0.5 and floor(0.5*255) = 127
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, [3]uint8{127, 127, 127}, raster.RGBAt(x, y))
		}
	}

	assert.Equal(t, 48, stats.TotalPixels)
	assert.Equal(t, 48*settings.Samples, stats.TotalSamples)
	assert.Equal(t, 8, stats.Columns)
	assert.Positive(t, stats.Workers)
}

func TestRender_SeededIsReproducible(t *testing.T) {
	settings := testSettings(16, 9)

	a, _, err := Render(createTestWorld(), settings, RenderOptions{Seed: 42, NumWorkers: 1})
	require.NoError(t, err)
	b, _, err := Render(createTestWorld(), settings, RenderOptions{Seed: 42, NumWorkers: 4})
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix, "same seed must give the same image regardless of scheduling")
}

func TestRender_HitsSphereInCenter(t *testing.T) {
	settings := testSettings(9, 9)
	raster, _, err := Render(createTestWorld(), settings, RenderOptions{Seed: 7})
	require.NoError(t, err)

	// The sphere is reddish, the sky above is blue
	center := raster.RGBAt(4, 4)
	sky := raster.RGBAt(4, 0)
	assert.Greater(t, center[0], center[2])
	assert.Greater(t, sky[2], sky[0])
}

func TestRender_ProgressReachesOne(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	highest := 0.0

	settings := testSettings(5, 4)
	_, _, err := Render(createTestWorld(), settings, RenderOptions{
		Seed: 3,
		Progress: func(fraction float64) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			assert.True(t, fraction > 0 && fraction <= 1)
			highest = max(highest, fraction)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 20, calls, "20 pixels step the percentage on every pixel")
	assert.Equal(t, 1.0, highest)
}

func TestRender_InvalidSettings(t *testing.T) {
	settings := testSettings(0, 10)
	called := false

	raster, _, err := Render(createTestWorld(), settings, RenderOptions{Progress: func(float64) { called = true }})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Nil(t, raster)
	assert.False(t, called, "no work starts for invalid settings")
}

func TestRender_LogsStartAndFinish(t *testing.T) {
	logger := &recordingLogger{}
	_, _, err := Render(createTestWorld(), testSettings(2, 2), RenderOptions{Seed: 1, Logger: logger})
	require.NoError(t, err)
	assert.Len(t, logger.messages, 2)
}

func TestRaster_ToImage(t *testing.T) {
	raster := NewRaster(3, 2)
	raster.SetRGB(2, 1, [3]uint8{10, 20, 30})

	img := raster.ToImage()
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, [3]uint8{10, 20, 30}, raster.RGBAt(2, 1))
}

func TestColumnSeed(t *testing.T) {
	assert.Equal(t, int64(15), columnSeed(10, 5))
	assert.Equal(t, int64(1), columnSeed(-3, 3), "zero would mean time-seeded")
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, format)
}
