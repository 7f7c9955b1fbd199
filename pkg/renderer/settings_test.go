package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestDefaultRenderSettings(t *testing.T) {
	s := DefaultRenderSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 1920, s.Width)
	assert.Equal(t, 1080, s.Height)
	assert.Equal(t, 100, s.Samples)
	assert.Equal(t, 50, s.MaxDepth)
	assert.Equal(t, 90.0, s.FieldOfView)
	assert.Equal(t, 10.0, s.FocusDistance)
}

func TestRenderSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *RenderSettings)
		valid  bool
	}{
		{"defaults", func(s *RenderSettings) {}, true},
		{"zero depth renders black", func(s *RenderSettings) { s.MaxDepth = 0 }, true},
		{"zero width", func(s *RenderSettings) { s.Width = 0 }, false},
		{"negative height", func(s *RenderSettings) { s.Height = -1 }, false},
		{"zero samples", func(s *RenderSettings) { s.Samples = 0 }, false},
		{"negative depth", func(s *RenderSettings) { s.MaxDepth = -1 }, false},
		{"flat field of view", func(s *RenderSettings) { s.FieldOfView = 0 }, false},
		{"straight angle field of view", func(s *RenderSettings) { s.FieldOfView = 180 }, false},
		{"negative defocus", func(s *RenderSettings) { s.DefocusAngle = -1 }, false},
		{"camera on focus point", func(s *RenderSettings) { s.FocusPoint = s.CameraPosition }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultRenderSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestRenderSettings_ApplyCamera(t *testing.T) {
	entry, err := scene.Lookup("cornell-box")
	assert.NoError(t, err)

	s := DefaultRenderSettings()
	s.ApplyCamera(entry.Camera)

	assert.Equal(t, core.NewVec3(278, 278, -800), s.CameraPosition)
	assert.Equal(t, core.NewVec3(278, 278, 0), s.FocusPoint)
	assert.Equal(t, 40.0, s.FieldOfView)
	assert.Equal(t, 1920, s.Width, "image settings are untouched")
}
