package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidSettings is returned when render settings cannot produce an image
var ErrInvalidSettings = errors.New("invalid render settings")

// RenderSettings contains everything that shapes a render except the scene contents
type RenderSettings struct {
	Scene          string     `toml:"scene" json:"scene"`                    // Built-in scene ID
	Width          int        `toml:"width" json:"width"`                    // Image width in pixels
	Height         int        `toml:"height" json:"height"`                  // Image height in pixels
	Samples        int        `toml:"samples" json:"samples"`                // Rays per pixel
	MaxDepth       int        `toml:"max_depth" json:"maxDepth"`             // Maximum ray bounce depth
	CameraPosition core.Point `toml:"camera_position" json:"cameraPosition"` // Where the camera sits
	FocusPoint     core.Point `toml:"focus_point" json:"focusPoint"`         // What the camera looks at
	FieldOfView    float64    `toml:"field_of_view" json:"fieldOfView"`      // Vertical field of view in degrees
	DefocusAngle   float64    `toml:"defocus_angle" json:"defocusAngle"`     // Aperture cone angle in degrees, 0 = pinhole
	FocusDistance  float64    `toml:"focus_distance" json:"focusDistance"`   // Distance to the plane in focus, <= 0 = focus point distance
}

// DefaultRenderSettings returns a full HD render of the one sphere scene
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Scene:          "one-sphere",
		Width:          1920,
		Height:         1080,
		Samples:        100,
		MaxDepth:       50,
		CameraPosition: core.NewVec3(0, 0, 0),
		FocusPoint:     core.NewVec3(0, 0, -1),
		FieldOfView:    90,
		DefocusAngle:   0,
		FocusDistance:  10,
	}
}

// Validate reports the first setting that makes rendering impossible
func (s RenderSettings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidSettings, s.Width, s.Height)
	case s.Samples <= 0:
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidSettings, s.Samples)
	case s.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidSettings, s.MaxDepth)
	case s.FieldOfView <= 0 || s.FieldOfView >= 180:
		return fmt.Errorf("%w: field of view %g must be between 0 and 180 degrees", ErrInvalidSettings, s.FieldOfView)
	case s.DefocusAngle < 0:
		return fmt.Errorf("%w: defocus angle %g must not be negative", ErrInvalidSettings, s.DefocusAngle)
	case s.CameraPosition == s.FocusPoint:
		return fmt.Errorf("%w: camera position and focus point coincide", ErrInvalidSettings)
	}
	return nil
}

// ApplyCamera replaces the camera position, focus point and field of view with a scene's preset
func (s *RenderSettings) ApplyCamera(preset scene.CameraPreset) {
	s.CameraPosition = preset.Position
	s.FocusPoint = preset.FocusPoint
	s.FieldOfView = preset.FieldOfView
}
