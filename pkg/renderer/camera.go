package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// worldUp fixes the camera's roll
var worldUp = core.NewVec3(0, 1, 0)

// Camera generates primary rays for pixels
type Camera struct {
	center        core.Point
	pixel00       core.Point // Center of the top-left pixel
	pixelDeltaU   core.Vec3  // Offset to the next pixel to the right
	pixelDeltaV   core.Vec3  // Offset to the next pixel down
	defocusAngle  float64
	defocusDiskU  core.Vec3
	defocusDiskV  core.Vec3
	focusDistance float64
}

// NewCamera builds a camera from the view settings. Settings are expected to be
// valid; a camera looking straight up or down has no defined orientation.
func NewCamera(settings RenderSettings) *Camera {
	center := settings.CameraPosition
	toCamera := center.Subtract(settings.FocusPoint)

	focusDistance := settings.FocusDistance
	if focusDistance <= 0 {
		focusDistance = toCamera.Length()
	}

	// Orthonormal basis: w points back from the focus point, u right, v up
	w := toCamera.Normalize()
	u := worldUp.Cross(w).Normalize()
	v := w.Cross(u)

	theta := degreesToRadians(settings.FieldOfView)
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(settings.Width) / float64(settings.Height)

	// Image rows run downwards, so the vertical edge points along -v
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(settings.Width))
	pixelDeltaV := viewportV.Divide(float64(settings.Height))

	upperLeft := center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(degreesToRadians(settings.DefocusAngle)/2)

	return &Camera{
		center:        center,
		pixel00:       pixel00,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
		defocusAngle:  settings.DefocusAngle,
		defocusDiskU:  u.Multiply(defocusRadius),
		defocusDiskV:  v.Multiply(defocusRadius),
		focusDistance: focusDistance,
	}
}

// GetRay returns a ray through a random point in pixel (i, j), where i is the
// column and j the row counted from the top. With a defocus angle the origin is
// also spread over the lens disk.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	pixelSample := c.PixelCenter(i, j).
		Add(c.pixelDeltaU.Multiply(sampler.Get1D() - 0.5)).
		Add(c.pixelDeltaV.Multiply(sampler.Get1D() - 0.5))

	origin := c.center
	if c.defocusAngle > 0 {
		p := core.RandomInUnitDisk(sampler)
		origin = c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// PixelCenter returns the world position of the center of pixel (i, j) on the focus plane
func (c *Camera) PixelCenter(i, j int) core.Point {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// CenterRay returns the unjittered pinhole ray through the middle of pixel (i, j)
func (c *Camera) CenterRay(i, j int) core.Ray {
	return core.NewRay(c.center, c.PixelCenter(i, j).Subtract(c.center))
}

// FocusDistance returns the distance from the camera to the plane in perfect focus
func (c *Camera) FocusDistance() float64 {
	return c.focusDistance
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
