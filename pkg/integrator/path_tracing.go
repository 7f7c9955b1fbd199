package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowAcneEpsilon is the minimum hit distance. It keeps a scattered ray from
// re-hitting the surface it just left because of floating point error.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing. Light sources are
// only found when a bounce happens to hit them.
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *scene.World, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	hit, isHit := world.Root.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return world.Background
	}

	emitted := hit.Material.Emit(hit.U, hit.V, hit.Point)

	deflection, deflected := hit.Material.Deflect(ray, *hit, sampler)
	if !deflected {
		// Material absorbed the ray, only return emitted light
		return emitted
	}

	incoming := pt.RayColor(deflection.Scattered, world, depth-1, sampler)
	return emitted.Add(deflection.Attenuation.MultiplyColor(incoming))
}
