package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler returns the same value on every draw
type fixedSampler float64

func (f fixedSampler) Get1D() float64 { return float64(f) }

// sequenceSampler replays values in order, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func upHit(m Material) HitRecord {
	return HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		T:        1,
		Facing:   Inward,
		Material: m,
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)
	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFacing Facing
		expectedNormal core.Vec3
	}{
		{"against the normal", core.NewVec3(0, 0, -1), Inward, outward},
		{"with the normal", core.NewVec3(0, 0.5, 1), Outward, outward.Negate()},
		{"perpendicular counts as outward", core.NewVec3(1, 0, 0), Outward, outward.Negate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), outward)
			assert.Equal(t, tt.expectedFacing, hit.Facing)
			assert.Equal(t, tt.expectedNormal, hit.Normal)
		})
	}
}

func TestFacing_String(t *testing.T) {
	assert.Equal(t, "inward", Inward.String())
	assert.Equal(t, "outward", Outward.String())
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		index    float64
		expected float64
	}{
		{"glass", 1.5, 0.04},
		{"water", 1.33, math.Pow(0.33/2.33, 2)},
		{"matched", 1.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Reflectance(1, tt.index), 1e-12)
		})
	}
	assert.InDelta(t, 1.0, Reflectance(0, 1.5), 1e-12, "grazing incidence reflects everything")
}

func TestLambertian_Deflect(t *testing.T) {
	albedo := core.NewColor(0.8, 0.3, 0.3)
	mat := NewLambertian(albedo)
	sampler := newTestSampler()
	hit := upHit(mat)

	for i := 0; i < 100; i++ {
		d, ok := mat.Deflect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
		require.True(t, ok)
		assert.Equal(t, albedo, d.Attenuation)
		assert.Equal(t, hit.Point, d.Scattered.Origin)
		assert.GreaterOrEqual(t, d.Scattered.Direction.Dot(hit.Normal), 0.0)
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	// Draws (0.5, 0.25, 0.5) give the ball sample (0,-0.5,0), which normalizes to
	// exactly -normal
	sampler := &sequenceSampler{values: []float64{0.5, 0.25, 0.5}}
	normal := core.NewVec3(0, 1, 0)
	mat := NewLambertian(core.White)

	d, ok := mat.Deflect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), upHit(mat), sampler)
	require.True(t, ok)
	assert.Equal(t, normal, d.Scattered.Direction)
}

func TestMetal_Deflect(t *testing.T) {
	albedo := core.NewColor(0.8, 0.8, 0.8)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(2, -2, 0))

	mirror := NewMetal(albedo, 0)
	d, ok := mirror.Deflect(ray, upHit(mirror), newTestSampler())
	require.True(t, ok)
	assert.Equal(t, albedo, d.Attenuation)
	assert.InDelta(t, math.Sqrt2/2, d.Scattered.Direction.X, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, d.Scattered.Direction.Y, 1e-12)

	assert.Equal(t, 1.0, NewMetal(albedo, 3).Fuzz)
	assert.Equal(t, 0.0, NewMetal(albedo, -1).Fuzz)
}

func TestMetal_FuzzBelowSurfaceStillDeflects(t *testing.T) {
	fuzzy := NewMetal(core.NewColor(1, 1, 1), 1)
	grazing := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	sampler := newTestSampler()

	below := 0
	for i := 0; i < 200; i++ {
		d, ok := fuzzy.Deflect(grazing, upHit(fuzzy), sampler)
		require.True(t, ok)
		if d.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)) < 0 {
			below++
		}
	}
	assert.Positive(t, below, "grazing fuzzy reflections should sometimes point into the surface")
}

func TestDielectric_Deflect(t *testing.T) {
	glass := NewDielectric(1.5)
	headOn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Draw above the 4% reflectance: refract straight through
	d, ok := glass.Deflect(headOn, upHit(glass), fixedSampler(0.99))
	require.True(t, ok)
	assert.Equal(t, core.White, d.Attenuation)
	assert.InDelta(t, -1.0, d.Scattered.Direction.Y, 1e-12)

	// Draw below the reflectance: reflect back up
	d, ok = glass.Deflect(headOn, upHit(glass), fixedSampler(0.01))
	require.True(t, ok)
	assert.InDelta(t, 1.0, d.Scattered.Direction.Y, 1e-12)
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(glass)
	hit.Facing = Outward

	// Leaving glass at a grazing angle cannot refract whatever the draw
	grazing := core.NewRay(core.NewVec3(-1, 0.2, 0), core.NewVec3(1, -0.2, 0))
	d, ok := glass.Deflect(grazing, hit, fixedSampler(0.999))
	require.True(t, ok)
	assert.Positive(t, d.Scattered.Direction.Y, "reflected back above the surface")
}

func TestSimple_UsesTextureAtHit(t *testing.T) {
	checker := texture.NewChecker(core.NewColor(1, 0, 0), core.NewColor(0, 0, 1), 1)
	mat := NewSimple(checker)

	hit := upHit(mat)
	hit.Point = core.NewVec3(0.5, 0, 0.5)
	d, ok := mat.Deflect(core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0)), hit, newTestSampler())
	require.True(t, ok)
	assert.Equal(t, core.NewColor(1, 0, 0), d.Attenuation)

	hit.Point = core.NewVec3(1.5, 0, 0.5)
	d, _ = mat.Deflect(core.NewRay(core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0)), hit, newTestSampler())
	assert.Equal(t, core.NewColor(0, 0, 1), d.Attenuation)
}

func TestLight_DeflectAndEmit(t *testing.T) {
	color := core.NewColor(4, 4, 4)
	light := NewLight(color)

	_, ok := light.Deflect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), upHit(light), newTestSampler())
	assert.False(t, ok)
	assert.Equal(t, color, light.Emit(0.3, 0.7, core.NewVec3(1, 2, 3)))
}

func TestNonLightMaterialsEmitBlack(t *testing.T) {
	materials := []Material{
		NewLambertian(core.NewColor(0.5, 0.5, 0.5)),
		NewMetal(core.NewColor(0.5, 0.5, 0.5), 0.1),
		NewDielectric(1.5),
		NewSimple(texture.NewSolid(core.White)),
	}
	for _, m := range materials {
		assert.Equal(t, core.Black, m.Emit(0.5, 0.5, core.NewVec3(0, 0, 0)), "%T", m)
	}
}
