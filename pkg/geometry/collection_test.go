package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_ReturnsClosestHit(t *testing.T) {
	near := material.NewLambertian(core.NewColor(1, 0, 0))
	far := material.NewLambertian(core.NewColor(0, 0, 1))

	// Far object first so the scan has to replace an earlier hit
	world := NewCollection(
		NewSphere(core.NewVec3(0, 0, -5), 1, far),
		NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
	)

	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.T, 1e-9)
	assert.Same(t, near, hit.Material)
}

func TestCollection_TieGoesToFirst(t *testing.T) {
	first := material.NewLambertian(core.NewColor(1, 0, 0))
	second := material.NewLambertian(core.NewColor(0, 1, 0))
	world := NewCollection(
		NewSphere(core.NewVec3(0, 0, -2), 1, first),
		NewSphere(core.NewVec3(0, 0, -2), 1, second),
	)

	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, ok)
	assert.Same(t, first, hit.Material)
}

func TestCollection_Miss(t *testing.T) {
	world := NewCollection()
	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, ok)
	assert.Nil(t, hit)

	world.Add(NewSphere(core.NewVec3(0, 5, 0), 1, nil))
	_, ok = world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, ok)
}

func TestCollection_Nested(t *testing.T) {
	inner := material.NewLambertian(core.NewColor(0, 1, 0))
	world := NewCollection(
		NewSphere(core.NewVec3(0, 0, -10), 1, nil),
		NewCollection(NewSphere(core.NewVec3(0, 0, -3), 1, inner)),
	)

	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.T, 1e-9)
	assert.Same(t, inner, hit.Material)
}
