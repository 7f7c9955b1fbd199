package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Collection is a group of shapes tested one after another
type Collection struct {
	Objects []Shape
}

// NewCollection creates a collection of shapes
func NewCollection(objects ...Shape) *Collection {
	return &Collection{Objects: objects}
}

// Add appends shapes to the collection
func (c *Collection) Add(objects ...Shape) {
	c.Objects = append(c.Objects, objects...)
}

// Hit returns the closest hit among all objects. Each hit narrows tMax, so of two
// objects hit at exactly the same t the earlier one wins.
func (c *Collection) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range c.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

func (*Collection) shape() {}
