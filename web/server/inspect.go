package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Facing       string                 `json:"facing,omitempty"`
	UV           [2]float64             `json:"uv"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult pairs a primary-ray hit with the leaf shape that produced it
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

// inspectPixel casts the unjittered camera ray through the center of pixel (x, y).
// The direction is normalized so the hit's T is a world-space distance.
func inspectPixel(world *scene.World, settings renderer.RenderSettings, x, y int) InspectResult {
	ray := renderer.NewCamera(settings).CenterRay(x, y)
	ray = core.NewRay(ray.Origin, ray.Direction.Normalize())

	shape, hit := findHitShape(world.Root, ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if hit == nil {
		return InspectResult{Hit: false}
	}
	return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
}

// findHitShape descends into collections to find the closest leaf shape hit
func findHitShape(shape geometry.Shape, ray core.Ray, tMin, tMax float64) (geometry.Shape, *material.HitRecord) {
	collection, ok := shape.(*geometry.Collection)
	if !ok {
		if hit, isHit := shape.Hit(ray, tMin, tMax); isHit {
			return shape, hit
		}
		return nil, nil
	}

	var closestShape geometry.Shape
	var closest *material.HitRecord
	for _, object := range collection.Objects {
		if s, hit := findHitShape(object, ray, tMin, tMax); hit != nil {
			closestShape, closest = s, hit
			tMax = hit.T
		}
	}
	return closestShape, closest
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = colorArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = colorArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.Simple:
		textureType, textureProps := extractTextureInfo(m.Texture)
		properties["texture"] = map[string]interface{}{
			"type":       textureType,
			"properties": textureProps,
		}
		return "simple", properties

	case *material.Light:
		properties["emission"] = colorArray(m.Color)
		properties["color"] = hexColor(m.Color.Clamp(0, 1))
		return "light", properties

	default:
		return "unknown", properties
	}
}

func extractTextureInfo(tex texture.Texture) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch t := tex.(type) {
	case *texture.Solid:
		properties["color"] = hexColor(t.Color)
		return "solid", properties

	case *texture.Checker:
		properties["even"] = hexColor(t.Even)
		properties["odd"] = hexColor(t.Odd)
		properties["scale"] = 1 / t.InverseScale
		return "checker", properties

	case *texture.Noise:
		properties["scale"] = t.Scale
		return "noise", properties

	case *texture.Image:
		properties["width"] = t.Width
		properties["height"] = t.Height
		return "image", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Q)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	// Scene samples and render samples do not matter for a single unjittered ray
	inspectReq.Samples = 1
	settings := inspectReq.Settings()

	world := inspectReq.entry.NewWorld(scene.BuildOptions{
		Sampler:  core.NewSeededSampler(inspectReq.Seed),
		AssetDir: s.assetDir,
	})

	result := inspectPixel(world, settings, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Facing:       hit.Facing.String(),
		UV:           [2]float64{hit.U, hit.V},
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func hexColor(c core.Color) string {
	rgb := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
