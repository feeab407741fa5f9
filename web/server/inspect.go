package server

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/chewxy/math32"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material by kind
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		if mat.Texture.Kind == material.TextureCheckered {
			properties["texture"] = "checkered"
			properties["odd"] = hexColor(mat.Texture.Odd)
			properties["even"] = hexColor(mat.Texture.Even)
		} else {
			properties["albedo"] = vecArray(mat.Texture.Odd)
			properties["color"] = hexColor(mat.Texture.Odd)
		}

	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz

	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass

	case material.KindLight:
		properties["emission"] = vecArray(mat.Emission)
		properties["color"] = hexColor(mat.Emission)
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a surface by kind
func extractGeometryInfo(surface *geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if surface == nil {
		return "unknown", properties
	}

	switch surface.Kind {
	case geometry.SurfaceSphere:
		properties["center"] = vecArray(surface.Sphere.Center)
		properties["radius"] = surface.Sphere.Radius
		properties["hollow"] = surface.Sphere.Radius < 0

	case geometry.SurfaceQuad:
		properties["corner"] = vecArray(surface.Quad.Corner)
		properties["u"] = vecArray(surface.Quad.U)
		properties["v"] = vecArray(surface.Quad.V)
		properties["normal"] = vecArray(surface.Quad.Normal)
	}

	return surface.Kind.String(), properties
}

// InspectResult contains information about the surface hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Surface   *geometry.Surface // nil if the hit could not be attributed
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), row 0
// at the top, and returns the first surface hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	// Fixed generator so a thin-lens camera always picks the same lens point
	random := rand.New(rand.NewSource(0))

	s := (float32(pixelX) + 0.5) / float32(width)
	t := (float32(height-1-pixelY) + 0.5) / float32(height)
	ray := sceneObj.Camera.GetRay(s, t, random)

	world := sceneObj.World
	hit, isHit := world.Hit(ray, integrator.ShadowAcneEpsilon, math32.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// World.Hit does not report which surface won; find the one with the same hit
	for i := range world.Surfaces {
		surface := &world.Surfaces[i]
		if surfaceHit, ok := surface.Hit(ray, integrator.ShadowAcneEpsilon, math32.Inf(1)); ok && surfaceHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Surface: surface}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	params, err := parseSceneParams(values)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := parseIntParam(values, "x", -1, 0, params.Width-1)
	if err != nil || pixelX < 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(values, "y", -1, 0, params.Height-1)
	if err != nil || pixelY < 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := scene.NewScene(params.Scene, params.Width, params.Height, params.Seed)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, params.Width, params.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Surface)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.Point.Subtract(sceneObj.Camera.Origin()).Length(),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
