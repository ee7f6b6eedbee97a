package server

import (
	"net/http"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse describes what the ray through one pixel hit
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Point        core.Vec3              `json:"point"`
	Normal       core.Vec3              `json:"normal"`
	Distance     float32                `json:"distance"`
	Color        core.Vec3              `json:"color"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect casts the ray through the centre of pixel (x, y), y counted from the top
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	query := r.URL.Query()
	if query.Get("x") == "" || query.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	x, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	u := (float32(x) + 0.5) / float32(req.Width)
	v := (float32(req.Height-1-y) + 0.5) / float32(req.Height)
	writeJSON(w, http.StatusOK, inspectRay(sceneObj, sceneObj.Camera.GetRay(u, v)))
}

// inspectRay reports the nearest hit along ray and the colour the scene gives it
func inspectRay(sceneObj *scene.Scene, ray core.Ray) InspectResponse {
	response := InspectResponse{Color: sceneObj.Color(ray)}

	shape, hit := nearestShape(sceneObj.Root, ray, 0, scene.MaxT)
	if hit == nil {
		return response
	}

	response.Hit = true
	response.Point = hit.Point
	response.Normal = hit.Normal
	response.Distance = hit.T * ray.Direction.Len()
	response.GeometryType, response.Properties = describeShape(shape)
	return response
}

// nearestShape descends into shape lists to find the leaf shape that owns the nearest hit
func nearestShape(shape core.Shape, ray core.Ray, tMin, tMax float32) (core.Shape, *core.HitRecord) {
	list, ok := shape.(*geometry.ShapeList)
	if !ok {
		if hit, ok := shape.Hit(ray, tMin, tMax); ok {
			return shape, hit
		}
		return nil, nil
	}

	var nearest core.Shape
	var nearestHit *core.HitRecord
	closest := tMax
	for _, member := range list.Shapes() {
		if leaf, hit := nearestShape(member, ray, tMin, closest); hit != nil {
			nearest, nearestHit, closest = leaf, hit, hit.T
		}
	}
	return nearest, nearestHit
}

// describeShape returns a type name and the defining properties of a shape
func describeShape(shape core.Shape) (string, map[string]interface{}) {
	switch s := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{
			"center": s.Center,
			"radius": s.Radius,
		}
	case *geometry.Plane:
		return "plane", map[string]interface{}{
			"point":  s.Point,
			"normal": s.Normal,
		}
	case *geometry.Triangle:
		return "triangle", map[string]interface{}{
			"v0":     s.V0,
			"v1":     s.V1,
			"v2":     s.V2,
			"normal": s.GetNormal(),
		}
	default:
		return "unknown", nil
	}
}
