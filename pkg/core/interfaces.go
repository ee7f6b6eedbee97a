package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T      float32 // Parameter t along the ray
	Point  Vec3    // Point of intersection, equal to ray.At(T)
	Normal Vec3    // Unit surface normal, oriented by the shape's convention
}

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection with t in the open interval (tMin, tMax).
type Shape interface {
	Hit(ray Ray, tMin, tMax float32) (*HitRecord, bool)
}

// Camera maps normalized image-plane coordinates to world-space rays
type Camera interface {
	GetRay(u, v float32) Ray
}

// Scene is the read-only view of a scene the renderer needs.
// Implementations must be safe for concurrent use by multiple goroutines.
type Scene interface {
	GetCamera() Camera
	Color(ray Ray) Vec3
}
