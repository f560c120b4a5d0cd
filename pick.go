package trolleyyard

import "sort"

// Hit is one ray/region intersection.
type Hit struct {
	Region   *Region
	Distance float64
	Point    Vec3
}

// Resolve returns every candidate region whose world bounds intersect the
// ray, nearest first. Ordering is strictly by distance; regions of
// different kinds are never reordered against each other. Ties keep
// candidate order.
func Resolve(ray Ray, candidates []*Region) []Hit {
	var hits []Hit
	for _, r := range candidates {
		if r == nil {
			continue
		}
		t, ok := ray.IntersectBox(r.World())
		if !ok {
			continue
		}
		hits = append(hits, Hit{Region: r, Distance: t, Point: ray.At(t)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Resolver maps pointer coordinates to hits through a camera.
type Resolver struct {
	Camera *Camera
}

// Pick casts a ray through the NDC point (x, y) and resolves it against candidates.
func (r Resolver) Pick(x, y float64, candidates []*Region) []Hit {
	if r.Camera == nil || len(candidates) == 0 {
		return nil
	}
	return Resolve(r.Camera.RayFromNDC(x, y), candidates)
}

// PickScreen converts a pixel coordinate in a width×height viewport to NDC and calls Pick.
func (r Resolver) PickScreen(px, py, width, height float64, candidates []*Region) []Hit {
	if width <= 0 || height <= 0 {
		return nil
	}
	x, y := ScreenToNDC(px, py, width, height)
	return r.Pick(x, y, candidates)
}
