package trolleyyard

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default perspective parameters.
const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// flyAnim holds active fly-to tweens for the camera position.
type flyAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a perspective camera. Position and Target define the view
// direction; FOV is the vertical field of view in degrees.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64

	// Cached projection basis, recomputed when dirty.
	forward Vec3
	right   Vec3
	up      Vec3
	tanHalf float64
	dirty   bool

	fly *flyAnim
}

// NewCamera creates a camera for a viewport of the given size, positioned
// at (0, 0, 10) and looking at (0, 3, 0).
func NewCamera(width, height float64) *Camera {
	c := &Camera{
		Position: Vec3{0, 0, 10},
		Target:   Vec3{0, 3, 0},
		Up:       Vec3{0, 1, 0},
		FOV:      DefaultFOV,
		Aspect:   1,
		Near:     DefaultNear,
		Far:      DefaultFar,
		dirty:    true,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the aspect ratio and projection for a new viewport size.
// Non-positive sizes are ignored.
func (c *Camera) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
	c.dirty = true
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(p Vec3) {
	c.Position = p
	c.dirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) {
	c.Target = target
	c.dirty = true
}

// Orbit rotates the camera position around its target by yaw and pitch
// radians, keeping the distance. Pitch is clamped short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	d := c.Position.Sub(c.Target)
	r := d.Len()
	if r == 0 {
		return
	}
	theta := math.Atan2(d.X, d.Z) + yaw
	phi := math.Acos(clamp(d.Y/r, -1, 1)) - pitch
	const eps = 0.01
	phi = clamp(phi, eps, math.Pi-eps)
	c.Position = c.Target.Add(Vec3{
		X: r * math.Sin(phi) * math.Sin(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Cos(theta),
	})
	c.dirty = true
}

// FlyTo animates the camera position to p over duration seconds. Call
// Update each frame to advance it.
func (c *Camera) FlyTo(p Vec3, duration float32, easeFn ease.TweenFunc) {
	c.fly = &flyAnim{tweens: [3]*gween.Tween{
		gween.New(float32(c.Position.X), float32(p.X), duration, easeFn),
		gween.New(float32(c.Position.Y), float32(p.Y), duration, easeFn),
		gween.New(float32(c.Position.Z), float32(p.Z), duration, easeFn),
	}}
}

// Flying reports whether a FlyTo animation is in progress.
func (c *Camera) Flying() bool { return c.fly != nil }

// Update advances any FlyTo animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.fly == nil {
		return
	}
	vals := [3]float64{c.Position.X, c.Position.Y, c.Position.Z}
	for i, tw := range c.fly.tweens {
		if c.fly.done[i] {
			continue
		}
		v, finished := tw.Update(dt)
		vals[i] = float64(v)
		c.fly.done[i] = finished
	}
	c.SetPosition(Vec3{vals[0], vals[1], vals[2]})
	if c.fly.done[0] && c.fly.done[1] && c.fly.done[2] {
		c.fly = nil
	}
}

// computeBasis refreshes the cached view basis and projection scale.
func (c *Camera) computeBasis() {
	if !c.dirty {
		return
	}
	c.forward = c.Target.Sub(c.Position).Normalize()
	up := c.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	c.right = c.forward.Cross(up).Normalize()
	c.up = c.right.Cross(c.forward)
	c.tanHalf = math.Tan(c.FOV * math.Pi / 360)
	c.dirty = false
}

// ScreenToNDC converts a pixel coordinate in a viewport of the given size to
// normalized device coordinates: [-1, 1] on both axes, origin at the
// center, Y pointing up.
func ScreenToNDC(px, py, width, height float64) (x, y float64) {
	return (px/width)*2 - 1, -(py/height)*2 + 1
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(x, y, width, height float64) (px, py float64) {
	return (x + 1) / 2 * width, (1 - y) / 2 * height
}

// RayFromNDC returns the ray from the camera through the NDC point (x, y).
func (c *Camera) RayFromNDC(x, y float64) Ray {
	c.computeBasis()
	dir := c.forward.
		Add(c.right.Scale(x * c.tanHalf * c.Aspect)).
		Add(c.up.Scale(y * c.tanHalf))
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// Project maps a world point to NDC. depth is the distance along the view
// direction; ok is false when the point is outside the near/far range.
func (c *Camera) Project(p Vec3) (x, y, depth float64, ok bool) {
	c.computeBasis()
	d := p.Sub(c.Position)
	depth = d.Dot(c.forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	x = d.Dot(c.right) / (depth * c.tanHalf * c.Aspect)
	y = d.Dot(c.up) / (depth * c.tanHalf)
	return x, y, depth, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
