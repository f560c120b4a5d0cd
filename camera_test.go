package trolleyyard

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(800, 600)
	if cam.FOV != 75 || cam.Near != 0.1 || cam.Far != 1000 {
		t.Errorf("projection = fov %f near %f far %f, want 75/0.1/1000", cam.FOV, cam.Near, cam.Far)
	}
	if cam.Position != (Vec3{0, 0, 10}) {
		t.Errorf("Position = %v, want (0,0,10)", cam.Position)
	}
	if cam.Target != (Vec3{0, 3, 0}) {
		t.Errorf("Target = %v, want (0,3,0)", cam.Target)
	}
	if !approxEqual(cam.Aspect, 800.0/600.0, epsilon) {
		t.Errorf("Aspect = %f, want %f", cam.Aspect, 800.0/600.0)
	}
}

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		px, py float64
		x, y   float64
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		x, y := ScreenToNDC(tt.px, tt.py, 800, 600)
		if !approxEqual(x, tt.x, epsilon) || !approxEqual(y, tt.y, epsilon) {
			t.Errorf("ScreenToNDC(%v,%v) = (%f,%f), want (%f,%f)", tt.px, tt.py, x, y, tt.x, tt.y)
		}
		px, py := NDCToScreen(x, y, 800, 600)
		if !approxEqual(px, tt.px, 1e-6) || !approxEqual(py, tt.py, 1e-6) {
			t.Errorf("NDCToScreen round trip = (%f,%f), want (%v,%v)", px, py, tt.px, tt.py)
		}
	}
}

func TestCameraCenterRayHitsTarget(t *testing.T) {
	cam := NewCamera(800, 600)
	ray := cam.RayFromNDC(0, 0)
	want := cam.Target.Sub(cam.Position).Normalize()
	if !vecApprox(ray.Dir, want, 1e-9) {
		t.Errorf("center ray dir = %v, want %v", ray.Dir, want)
	}
	if ray.Origin != cam.Position {
		t.Errorf("ray origin = %v, want camera position", ray.Origin)
	}
}

func TestCameraProjectMatchesRay(t *testing.T) {
	cam := NewCamera(1280, 720)
	points := []Vec3{{-2, 4.25, 2.5}, {6.2, 0, 1.1}, {0, 3, 0}, {2, -1, 6}}
	for _, p := range points {
		x, y, depth, ok := cam.Project(p)
		if !ok {
			t.Fatalf("Project(%v) not visible", p)
		}
		ray := cam.RayFromNDC(x, y)
		dist := p.DistanceTo(cam.Position)
		if got := ray.At(dist); !vecApprox(got, p, 1e-6) {
			t.Errorf("ray through Project(%v) reaches %v", p, got)
		}
		if depth <= 0 || depth > dist+1e-9 {
			t.Errorf("depth %f out of range for distance %f", depth, dist)
		}
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCamera(800, 600)
	if _, _, _, ok := cam.Project(Vec3{0, 0, 20}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraResize(t *testing.T) {
	cam := NewCamera(800, 600)
	p := Vec3{3, 3, 0}
	x1, _, _, _ := cam.Project(p)

	cam.Resize(1600, 600)
	if !approxEqual(cam.Aspect, 1600.0/600.0, epsilon) {
		t.Errorf("Aspect = %f after resize", cam.Aspect)
	}
	x2, _, _, _ := cam.Project(p)
	if !approxEqual(x2, x1/2, 1e-9) {
		t.Errorf("NDC x after doubling width = %f, want %f", x2, x1/2)
	}

	cam.Resize(0, 600)
	if !approxEqual(cam.Aspect, 1600.0/600.0, epsilon) {
		t.Error("zero-size resize should be ignored")
	}
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	cam := NewCamera(800, 600)
	r := cam.Position.DistanceTo(cam.Target)
	cam.Orbit(0.5, 0.2)
	if got := cam.Position.DistanceTo(cam.Target); !approxEqual(got, r, 1e-9) {
		t.Errorf("distance after orbit = %f, want %f", got, r)
	}
	cam.Orbit(0, math.Pi)
	if cam.Position.Y >= cam.Target.Y+r {
		t.Error("pitch should be clamped short of the pole")
	}
}

func TestCameraFlyTo(t *testing.T) {
	cam := NewCamera(800, 600)
	dest := Vec3{4, 2, 8}
	cam.FlyTo(dest, 0.5, ease.Linear)
	if !cam.Flying() {
		t.Fatal("Flying = false after FlyTo")
	}
	cam.Update(0.25)
	mid := Vec3{2, 1, 9}
	if !vecApprox(cam.Position, mid, 1e-5) {
		t.Errorf("Position mid-flight = %v, want %v", cam.Position, mid)
	}
	for i := 0; i < 10 && cam.Flying(); i++ {
		cam.Update(0.1)
	}
	if cam.Flying() {
		t.Error("still flying after the duration elapsed")
	}
	if !vecApprox(cam.Position, dest, 1e-5) {
		t.Errorf("Position = %v, want %v", cam.Position, dest)
	}
}
