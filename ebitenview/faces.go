package ebitenview

import (
	"math"
	"sort"

	"github.com/phanxgames/trolleyyard"
)

// lightDir is the directional light, pointing from the scene toward the light.
var lightDir = trolleyyard.Vec3{X: 5, Y: 10, Z: 7.5}.Normalize()

const (
	ambient     = 0.55 // fraction of the base color kept on faces facing away from the light
	minOpacity  = 0.001
	flatEpsilon = 1e-9
)

// face is one projected quad ready for submission.
type face struct {
	pts   [4][2]float32 // screen coordinates
	depth float64
	color trolleyyard.Color
	alpha float64
}

// boxFace lists the corner indices (into Box3.Corners) and outward normal
// of each box face.
var boxFaces = [6]struct {
	idx    [4]int
	normal trolleyyard.Vec3
}{
	{[4]int{0, 2, 6, 4}, trolleyyard.Vec3{X: -1}},
	{[4]int{1, 5, 7, 3}, trolleyyard.Vec3{X: 1}},
	{[4]int{0, 4, 5, 1}, trolleyyard.Vec3{Y: -1}},
	{[4]int{2, 3, 7, 6}, trolleyyard.Vec3{Y: 1}},
	{[4]int{0, 1, 3, 2}, trolleyyard.Vec3{Z: -1}},
	{[4]int{4, 6, 7, 5}, trolleyyard.Vec3{Z: 1}},
}

// buildFaces projects every visible part face through cam into a
// width×height viewport and returns them sorted far to near.
func buildFaces(parts []*trolleyyard.Part, cam *trolleyyard.Camera, width, height float64, buf []face) []face {
	buf = buf[:0]
	for _, p := range parts {
		m := p.Material
		if m == nil || m.Opacity < minOpacity {
			continue
		}
		box := p.World()
		size := box.Size()
		corners := box.Corners()
		for _, bf := range boxFaces {
			if flatAlong(size, bf.normal) {
				// Zero-thickness panel: keep only the face toward the camera.
				if !facesCamera(bf.normal, corners[bf.idx[0]], cam.Position) {
					continue
				}
			} else if degenerate(size, bf.normal) {
				continue
			} else if !facesCamera(bf.normal, corners[bf.idx[0]], cam.Position) {
				continue
			}

			f := face{alpha: m.Opacity}
			visible := true
			var depth float64
			for i, ci := range bf.idx {
				x, y, d, ok := cam.Project(corners[ci])
				if !ok {
					visible = false
					break
				}
				sx, sy := trolleyyard.NDCToScreen(x, y, width, height)
				f.pts[i] = [2]float32{float32(sx), float32(sy)}
				depth += d
			}
			if !visible {
				continue
			}
			f.depth = depth / 4
			f.color = shade(m.Color, bf.normal)
			buf = append(buf, f)
		}
	}
	sort.SliceStable(buf, func(i, j int) bool {
		return buf[i].depth > buf[j].depth
	})
	return buf
}

// facesCamera reports whether a face with the given outward normal through
// point p is seen from its front side by a camera at eye.
func facesCamera(normal, p, eye trolleyyard.Vec3) bool {
	return normal.Dot(eye.Sub(p)) > 0
}

// flatAlong reports whether the box has no thickness along the normal's axis.
func flatAlong(size, normal trolleyyard.Vec3) bool {
	return math.Abs(size.Dot(normal)) < flatEpsilon
}

// degenerate reports whether a face has zero area, which happens on the
// sides of a zero-thickness panel.
func degenerate(size, normal trolleyyard.Vec3) bool {
	zeros := 0
	for _, v := range [3]float64{size.X, size.Y, size.Z} {
		if math.Abs(v) < flatEpsilon {
			zeros++
		}
	}
	if zeros == 0 {
		return false
	}
	// A flat axis lying within the face plane leaves it with no area.
	return !flatAlong(size, normal)
}

// shade applies ambient plus Lambert lighting for a face normal.
func shade(c trolleyyard.Color, normal trolleyyard.Vec3) trolleyyard.Color {
	lambert := math.Max(0, normal.Dot(lightDir))
	light := ambient + (1-ambient)*lambert
	return c.Shade(1 - light)
}
