// Package frustum implements the camera visibility test used to cull chunks.
package frustum

import (
	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/world"
)

// DefaultMargin inflates boxes before testing, in blocks.
const DefaultMargin float32 = 1.0

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a projection*view matrix.
type Frustum struct {
	planes [6]plane
	margin float32
}

var _ world.Frustum = (*Frustum)(nil)

// FromMatrix extracts the planes of clip = projection * view.
func FromMatrix(clip mgl32.Mat4) *Frustum {
	return &Frustum{planes: extractPlanes(clip), margin: DefaultMargin}
}

// WithMargin returns a copy that inflates boxes by m on every side.
func (f *Frustum) WithMargin(m float32) *Frustum {
	out := *f
	out.margin = m
	return &out
}

// extractPlanes returns left, right, bottom, top, near, far as w ± x/y/z rows
// of clip. Normals point inward.
func extractPlanes(clip mgl32.Mat4) [6]plane {
	w := clip.Row(3)
	var pl [6]plane
	for i := 0; i < 3; i++ {
		r := clip.Row(i)
		pl[2*i] = planeOf(w.Add(r))
		pl[2*i+1] = planeOf(w.Sub(r))
	}
	return pl
}

// planeOf normalizes v so the plane distance is in world units.
func planeOf(v mgl32.Vec4) plane {
	l := v.Vec3().Len()
	if l == 0 {
		return plane{v[0], v[1], v[2], v[3]}
	}
	return plane{v[0] / l, v[1] / l, v[2] / l, v[3] / l}
}

// Intersects reports whether any part of box may be visible.
func (f *Frustum) Intersects(box world.AABB) bool {
	m := mgl32.Vec3{f.margin, f.margin, f.margin}
	min, max := box.Min.Sub(m), box.Max.Add(m)
	for _, p := range f.planes {
		// Select the positive vertex for this plane normal
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		// If positive vertex is outside, box is outside
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside all six planes.
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.planes {
		if pl.a*p.X()+pl.b*p.Y()+pl.c*p.Z()+pl.d < 0 {
			return false
		}
	}
	return true
}
