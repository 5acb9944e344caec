package frustum

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"worldcraft/internal/world"
)

// lookDownZ is a camera at the origin looking toward -Z.
func lookDownZ() *Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return FromMatrix(proj.Mul4(view)).WithMargin(0)
}

func box(cx, cy, cz, half float32) world.AABB {
	h := mgl32.Vec3{half, half, half}
	c := mgl32.Vec3{cx, cy, cz}
	return world.AABB{Min: c.Sub(h), Max: c.Add(h)}
}

func TestIntersects(t *testing.T) {
	f := lookDownZ()

	assert.True(t, f.Intersects(box(0, 0, -10, 1)), "straight ahead")
	assert.False(t, f.Intersects(box(0, 0, 10, 1)), "behind")
	assert.False(t, f.Intersects(box(0, 0, -200, 1)), "beyond far plane")
	assert.False(t, f.Intersects(box(50, 0, -10, 1)), "far to the right")
	assert.True(t, f.Intersects(box(6, 0, -10, 1)), "straddling the right plane")
}

func TestMarginInflates(t *testing.T) {
	f := lookDownZ()
	b := box(0, 0, 1.5, 1) // just behind the near plane
	assert.False(t, f.Intersects(b))
	assert.True(t, f.WithMargin(2).Intersects(b))
}

func TestContainsPoint(t *testing.T) {
	f := lookDownZ()
	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -5}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 5}))
}
