package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/world"
)

// Collides reports whether box overlaps the bounding box of any solid cell.
// Liquids and air never collide.
func Collides(w *world.World, box world.AABB) bool {
	minX := int(math.Floor(float64(box.Min.X())))
	maxX := int(math.Floor(float64(box.Max.X())))
	minY := int(math.Floor(float64(box.Min.Y())))
	maxY := int(math.Floor(float64(box.Max.Y())))
	minZ := int(math.Floor(float64(box.Min.Z())))
	maxZ := int(math.Floor(float64(box.Max.Z())))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				cur := w.Cursor(x, y, z)
				if !cur.Block().IsSolid() {
					continue
				}
				if box.Intersects(cur.BoundingBox()) {
					return true
				}
			}
		}
	}
	return false
}

// BoxAt returns an upright box of the given half width and height whose
// base centre is feet.
func BoxAt(feet mgl32.Vec3, halfWidth, height float32) world.AABB {
	return world.AABB{
		Min: mgl32.Vec3{feet.X() - halfWidth, feet.Y(), feet.Z() - halfWidth},
		Max: mgl32.Vec3{feet.X() + halfWidth, feet.Y() + height, feet.Z() + halfWidth},
	}
}

// FindGroundLevel returns the top of the highest solid cell in column (x,z)
// at or below fromY, or ok == false if the column is empty.
func FindGroundLevel(w *world.World, x, z float32, fromY int) (top float32, ok bool) {
	bx := int(math.Floor(float64(x)))
	bz := int(math.Floor(float64(z)))
	for by := fromY; by >= 0; by-- {
		if w.Block(bx, by, bz).IsSolid() {
			return float32(by + 1), true
		}
	}
	return 0, false
}
