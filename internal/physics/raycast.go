// Package physics answers geometric queries against the voxel grid: block
// picking along a ray and box collision.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/profiling"
	"worldcraft/internal/world"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

var infinity = float32(math.Inf(1))

// RaycastResult is the first selectable cell along a ray.
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int // the cell crossed just before the hit; shares a face with it
	Distance         float32
	Hit              bool
	Block            world.Block
}

// cellAt returns the cell containing p. Cells span [x, x+1).
func cellAt(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()))),
		int(math.Floor(float64(p.Y()))),
		int(math.Floor(float64(p.Z()))),
	}
}

// Raycast walks the cells crossed by the ray from start along direction and
// returns the first selectable one whose span reaches past minDist, up to
// maxDist. Cells are visited in order, one face crossing at a time.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, w *world.World) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	var res RaycastResult
	if direction.Len() == 0 {
		return res
	}
	dir := direction.Normalize()

	cell := cellAt(start)
	prev := cell
	var step [3]int
	var next, delta [3]float32 // distance to the next boundary, distance between boundaries
	for a := 0; a < 3; a++ {
		switch {
		case dir[a] > 0:
			step[a] = 1
			delta[a] = 1 / dir[a]
			next[a] = (float32(cell[a]+1) - start[a]) / dir[a]
		case dir[a] < 0:
			step[a] = -1
			delta[a] = -1 / dir[a]
			next[a] = (start[a] - float32(cell[a])) / -dir[a]
		default:
			delta[a], next[a] = infinity, infinity
		}
	}

	enter := float32(0)
	for enter <= maxDist {
		axis := 0
		if next[1] < next[axis] {
			axis = 1
		}
		if next[2] < next[axis] {
			axis = 2
		}
		exit := next[axis]

		if exit >= minDist {
			cur := w.Cursor(cell[0], cell[1], cell[2])
			if cur.Block().IsSelectable() {
				res.Hit = true
				res.HitPosition = cell
				res.AdjacentPosition = prev
				res.Distance = max(enter, minDist)
				res.Block = cur.Block()
				return res
			}
		}

		prev = cell
		cell[axis] += step[axis]
		enter = exit
		next[axis] += delta[axis]
	}
	return res
}
