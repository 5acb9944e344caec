package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/mesh"
	"worldcraft/internal/world"
)

// uvInset is the fraction of a tile trimmed from every side to keep samples
// away from the neighbouring tiles.
const uvInset = 0.1

// faceIndices triangulates a quad as (0,3,2) and (0,2,1).
var faceIndices = [6]uint32{0, 3, 2, 0, 2, 1}

// faceCorners holds the corner offsets from the cell centre for each face, in
// AllDirections order. Both triangles wind outward.
var faceCorners = [6][4]mgl32.Vec3{
	world.DirBackward: {
		{+0.5, +0.5, -0.5}, {+0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, +0.5, -0.5},
	},
	world.DirForward: {
		{+0.5, +0.5, +0.5}, {-0.5, +0.5, +0.5}, {-0.5, -0.5, +0.5}, {+0.5, -0.5, +0.5},
	},
	world.DirRight: {
		{+0.5, +0.5, -0.5}, {+0.5, +0.5, +0.5}, {+0.5, -0.5, +0.5}, {+0.5, -0.5, -0.5},
	},
	world.DirDown: {
		{+0.5, -0.5, -0.5}, {+0.5, -0.5, +0.5}, {-0.5, -0.5, +0.5}, {-0.5, -0.5, -0.5},
	},
	world.DirLeft: {
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, +0.5}, {-0.5, +0.5, +0.5}, {-0.5, +0.5, -0.5},
	},
	world.DirUp: {
		{+0.5, +0.5, +0.5}, {+0.5, +0.5, -0.5}, {-0.5, +0.5, -0.5}, {-0.5, +0.5, +0.5},
	},
}

// DrawFace reports whether the face between a and b is drawn. It only holds
// on solid/transparent boundaries and is symmetric in its arguments.
func DrawFace(a, b world.Block) bool {
	return (a.IsSolid() && b.IsTransparent()) || (a.IsTransparent() && b.IsSolid())
}

// faceUVs returns the corner UVs of a tile, inset on every side.
func faceUVs(r world.UVRect) [4]mgl32.Vec2 {
	left := r.U + uvInset*r.W
	right := r.U + (1-uvInset)*r.W
	top := r.V + uvInset*r.H
	bottom := r.V + (1-uvInset)*r.H
	return [4]mgl32.Vec2{
		{right, top},
		{right, bottom},
		{left, bottom},
		{left, top},
	}
}

// appendFace emits the four corners and six indices of one face around centre.
func appendFace(verts []mesh.Vertex, idx []uint32, d world.Direction, centre mgl32.Vec3, uvs [4]mgl32.Vec2) ([]mesh.Vertex, []uint32) {
	base := uint32(len(verts))
	var pos [4]mgl32.Vec3
	for i, c := range faceCorners[d] {
		pos[i] = centre.Add(c)
	}

	var normals [4]mgl32.Vec3
	for t := 0; t < len(faceIndices); t += 3 {
		i0, i1, i2 := faceIndices[t], faceIndices[t+1], faceIndices[t+2]
		n := pos[i1].Sub(pos[i0]).Cross(pos[i0].Sub(pos[i2])).Normalize()
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}

	for i := range pos {
		verts = append(verts, mesh.Vertex{
			Position: pos[i],
			Normal:   normals[i].Normalize(),
			UV:       uvs[i],
		})
	}
	for _, fi := range faceIndices {
		idx = append(idx, base+fi)
	}
	return verts, idx
}
