package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"worldcraft/internal/mesh"
)

// gpuBuffer is one uploaded mesh.Buffer: a VAO with its VBO and EBO.
type gpuBuffer struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

func (b *gpuBuffer) upload(s mesh.Snapshot) {
	b.indexCount = int32(len(s.Indices))
	if s.Empty() {
		return
	}
	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.GenBuffers(1, &b.ebo)

		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

		stride := int32(mesh.FloatsPerVertex * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	} else {
		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	}

	packed := mesh.Pack(s.Vertices)
	gl.BufferData(gl.ARRAY_BUFFER, len(packed)*4, gl.Ptr(packed), gl.DYNAMIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*4, gl.Ptr(s.Indices), gl.DYNAMIC_DRAW)
	gl.BindVertexArray(0)
}

func (b *gpuBuffer) draw(mode uint32) {
	if b.vao == 0 || b.indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(mode, b.indexCount, gl.UNSIGNED_INT, 0)
}

func (b *gpuBuffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteBuffers(1, &b.ebo)
		*b = gpuBuffer{}
	}
}

// chunkMesh holds the uploaded solid and liquid geometry of one chunk.
type chunkMesh struct {
	solid  gpuBuffer
	liquid gpuBuffer
}
