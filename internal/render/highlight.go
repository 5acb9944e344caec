package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/profiling"
)

// cubeEdges are the twelve edges of a unit cube centred on the origin.
var cubeEdges = []float32{
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// Highlight outlines the targeted cell.
type Highlight struct {
	shader   *Shader
	vao, vbo uint32
}

// NewHighlight compiles the outline shader and uploads the cube edges.
func NewHighlight() (*Highlight, error) {
	shader, err := NewShader(highlightVertexShader, highlightFragmentShader)
	if err != nil {
		return nil, err
	}
	h := &Highlight{shader: shader}

	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return h, nil
}

// Draw outlines cell (x,y,z), which spans [x,x+1) on each axis.
func (h *Highlight) Draw(cell [3]int, view, projection mgl32.Mat4) {
	defer profiling.Track("render.Highlight")()

	h.shader.Use()
	h.shader.SetMatrix4("projection", &projection[0])
	h.shader.SetMatrix4("view", &view[0])

	model := mgl32.Translate3D(
		float32(cell[0])+0.5,
		float32(cell[1])+0.5,
		float32(cell[2])+0.5,
	).Mul4(mgl32.Scale3D(1.01, 1.01, 1.01))
	h.shader.SetMatrix4("model", &model[0])
	h.shader.SetVector3("color", 0, 0, 0)

	gl.BindVertexArray(h.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (h *Highlight) Delete() {
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
		gl.DeleteBuffers(1, &h.vbo)
		h.vao, h.vbo = 0, 0
	}
	h.shader.Delete()
}
