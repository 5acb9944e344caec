// Package render draws world chunks with OpenGL. It implements
// world.Renderer and re-uploads a chunk's buffers whenever the chunk is dirty.
package render

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/profiling"
	"worldcraft/internal/texture"
	"worldcraft/internal/world"
)

// TilePixels is the size of an atlas tile on the GPU.
const TilePixels = 16

var skyColor = mgl32.Vec3{0.53, 0.71, 0.92}

// Renderer draws chunks; solids are drawn as they arrive, liquids are queued
// and blended after all solids in End.
type Renderer struct {
	shader *Shader
	atlas  uint32
	chunks map[world.ChunkCoord]*chunkMesh

	pendingLiquid []*chunkMesh
	mode          uint32

	uploads int
	drawn   int
}

var _ world.Renderer = (*Renderer)(nil)

// New compiles the chunk shader and uploads the atlas. A GL context must be current.
func New(a world.Atlas) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CW)

	return &Renderer{
		shader: shader,
		atlas:  UploadTexture(texture.Build(a, TilePixels)),
		chunks: make(map[world.ChunkCoord]*chunkMesh),
		mode:   gl.TRIANGLES,
	}, nil
}

// Begin clears the frame and binds the per-frame uniforms.
func (r *Renderer) Begin(view, projection mgl32.Mat4, fogEnd float32, wireframe bool) {
	r.pendingLiquid = r.pendingLiquid[:0]
	r.uploads, r.drawn = 0, 0

	gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.shader.Use()
	r.shader.SetMatrix4("view", &view[0])
	r.shader.SetMatrix4("projection", &projection[0])
	r.shader.SetVector3("lightDir", -0.3, -1, -0.5)
	r.shader.SetVector3("fogColor", skyColor.X(), skyColor.Y(), skyColor.Z())
	r.shader.SetFloat("fogEnd", fogEnd)
	r.shader.SetInt("atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
}

// DrawChunk uploads c if it changed and draws its solid geometry.
func (r *Renderer) DrawChunk(c *world.Chunk) {
	m := r.chunks[c.Coord()]
	if m == nil {
		m = &chunkMesh{}
		r.chunks[c.Coord()] = m
	}
	if c.IsDirty() {
		defer profiling.Track("render.Upload")()
		snap := c.Snapshot()
		c.SetClean()
		m.solid.upload(snap.Solid)
		m.liquid.upload(snap.Liquid)
		r.uploads++
	}
	m.solid.draw(r.mode)
	r.pendingLiquid = append(r.pendingLiquid, m)
	r.drawn++
}

// End draws the queued liquid geometry with blending and reports GL errors.
func (r *Renderer) End() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	for _, m := range r.pendingLiquid {
		m.liquid.draw(r.mode)
	}
	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)

	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("gl error end of frame: 0x%x", err)
	}
}

// Stats returns the chunks drawn and uploaded in the last frame.
func (r *Renderer) Stats() (drawn, uploads int) {
	return r.drawn, r.uploads
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Delete releases every GL object.
func (r *Renderer) Delete() {
	for _, m := range r.chunks {
		m.solid.delete()
		m.liquid.delete()
	}
	clear(r.chunks)
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	r.shader.Delete()
}
