package render

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// UploadTexture creates a 2D texture from img. Atlas tiles are sampled with
// nearest filtering and clamped so neighbouring tiles never bleed in.
func UploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	for param, value := range map[uint32]int32{
		gl.TEXTURE_WRAP_S:     gl.CLAMP_TO_EDGE,
		gl.TEXTURE_WRAP_T:     gl.CLAMP_TO_EDGE,
		gl.TEXTURE_MIN_FILTER: gl.NEAREST,
		gl.TEXTURE_MAG_FILTER: gl.NEAREST,
	} {
		gl.TexParameteri(gl.TEXTURE_2D, param, value)
	}

	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
