package world

// UVRect is a normalized rectangle inside the texture atlas.
type UVRect struct {
	U, V, W, H float32
}

// Atlas describes a texture divided into Rows x Cols equal tiles. Tile i
// belongs to block type i+1 (None has no tile), laid out row-major.
type Atlas struct {
	Rows int
	Cols int
}

// DefaultAtlas has room for every non-air block type.
var DefaultAtlas = Atlas{Rows: 3, Cols: 2}

// UV returns the tile rectangle of t.
func (a Atlas) UV(t BlockType) UVRect {
	rows, cols := a.Rows, a.Cols
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	w := 1.0 / float32(cols)
	h := 1.0 / float32(rows)

	tile := int(t) - 1
	if tile < 0 {
		tile = 0
	}
	tile %= rows * cols

	return UVRect{
		U: float32(tile%cols) / float32(cols),
		V: float32(tile/cols) / float32(rows),
		W: w,
		H: h,
	}
}

// Tiles returns the number of tiles in the atlas.
func (a Atlas) Tiles() int {
	return a.Rows * a.Cols
}
