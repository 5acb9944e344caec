package mesh

// Snapshot is a read-only copy of a buffer handed to the renderer.
type Snapshot struct {
	Vertices []Vertex
	Indices  []uint32
}

// Snapshot copies the current geometry.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		Vertices: b.Vertices(),
		Indices:  b.Indices(),
	}
}

// Empty reports whether there is nothing to draw.
func (s Snapshot) Empty() bool {
	return len(s.Indices) == 0
}

// Pack interleaves vertices as pos.xyz, normal.xyz, uv (32 bytes each).
func Pack(vs []Vertex) []float32 {
	out := make([]float32, 0, len(vs)*FloatsPerVertex)
	for _, v := range vs {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}

// Triangle is a resolved triangle, used to compare buffers regardless of
// vertex order.
type Triangle [3]Vertex

// Triangles resolves the index list into vertex triples.
func (s Snapshot) Triangles() []Triangle {
	tris := make([]Triangle, 0, len(s.Indices)/3)
	for i := 0; i+2 < len(s.Indices); i += 3 {
		tris = append(tris, Triangle{
			s.Vertices[s.Indices[i]],
			s.Vertices[s.Indices[i+1]],
			s.Vertices[s.Indices[i+2]],
		})
	}
	return tris
}
