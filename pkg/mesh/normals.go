package mesh

// NormalLines returns line segments visualising the normals of buf: two
// points (x, y, z) per row, from the row's position along its unit normal
// scaled by length. Face normals are used when faceted is set. Zero-length
// normals produce no segment.
func NormalLines(buf *Buffer, faceted bool, length float32) []float32 {
	lines := make([]float32, 0, buf.Vertices*6)
	for i := 0; i < buf.Vertices; i++ {
		n := buf.NormalAt(i, faceted)
		if n.Len() == 0 {
			continue
		}
		p := buf.Position(i)
		tip := p.Add(n.Normalize().Mul(length))
		lines = append(lines, p[0], p[1], p[2], tip[0], tip[1], tip[2])
	}
	return lines
}
