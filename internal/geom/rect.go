package geom

// Rect is an axis-aligned rectangle on the horizontal plane.
// Start is the min corner, End the max corner; End edges are exclusive
// for containment.
type Rect struct {
	Start, End Vec2
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Start.X && p.X < r.End.X &&
		p.Y >= r.Start.Y && p.Y < r.End.Y
}

func (r Rect) Intersects(o Rect) bool {
	return r.End.X > o.Start.X && r.End.Y > o.Start.Y &&
		r.Start.X < o.End.X && r.Start.Y < o.End.Y
}

// Corners returns the vertex loop in the winding InsidePoly expects.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.Start,
		{r.Start.X, r.End.Y},
		r.End,
		{r.End.X, r.Start.Y},
	}
}

// IntersectsSegment reports whether the segment crosses the rectangle
// boundary or lies entirely inside it.
func (r Rect) IntersectsSegment(start, end Vec2) bool {
	c := r.Corners()
	v1, v2, v3, v4 := c[0], c[1], c[2], c[3]

	return SegmentsIntersect(v1, v2, start, end) ||
		SegmentsIntersect(v2, v3, start, end) ||
		SegmentsIntersect(v3, v4, start, end) ||
		SegmentsIntersect(v4, v1, start, end) ||
		InsidePoly([]Vec2{v1, v2, v3, v4}, start)
}
