package geom

import "math"

// NearestSegmentPoint returns the point on segment v1-v2 closest to p.
func NearestSegmentPoint(v1, v2, p Vec2) Vec2 {
	v1p := p.Sub(v1)
	v21 := v2.Sub(v1)
	normSq := max(v21.NormSq(), 1e-20)

	dot := v1p.Dot(v21) / normSq
	if dot < 0 {
		return v1
	}
	if dot > 1 {
		return v2
	}
	return v1.Add(v21.Scale(dot))
}

// NearestPolyPoint returns the point on the boundary of a polygon
// (given as a vertex loop, at least 3 vertices) closest to p.
func NearestPolyPoint(vs []Vec2, p Vec2) Vec2 {
	bestDistSq := math.Inf(1)
	var best Vec2
	for i := range vs {
		v1 := vs[i]
		v2 := vs[(i+1)%len(vs)]
		cand := NearestSegmentPoint(v1, v2, p)
		if d := cand.Sub(p).NormSq(); d < bestDistSq {
			best = cand
			bestDistSq = d
		}
	}
	return best
}

// InsidePoly reports whether p lies inside a convex polygon given as a
// clockwise vertex loop.
func InsidePoly(vs []Vec2, p Vec2) bool {
	for i := range vs {
		v1 := vs[i]
		v2 := vs[(i+1)%len(vs)]
		edge := v2.Sub(v1)
		normal := Vec2{-edge.Y, edge.X}
		if p.Sub(v1).Dot(normal) >= 0 {
			return false
		}
	}
	return true
}

// SegmentsIntersect reports whether two segments touch, via the
// closest-point-between-segments test from Ericson's Real-Time
// Collision Detection.
func SegmentsIntersect(start1, end1, start2, end2 Vec2) bool {
	const eps = 1e-3

	d1 := end1.Sub(start1)
	d2 := end2.Sub(start2)
	r := start1.Sub(start2)

	a := d1.NormSq()
	e := d2.NormSq()
	f := d2.Dot(r)

	var s, t float64

	switch {
	case a <= eps && e <= eps:
		s, t = 0, 0
	case a <= eps:
		s = 0
		t = Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			ae := a * e
			bb := b * b
			denom := ae - bb

			// Absolute and relative error to detect collinearity.
			parallel := denom <= eps || abs(ae/bb-1) < eps
			if !parallel {
				s = Clamp((b*f-c*e)/denom, 0, 1)
			}

			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = Clamp((b-c)/a, 0, 1)
			}
		}
	}

	v1 := start1.Add(d1.Scale(s))
	v2 := start2.Add(d2.Scale(t))
	return v1.Sub(v2).NormSq() < eps
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
