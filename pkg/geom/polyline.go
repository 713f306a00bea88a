package geom

// Length returns the total arc length of the polyline through pts.
func Length(pts []Vec2) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Dist(pts[i-1])
	}
	return l
}

// Partial returns the prefix of the polyline covering frac of its arc length.
// frac is clamped to [0, 1]; the last point is interpolated on its segment.
func Partial(pts []Vec2, frac float64) []Vec2 {
	if frac >= 1 || len(pts) < 2 {
		return pts
	}
	if frac <= 0 {
		return pts[:1]
	}
	want := Length(pts) * frac
	out := []Vec2{pts[0]}
	var acc float64
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Dist(pts[i-1])
		if acc+seg >= want {
			t := 0.0
			if seg > 0 {
				t = (want - acc) / seg
			}
			return append(out, pts[i-1].Lerp(pts[i], t))
		}
		acc += seg
		out = append(out, pts[i])
	}
	return out
}
