package geom

import "math"

// Bounds is an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min, Max Vec2
	valid    bool
}

// BoundsOf returns the smallest box containing every point.
func BoundsOf(pts ...Vec2) Bounds {
	var b Bounds
	for _, p := range pts {
		b = b.Include(p)
	}
	return b
}

// Rect returns the box with the given centre and size.
func Rect(center Vec2, w, h float64) Bounds {
	return Bounds{
		Min:   Vec2{center.X - w/2, center.Y - h/2},
		Max:   Vec2{center.X + w/2, center.Y + h/2},
		valid: true,
	}
}

func (b Bounds) Empty() bool          { return !b.valid }
func (b Bounds) Width() float64       { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64      { return b.Max.Y - b.Min.Y }
func (b Bounds) Center() Vec2         { return b.Min.Lerp(b.Max, 0.5) }
func (b Bounds) Size() (w, h float64) { return b.Width(), b.Height() }

// Include grows b to contain p.
func (b Bounds) Include(p Vec2) Bounds {
	if !b.valid {
		return Bounds{Min: p, Max: p, valid: true}
	}
	b.Min = Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)}
	b.Max = Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)}
	return b
}

// Union returns the smallest box containing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.valid {
		return b
	}
	if !b.valid {
		return o
	}
	return b.Include(o.Min).Include(o.Max)
}

// Expand grows b by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	if !b.valid {
		return b
	}
	b.Min = b.Min.Sub(Vec2{d, d})
	b.Max = b.Max.Add(Vec2{d, d})
	return b
}

// Shift translates b by v.
func (b Bounds) Shift(v Vec2) Bounds {
	if !b.valid {
		return b
	}
	b.Min = b.Min.Add(v)
	b.Max = b.Max.Add(v)
	return b
}

// Corner returns the point of b in direction dir from its centre. Each
// component of dir selects min (<0), centre (0) or max (>0); Corner(Up) is
// the middle of the top edge and Corner(DR) the bottom-right corner.
func (b Bounds) Corner(dir Vec2) Vec2 {
	c := b.Center()
	pick := func(d, lo, mid, hi float64) float64 {
		switch {
		case d < 0:
			return lo
		case d > 0:
			return hi
		}
		return mid
	}
	return Vec2{
		X: pick(dir.X, b.Min.X, c.X, b.Max.X),
		Y: pick(dir.Y, b.Min.Y, c.Y, b.Max.Y),
	}
}
