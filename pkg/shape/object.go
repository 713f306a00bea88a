package shape

import "github.com/matzehuels/mathscene/pkg/geom"

// Object is anything that can be drawn.
type Object interface {
	// Primitives flattens the object for rendering.
	Primitives() []Primitive
	// Bounds returns the object's bounding box in scene units.
	Bounds() geom.Bounds
	// Shift translates the object. It is only called while the object is
	// being built.
	Shift(v geom.Vec2)
}

// MoveTo shifts o so that its centre lands on p.
func MoveTo(o Object, p geom.Vec2) {
	o.Shift(p.Sub(o.Bounds().Center()))
}

// NextTo places o beside target in direction dir, buff units away.
func NextTo(o Object, target geom.Bounds, dir geom.Vec2, buff float64) {
	want := target.Corner(dir).Add(dir.Scale(buff))
	have := o.Bounds().Corner(dir.Scale(-1))
	o.Shift(want.Sub(have))
}

// NextToPoint places o beside a single point.
func NextToPoint(o Object, p geom.Vec2, dir geom.Vec2, buff float64) {
	NextTo(o, geom.BoundsOf(p), dir, buff)
}

// ToEdge moves o against the frame edge in direction dir, keeping buff units
// of margin. Only the components of dir that are non-zero move.
func ToEdge(o Object, dir geom.Vec2, buff float64) {
	frame := geom.Frame()
	target := frame.Corner(dir).Sub(dir.Scale(buff))
	have := o.Bounds().Corner(dir)
	shift := target.Sub(have)
	if dir.X == 0 {
		shift.X = 0
	}
	if dir.Y == 0 {
		shift.Y = 0
	}
	o.Shift(shift)
}

// ToCorner moves o into a frame corner such as geom.UL.
func ToCorner(o Object, corner geom.Vec2, buff float64) {
	ToEdge(o, corner, buff)
}

// AlignTo lines up the edge of o facing dir with the same edge of target.
// Components of dir that are zero are left untouched.
func AlignTo(o Object, target geom.Bounds, dir geom.Vec2) {
	want := target.Corner(dir)
	have := o.Bounds().Corner(dir)
	shift := want.Sub(have)
	if dir.X == 0 {
		shift.X = 0
	}
	if dir.Y == 0 {
		shift.Y = 0
	}
	o.Shift(shift)
}
