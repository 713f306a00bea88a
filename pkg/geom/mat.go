package geom

// Mat2 is a 2x2 matrix in row-major order:
//
//	| A B |
//	| C D |
type Mat2 struct {
	A, B, C, D float64
}

// Identity is the 2x2 identity matrix.
var Identity = Mat2{A: 1, D: 1}

// M builds a matrix from its rows.
func M(a, b, c, d float64) Mat2 { return Mat2{A: a, B: b, C: c, D: d} }

// Apply returns m·v.
func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{m.A*v.X + m.B*v.Y, m.C*v.X + m.D*v.Y}
}

// Mul returns m·n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		A: m.A*n.A + m.B*n.C, B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C, D: m.C*n.B + m.D*n.D,
	}
}

// Det returns the determinant.
func (m Mat2) Det() float64 { return m.A*m.D - m.B*m.C }

// Lerp interpolates entry-wise between m (t=0) and n (t=1).
// Applying the result to a point equals interpolating that point between its
// images under m and n.
func (m Mat2) Lerp(n Mat2, t float64) Mat2 {
	l := func(a, b float64) float64 { return a + (b-a)*t }
	return Mat2{l(m.A, n.A), l(m.B, n.B), l(m.C, n.C), l(m.D, n.D)}
}

// Affine is a linear map applied about a fixed point: p ↦ M(p−About)+About.
type Affine struct {
	M     Mat2
	About Vec2
}

// IdentityAffine leaves every point in place.
var IdentityAffine = Affine{M: Identity}

// Apply transforms p.
func (a Affine) Apply(p Vec2) Vec2 {
	return a.M.Apply(p.Sub(a.About)).Add(a.About)
}

// IsIdentity reports whether a leaves every point in place.
func (a Affine) IsIdentity() bool { return a.M == Identity }
