package gradient

import (
	"math"

	"github.com/matzehuels/mathscene/pkg/errors"
)

// Cubic is f(x) = Ax³ + Bx² + Cx + D.
type Cubic struct {
	A, B, C, D float64
}

// Eval returns f(x).
func (f Cubic) Eval(x float64) float64 {
	return f.A*x*x*x + f.B*x*x + f.C*x + f.D
}

// Grad returns f'(x).
func (f Cubic) Grad(x float64) float64 {
	return 3*f.A*x*x + 2*f.B*x + f.C
}

// Curvature returns the second derivative of f at x.
func (f Cubic) Curvature(x float64) float64 {
	return 6*f.A*x + 2*f.B
}

// MaxCurvature returns the largest absolute curvature on [lo, hi]. The
// curvature of a cubic is linear, so it is attained at an end point.
func (f Cubic) MaxCurvature(lo, hi float64) float64 {
	return math.Max(math.Abs(f.Curvature(lo)), math.Abs(f.Curvature(hi)))
}

// Bound is the quadratic upper bound of f at X0 for smoothness constant L:
//
//	q(y) = f(x0) + f'(x0)(y−x0) + L/2·(y−x0)²
type Bound struct {
	F  Cubic
	L  float64
	X0 float64
}

// Eval returns q(y).
func (q Bound) Eval(y float64) float64 {
	d := y - q.X0
	return q.F.Eval(q.X0) + q.F.Grad(q.X0)*d + q.L/2*d*d
}

// Slope returns q'(y).
func (q Bound) Slope(y float64) float64 {
	return q.F.Grad(q.X0) + q.L*(y-q.X0)
}

// Min returns the minimiser y* = x0 − f'(x0)/L, which is also the next
// gradient descent iterate with step 1/L.
func (q Bound) Min() float64 {
	return q.X0 - q.F.Grad(q.X0)/q.L
}

// Interval returns the y range on which q stays at or below ymax: the roots of
// q(y) = ymax. A negative discriminant means the parabola never reaches ymax
// and there is nothing sensible to plot.
func (q Bound) Interval(ymax float64) (lo, hi float64, err error) {
	a := q.L / 2
	b := q.F.Grad(q.X0) - q.L*q.X0
	c := q.L/2*q.X0*q.X0 - q.F.Grad(q.X0)*q.X0 + q.F.Eval(q.X0) - ymax
	disc := b*b - 4*a*c
	if disc < 0 || math.IsNaN(disc) {
		return 0, 0, errors.New(errors.ErrCodeUndefined,
			"q_k stays above y=%g at x_k=%g (discriminant %g)", ymax, q.X0, disc)
	}
	r := math.Sqrt(disc)
	return (-b - r) / (2 * a), (-b + r) / (2 * a), nil
}
