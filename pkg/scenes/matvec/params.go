package matvec

import (
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Params configures the scene through the [scenes.matrix-vector] table.
type Params struct {
	// Matrix is M given by rows.
	Matrix [][]float64 `toml:"matrix"`
	// Vectors are the x_i, at most three.
	Vectors [][]float64 `toml:"vectors"`
	// MoveTime and GridTime are the phase durations in seconds.
	MoveTime float64 `toml:"move_time"`
	GridTime float64 `toml:"grid_time"`
}

// DefaultParams returns M = [[3, −1], [−1, 1.5]] acting on [0, 1], [−1, 0.5]
// and [1, 0].
func DefaultParams() Params {
	return Params{
		Matrix:   [][]float64{{3, -1}, {-1, 1.5}},
		Vectors:  [][]float64{{0, 1}, {-1, 0.5}, {1, 0}},
		MoveTime: 2,
		GridTime: 2.2,
	}
}

// M returns the matrix.
func (p Params) M() geom.Mat2 {
	return geom.M(p.Matrix[0][0], p.Matrix[0][1], p.Matrix[1][0], p.Matrix[1][1])
}

// Xs returns the input vectors.
func (p Params) Xs() []geom.Vec2 {
	out := make([]geom.Vec2, len(p.Vectors))
	for i, v := range p.Vectors {
		out[i] = geom.V(v[0], v[1])
	}
	return out
}

// Ys returns M·x_i for every input vector.
func (p Params) Ys() []geom.Vec2 {
	m := p.M()
	xs := p.Xs()
	out := make([]geom.Vec2, len(xs))
	for i, x := range xs {
		out[i] = m.Apply(x)
	}
	return out
}

// Validate checks shapes and keeps every vector and its image on the axes.
func (p Params) Validate() error {
	if len(p.Matrix) != 2 || len(p.Matrix[0]) != 2 || len(p.Matrix[1]) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "matrix must be 2x2")
	}
	if n := len(p.Vectors); n == 0 || n > len(colors) {
		return errors.New(errors.ErrCodeInvalidConfig, "need 1 to %d vectors, got %d", len(colors), n)
	}
	for i, v := range p.Vectors {
		if len(v) != 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "vector %d must have 2 entries", i+1)
		}
	}
	for _, row := range p.Matrix {
		for _, v := range row {
			if !value.Finite(v) {
				return errors.New(errors.ErrCodeInvalidConfig, "matrix entries must be finite")
			}
		}
	}
	if p.MoveTime <= 0 || p.GridTime <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "phase durations must be positive")
	}
	ys := p.Ys()
	for i, x := range p.Xs() {
		for _, v := range []geom.Vec2{x, ys[i]} {
			if !v.Finite() || v.X < xRange.Min || v.X > xRange.Max || v.Y < yRange.Min || v.Y > yRange.Max {
				return errors.New(errors.ErrCodeInvalidConfig, "vector %d or its image %v leaves the axes", i+1, v)
			}
		}
	}
	return nil
}
