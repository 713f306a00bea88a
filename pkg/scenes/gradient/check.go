package gradient

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
)

const (
	checkSamples = 200
	tolerance    = 1e-9
)

// samples returns n+1 evenly spaced points of [lo, hi].
func samples(lo, hi float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	return out
}

func check(ctx context.Context, decode scenes.Decode) []scenes.Check {
	p, err := decodeParams(decode)
	if err != nil {
		return []scenes.Check{scenes.Failed("params", err)}
	}
	f := p.Cubic()
	xs := samples(p.XMin, p.XMax, checkSamples)

	var worstTangent, worstSlope, worstGap float64
	for _, x := range xs {
		q := p.Bound(x)
		worstTangent = math.Max(worstTangent, math.Abs(q.Eval(x)-f.Eval(x)))
		worstSlope = math.Max(worstSlope, math.Abs(q.Slope(q.Min())))
		for _, y := range xs {
			worstGap = math.Min(worstGap, q.Eval(y)-f.Eval(y))
		}
	}

	curv := f.MaxCurvature(p.XMin, p.XMax)
	q := p.Bound(p.X0)
	want := p.X0 - f.Grad(p.X0)/p.L

	checks := []scenes.Check{
		scenes.Verify("tangency q(x) = f(x)", worstTangent <= tolerance,
			fmt.Sprintf("max |q(x)-f(x)| = %.3g over %d points", worstTangent, len(xs))),
		scenes.Verify("stationarity q'(y*) = 0", worstSlope <= tolerance,
			fmt.Sprintf("max |q'(y*)| = %.3g", worstSlope)),
		scenes.Verify("L-smoothness", curv <= p.L,
			fmt.Sprintf("max |f''| = %.3g on [%g, %g], L = %g", curv, p.XMin, p.XMax, p.L)),
		scenes.Verify("upper bound q(y) >= f(y)", worstGap >= -tolerance,
			fmt.Sprintf("min q(y)-f(y) = %.3g", worstGap)),
		scenes.Verify("next iterate", q.Min() == want,
			fmt.Sprintf("x_k+1 = %g - %g/%g = %g", p.X0, f.Grad(p.X0), p.L, q.Min())),
	}
	return append(checks, checkPlayback(ctx, p, want))
}

// checkPlayback plays the scene at a low frame rate and verifies the iterate
// lands exactly on y*.
func checkPlayback(ctx context.Context, p Params, want float64) scenes.Check {
	const property = "x_k lands on y*"
	cfg := scene.DefaultConfig()
	cfg.FPS = 5
	script := New(p)
	if err := script.Construct(ctx, scene.New(Name, cfg, nil, nil)); err != nil {
		return scenes.Failed(property, err)
	}
	got := script.Xk.Get()
	return scenes.Verify(property, got == want, fmt.Sprintf("x_k = %g, y* = %g", got, want))
}
