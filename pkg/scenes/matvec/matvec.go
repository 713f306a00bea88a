// Package matvec animates matrix-vector multiplication as a linear map.
//
// Each vector's end point is a pair of cells and its arrow is derived from
// them. Phase A slides the end points from x_i to M·x_i. Phase B repeats
// the motion over a background grid that is transformed by M at the same
// time, so the arrows ride along with the plane.
package matvec

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/mathscene/pkg/easing"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Name is the scene's registry name.
const Name = "matrix-vector"

// Definition registers the scene.
var Definition = &scenes.Definition{
	Name:        Name,
	Description: "A matrix acting on vectors as a linear transformation",
	New: func(decode scenes.Decode) (scene.Script, error) {
		p, err := decodeParams(decode)
		if err != nil {
			return nil, err
		}
		return New(p), nil
	},
	Check: check,
}

func decodeParams(decode scenes.Decode) (Params, error) {
	p := DefaultParams()
	if decode != nil {
		if err := decode(&p); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

var (
	xRange = shape.Range{Min: -6, Max: 6, Step: 1}
	yRange = shape.Range{Min: -4, Max: 4, Step: 1}
	colors = []shape.Color{shape.Blue, shape.Pink, shape.GreenB}
)

const (
	axisLength  = 10 * 0.85
	arrowWidth  = 8
	ghostWidth  = 5
	ghostAlpha  = 0.45
	labelScale  = 0.75
	labelBuff   = 0.15
	gridOpacity = 0.22
)

func axesConfig() shape.AxesConfig {
	return shape.AxesConfig{
		X: xRange, Y: yRange,
		XLength:    axisLength,
		YLength:    axisLength * (yRange.Max - yRange.Min) / (xRange.Max - xRange.Min),
		IncludeTip: true,
	}
}

// Script is the scene.
type Script struct {
	p Params
	// Ends holds the end point cells of the arrows of the current phase.
	Ends []value.Pair
	axes *shape.Axes
}

// New creates the script. p must be valid.
func New(p Params) *Script {
	return &Script{p: p}
}

func (s *Script) Name() string        { return Name }
func (s *Script) Description() string { return Definition.Description }

func secs(v float64) time.Duration { return time.Duration(v * float64(time.Second)) }

// arrows derives one live arrow per end point pair.
func (s *Script) arrows(phase string) (*live.GroupSource, []live.Source) {
	ends := make([]value.Pair, len(s.p.Vectors))
	members := make([]live.Source, len(ends))
	for i, x := range s.p.Xs() {
		ends[i] = value.NewPair(fmt.Sprintf("%s.x%d", phase, i+1), x.X, x.Y)
		end, color := ends[i], colors[i]
		members[i] = live.Derive(fmt.Sprintf("%s.arrow%d", phase, i+1), func() (shape.Object, error) {
			return shape.NewArrow(s.axes.Origin(), s.axes.C2P(end.Get())).
				WithColor(color).WithWidth(arrowWidth), nil
		}, end.X, end.Y)
	}
	s.Ends = ends
	return live.Group(phase+".arrows", members...), members
}

// labels derives "<sym>_i" next to the tip of each arrow, pushed outward along
// the arrow's direction.
func (s *Script) labels(phase, sym string, arrows []live.Source) *live.GroupSource {
	members := make([]live.Source, len(arrows))
	for i, a := range arrows {
		tex := sym + "_" + strconv.Itoa(i+1)
		members[i] = live.Derive(fmt.Sprintf("%s.%s%d", phase, sym, i+1), func() (shape.Object, error) {
			obj, err := a.Resolve()
			if err != nil {
				return nil, err
			}
			arrow := obj.(*shape.Arrow)
			dir := arrow.End.Sub(s.axes.Origin()).Normalize()
			t := shape.MathTex(tex).Scaled(labelScale)
			shape.NextToPoint(t, arrow.End, dir, labelBuff)
			return t, nil
		}, a)
	}
	return live.Group(fmt.Sprintf("%s.labels_%s", phase, sym), members...)
}

func (s *Script) moves() []scene.Animation {
	var out []scene.Animation
	for i, y := range s.p.Ys() {
		out = append(out, scene.MoveTo(s.Ends[i], y.X, y.Y)...)
	}
	return out
}

// Construct plays both phases.
func (s *Script) Construct(ctx context.Context, sc *scene.Scene) error {
	axes, err := shape.NewAxes(axesConfig())
	if err != nil {
		return err
	}
	shape.ToEdge(axes, geom.DR, geom.EdgeBuff)
	s.axes = axes

	m := s.p.M()
	title := shape.Tex("Consider Matrix-Vector Multiplication")
	shape.ToEdge(title, geom.Up, geom.EdgeBuff)
	mTex := shape.MathTex(fmt.Sprintf(`M=\begin{pmatrix} %g & %g\\[3pt] %g & %g\end{pmatrix}`, m.A, m.B, m.C, m.D)).Scaled(0.9)
	shape.ToCorner(mTex, geom.UL, 1.5)
	rule := shape.MathTex(`y_i = Mx_i`).Scaled(0.85)
	shape.NextTo(rule, mTex.Bounds(), geom.Down, 0.3)
	shape.AlignTo(rule, mTex.Bounds(), geom.Left)

	ghosts := shape.NewGroup()
	for _, x := range s.p.Xs() {
		ghosts.Add(shape.NewArrow(axes.Origin(), axes.C2P(x.X, x.Y)).
			WithColor(shape.GreyA).WithWidth(ghostWidth).WithOpacity(ghostAlpha))
	}

	var (
		titleSrc  = live.Static("title", title)
		axesSrc   = live.Static("axes", axes)
		xLabel    = live.Static("x_label", axes.XAxisLabel(shape.Tex("x").Scaled(0.8)))
		yLabel    = live.Static("y_label", axes.YAxisLabel(shape.Tex("y").Scaled(0.8)))
		mSrc      = live.Static("M_tex", mTex)
		ruleSrc   = live.Static("rule_tex", rule)
		ghostsSrc = live.Static("ghost_arrows", ghosts)
	)

	play := func(anims ...scene.Animation) func() error {
		return func() error { return sc.Play(ctx, anims...) }
	}
	playFor := func(d float64, anims ...scene.Animation) func() error {
		return func() error { return sc.PlayWith(ctx, scene.PlayOpts{RunTime: secs(d)}, anims...) }
	}
	wait := func(d float64) func() error {
		return func() error { return sc.Wait(ctx, secs(d)) }
	}
	smooth := func(d float64, anims ...scene.Animation) func() error {
		return func() error {
			return sc.PlayWith(ctx, scene.PlayOpts{RunTime: secs(d), Rate: easing.Smooth}, anims...)
		}
	}

	// Phase A: arrows only.
	liveA, arrowsA := s.arrows("a")
	labelsX := s.labels("a", "x", arrowsA)
	labelsY := s.labels("a", "y", arrowsA)

	err = scenes.Steps(
		play(scene.Write(titleSrc)),
		play(scene.Create(axesSrc), scene.FadeIn(xLabel), scene.FadeIn(yLabel)),
		play(scene.FadeIn(mSrc), scene.FadeIn(ruleSrc)),
		wait(0.3),

		playFor(1.0, scene.FadeIn(liveA), scene.FadeIn(labelsX)),
		wait(0.4),
		play(scene.FadeOut(labelsX, scene.RunTime(secs(0.3)))),
		playFor(0.8, scene.FadeIn(ghostsSrc)),
		func() error { return smooth(s.p.MoveTime, s.moves()...)() },
		playFor(0.5, scene.FadeIn(labelsY)),
		wait(1.0),
		playFor(0.8, scene.FadeOut(liveA), scene.FadeOut(labelsY)),
	)
	if err != nil {
		return err
	}

	// Phase B: the same motion over a grid transformed by M.
	grid, err := shape.NewNumberPlane(axesConfig(), shape.LineStyle{
		Color: shape.GreyB, Opacity: gridOpacity, StrokeWidth: 1,
	})
	if err != nil {
		return err
	}
	grid.Shift(axes.Origin().Sub(grid.Origin()))
	gridSrc := live.Static("grid", grid)

	liveB, arrowsB := s.arrows("b")
	labelsY2 := s.labels("b", "y", arrowsB)

	return scenes.Steps(
		playFor(0.8, scene.FadeIn(gridSrc)),
		playFor(1.0, scene.FadeIn(liveB)),
		wait(0.5),
		func() error {
			anims := append([]scene.Animation{scene.ApplyMatrix(m, gridSrc, axes.Origin())}, s.moves()...)
			return smooth(s.p.GridTime, anims...)()
		},
		playFor(0.5, scene.FadeIn(labelsY2)),
		wait(5.5),
	)
}
