package matvec

import (
	"context"
	"fmt"

	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/scene"
	"github.com/matzehuels/mathscene/pkg/scenes"
)

func check(ctx context.Context, decode scenes.Decode) []scenes.Check {
	p, err := decodeParams(decode)
	if err != nil {
		return []scenes.Check{scenes.Failed("params", err)}
	}

	var checks []scenes.Check
	m := p.M()
	for i, x := range p.Xs() {
		y := m.Apply(x)
		want := geom.V(m.A*x.X+m.B*x.Y, m.C*x.X+m.D*x.Y)
		checks = append(checks, scenes.Verify(fmt.Sprintf("y_%d = M x_%d", i+1, i+1), y == want,
			fmt.Sprintf("M·%v = %v", x, y)))
	}

	const property = "arrow end points land on M x_i"
	cfg := scene.DefaultConfig()
	cfg.FPS = 5
	script := New(p)
	if err := script.Construct(ctx, scene.New(Name, cfg, nil, nil)); err != nil {
		return append(checks, scenes.Failed(property, err))
	}
	for i, y := range p.Ys() {
		gx, gy := script.Ends[i].Get()
		checks = append(checks, scenes.Verify(property, gx == y.X && gy == y.Y,
			fmt.Sprintf("arrow %d ends at (%g, %g), want %v", i+1, gx, gy, y)))
	}
	return checks
}
