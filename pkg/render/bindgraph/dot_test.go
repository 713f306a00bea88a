package bindgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/shape"
	"github.com/matzehuels/mathscene/pkg/value"
)

func testBindings() []live.Source {
	x := value.NewCell("x_k", 3.4)
	dot := live.Derive("xk_dot", func() (shape.Object, error) {
		return shape.NewDot(geom.V(x.Get(), 0)), nil
	}, x)
	label := live.Derive("xk_label", func() (shape.Object, error) {
		return shape.MathTex("x_k"), nil
	}, dot)
	title := live.Static("title", shape.Tex("Gradient descent"))
	axes := live.Static("axes", shape.NewDot(geom.Origin))
	return []live.Source{title, dot, label, live.Group("marker", dot, label, axes)}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testBindings(), Options{})
	for _, want := range []string{
		`"x_k" [label="x_k", shape=ellipse`,
		`"x_k" -> "xk_dot";`,
		`"xk_dot" -> "xk_label";`,
		`"xk_dot" -> "marker";`,
		`"axes" -> "marker";`,
		`"marker" [label="marker", shape=folder`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"title"`) {
		t.Error("unconnected static source should be omitted")
	}
	if n := strings.Count(dot, `"x_k" [`); n != 1 {
		t.Errorf("x_k declared %d times, want 1", n)
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(testBindings(), Options{Values: true, Static: true})
	if !strings.Contains(dot, `label="x_k = 3.4"`) {
		t.Errorf("missing cell value:\n%s", dot)
	}
	if !strings.Contains(dot, `"title" [label="title", shape=box, style=filled`) {
		t.Errorf("missing static node:\n%s", dot)
	}
}

func TestToDOTDuplicateLabels(t *testing.T) {
	a := value.NewCell("x", 0)
	b := value.NewCell("x", 1)
	src := live.Derive("sum", func() (shape.Object, error) {
		return shape.NewDot(geom.V(a.Get()+b.Get(), 0)), nil
	}, a, b)
	dot := ToDOT([]live.Source{src}, Options{})
	if !strings.Contains(dot, `"x#2" -> "sum";`) {
		t.Errorf("duplicate label not numbered:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testBindings(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected root element: %.200s", svg)
	}
}
