package bindgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/live"
	"github.com/matzehuels/mathscene/pkg/render"
	"github.com/matzehuels/mathscene/pkg/value"
)

// Options configures binding graph generation.
type Options struct {
	// Values appends each cell's current value to its label.
	Values bool
	// Static includes sources without inputs. They are omitted by default
	// since they have no edges.
	Static bool
}

type node struct {
	id    string
	in    live.Input
	edges []string
}

// ToDOT converts the bindings of a scene to Graphviz DOT. Sources are walked
// through their inputs, so cells and nested group members appear even when
// they were never staged directly. Node order follows first appearance.
func ToDOT(bindings []live.Source, opts Options) string {
	g := collect(bindings, opts)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, n := range g {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(fmtAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, n := range g {
		for _, to := range n.edges {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.id, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// collect assigns ids by label, numbering repeats, and records an edge from
// every input to the source that reads it.
func collect(bindings []live.Source, opts Options) []*node {
	var out []*node
	ids := map[live.Input]*node{}
	used := map[string]int{}

	var visit func(in live.Input) *node
	visit = func(in live.Input) *node {
		if n, ok := ids[in]; ok {
			return n
		}
		id := in.Label()
		if used[id]++; used[id] > 1 {
			id = fmt.Sprintf("%s#%d", id, used[id])
		}
		n := &node{id: id, in: in}
		ids[in] = n
		if src, ok := in.(live.Source); ok {
			for _, dep := range src.Inputs() {
				d := visit(dep)
				d.edges = append(d.edges, n.id)
			}
		}
		out = append(out, n)
		return n
	}
	for _, b := range bindings {
		visit(b)
	}

	if opts.Static {
		return out
	}
	kept := out[:0]
	for _, n := range out {
		if _, ok := n.in.(*live.StaticSource); ok && len(n.edges) == 0 {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

func fmtAttrs(n *node, opts Options) []string {
	label := n.in.Label()
	switch in := n.in.(type) {
	case *value.Cell:
		if opts.Values {
			label = fmt.Sprintf("%s = %.4g", label, in.Get())
		}
		return []string{fmt.Sprintf("label=%q", label), "shape=ellipse", "style=filled", "fillcolor=\"#58C4DD\""}
	case *live.GroupSource:
		return []string{fmt.Sprintf("label=%q", label), "shape=folder", "style=dashed"}
	case *live.StaticSource:
		return []string{fmt.Sprintf("label=%q", label), "shape=box", "style=filled", "fillcolor=lightgrey"}
	}
	return []string{fmt.Sprintf("label=%q", label), "shape=box", "style=\"rounded,filled\"", "fillcolor=white"}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render graph")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the graph scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
