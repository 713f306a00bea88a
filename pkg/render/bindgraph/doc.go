// Package bindgraph draws which cells each staged object reads.
//
// Cells appear as ellipses, derived objects as rounded boxes, static objects
// as grey boxes and groups as dashed folders. An edge A -> B means B is
// rebuilt from A on every frame.
//
//	dot := bindgraph.ToDOT(sc.Bindings(), bindgraph.Options{})
//	svg, err := bindgraph.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package bindgraph
