// Package pkg provides the core libraries for mathscene reactive math
// animations.
//
// # Overview
//
// A scene is a script that stages drawable objects and animates a handful of
// numeric cells. Every object is derived from those cells, so animating one
// value redraws everything that depends on it. The pkg directory is organized
// into four main areas:
//
//  1. Reactive core: [value], [live], [geom] and [easing]
//  2. Drawing model: [shape] and [scene]
//  3. Output: [render], [render/sink] and [render/bindgraph]
//  4. Orchestration: [scenes], [pipeline], [cache] and [observability]
//
// # Architecture
//
// The typical data flow through mathscene:
//
//	Script (pkg/scenes/...)
//	         ↓
//	    [scene] package (stage objects, play animations, sample frames)
//	         ↓
//	    [scene.Frame] (cell snapshots + primitives)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON timeline, MP4)
//
// # Quick Start
//
// Render a catalog scene from Go:
//
//	import (
//	    "github.com/matzehuels/mathscene/pkg/pipeline"
//	    "github.com/matzehuels/mathscene/pkg/scenes"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "gd-quadratic-bound",
//	    Formats: []string{pipeline.FormatMP4, pipeline.FormatJSON},
//	    Quality: pipeline.QualityHigh,
//	    Params:  scenes.Defaults,
//	})
//
// Write a scene of your own:
//
//	func (s *Script) Construct(ctx context.Context, sc *scene.Scene) error {
//	    x := value.NewCell("x", 0)
//	    dot := live.Derive("dot", func() (shape.Object, error) {
//	        return shape.NewDot(geom.V(x.Get(), 0)), nil
//	    }, x)
//	    sc.Add(dot)
//	    return sc.Play(ctx, scene.SetValue(x, 3, scene.RunTime(2*time.Second)))
//	}
//
// # Core Packages
//
// [value] - Mutable numeric cells with revision counters. Cells are the only
// state a scene animates.
//
// [live] - Sources that recompute from cells when read. Derived sources
// record their inputs, which is what [render/bindgraph] draws.
//
// [scene] - The stage. Add, Remove, Play and Wait drive a [scene.Sink] with
// frames sampled at the configured rate.
//
// [shape] - Dots, lines, polylines, axes, function graphs and TeX labels,
// each flattened to primitives per frame.
//
// [render/sink] - Frame encoders and sinks: stills, numbered frame
// directories, JSON timelines and ffmpeg video.
//
// [pipeline] - Runs a catalog scene end to end with caching and metrics.
//
// [value]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/value
// [live]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/live
// [geom]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/geom
// [easing]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/easing
// [shape]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/shape
// [scene]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/scene
// [scene.Sink]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/scene#Sink
// [render]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/render/sink
// [render/bindgraph]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/render/bindgraph
// [scenes]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/scenes
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/observability
//
// [scene.Frame]: https://pkg.go.dev/github.com/matzehuels/mathscene/pkg/scene#Frame
package pkg
