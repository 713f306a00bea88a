package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/observability"
	"github.com/matzehuels/mathscene/pkg/pipeline"
	"github.com/matzehuels/mathscene/pkg/render/bindgraph"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format  string // dot, svg or pdf
	output  string // output file; dot defaults to stdout
	values  bool   // show cell values at the end of the scene
	static  bool   // include objects that read no cells
	noCache bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "graph <scene>",
		Short: "Draw which cells each object of a scene reads",
		Long: `Play a scene without writing frames and draw its binding graph: cells
on the left, the objects derived from them to the right, groups last.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <scene>_bindings.<format>, dot prints to stdout)")
	cmd.Flags().BoolVar(&opts.values, "values", false, "label cells with their final values")
	cmd.Flags().BoolVar(&opts.static, "static", false, "include objects that read no cells")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the graph cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, scene string, opts graphOpts) error {
	if opts.format != "dot" && opts.format != "svg" && opts.format != "pdf" {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, pdf)", opts.format)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	bindings, err := runner.Bindings(ctx, pipeline.Options{Scene: scene, Params: c.Config.Params(scene), Logger: c.Logger})
	if err != nil {
		return err
	}
	dot := bindgraph.ToDOT(bindings, bindgraph.Options{Values: opts.values, Static: opts.static})

	if opts.format == "dot" && opts.output == "" {
		fmt.Fprint(stdout, dot)
		return nil
	}

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = c.graphSVG(ctx, scene, dot, opts.noCache)
	case "pdf":
		data, err = bindgraph.RenderPDF(ctx, dot)
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s_bindings.%s", scene, opts.format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	printSuccess("Binding graph for %s", StyleHighlight.Render(scene))
	printFile(path)
	return nil
}

// graphSVG renders dot through the cache; Graphviz layout is the slow part.
func (c *CLI) graphSVG(ctx context.Context, scene, dot string, noCache bool) ([]byte, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer cc.Close()

	key := cache.NewDefaultKeyer().GraphKey(scene, cache.Hash([]byte(dot)), "svg")
	if data, hit, err := cc.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "graph")
		c.Logger.Debug("graph cache hit", "scene", scene)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	data, err := bindgraph.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := cc.Set(ctx, key, data, cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return data, nil
}
