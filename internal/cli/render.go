package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	formats    string  // comma-separated output formats
	quality    string  // low, medium or high
	width      int     // frame width override in pixels
	height     int     // frame height override in pixels
	fps        float64 // frame rate override
	background string  // background colour as #rrggbb
	output     string  // output directory
	frames     bool    // write every frame, not just the last
	noCache    bool    // bypass the frame cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Play a scene and write its frames",
		Long: `Play a scene and write the requested outputs.

SVG, PNG and PDF write the final frame, or every frame with --frames.
JSON writes a timeline of every animated value. MP4 requires ffmpeg and
PDF requires rsvg-convert.`,
		Example: `  mathscene render gd-quadratic-bound -f mp4 -q high
  mathscene render matrix-vector -f svg,json --frames -o out`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, mp4 (comma-separated)")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "quality preset: low (854x480@15), medium (1280x720@30), high (1920x1080@60)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width in pixels (overrides quality)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height in pixels (overrides quality)")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frames per second (overrides quality)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background colour (#rrggbb)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default "+pipeline.DefaultOutputDir+")")
	cmd.Flags().BoolVar(&opts.frames, "frames", false, "write every SVG/PNG frame to a numbered file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")

	return cmd
}

// pipelineOptions merges flags over the config file.
func (c *CLI) pipelineOptions(scene string, opts renderOpts) pipeline.Options {
	po := pipeline.Options{
		Scene:      scene,
		Formats:    pipeline.ParseFormats(opts.formats),
		Quality:    opts.quality,
		Width:      opts.width,
		Height:     opts.height,
		FPS:        opts.fps,
		Background: opts.background,
		OutputDir:  opts.output,
		Frames:     opts.frames,
		Params:     c.Config.Params(scene),
		Logger:     c.Logger,
	}
	c.Config.Render.apply(&po)
	return po
}

func (c *CLI) runRender(ctx context.Context, scene string, opts renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.pipelineOptions(scene, opts)
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", scene))
	po.Progress = spinner
	spinner.Start()
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, po)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %s", scene))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", StyleHighlight.Render(scene)))
	prog.done("render complete", "run", result.RunID, "frames", result.Frames)

	lookups := result.CacheInfo.Hits + result.CacheInfo.Misses
	printStats(result.Frames, result.Duration, result.CacheInfo.Hits, lookups)
	for _, format := range po.Formats {
		printFiles(result.Outputs[format])
	}
	if !slices.Contains(po.Formats, pipeline.FormatJSON) {
		printNewline()
		printNextStep("Inspect the timeline", fmt.Sprintf("mathscene preview %s", scene))
	}
	return nil
}
