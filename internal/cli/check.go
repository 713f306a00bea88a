package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/scenes/catalog"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [scene]",
		Short: "Verify the mathematics behind each scene",
		Long: `Verify the properties each scene illustrates, such as the tangency of
the quadratic bound or the endpoints of transformed vectors, using the
configured parameters. Without an argument every scene is checked.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := catalog.All
			if len(args) == 1 {
				d, err := catalog.Lookup(args[0])
				if err != nil {
					return err
				}
				defs = []*scenes.Definition{d}
			}
			return c.runCheck(cmd.Context(), defs)
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, defs []*scenes.Definition) error {
	failed := 0
	for i, d := range defs {
		if i > 0 {
			printNewline()
		}
		printInfo("%s", StyleTitle.Render(d.Name))
		for _, chk := range d.Check(ctx, c.Config.Params(d.Name)) {
			if chk.OK() {
				printSuccess("%s", chk.Property)
				c.Logger.Debug("check passed", "scene", d.Name, "property", chk.Property, "detail", chk.Detail)
				continue
			}
			failed++
			printError("%s", chk.Property)
			printDetail("%s", chk.Detail)
		}
	}
	if failed > 0 {
		return errors.New(errors.ErrCodeInternal, "%d check(s) failed", failed)
	}
	return nil
}
