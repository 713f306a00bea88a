package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/scenes/catalog"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available scenes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(catalog.All))
			for _, d := range catalog.All {
				params := "defaults"
				if _, ok := c.Config.Scenes[d.Name]; ok {
					params = "config"
				}
				rows = append(rows, []string{d.Name, d.Description, params})
			}
			printTable([]string{"Scene", "Description", "Params"}, rows)
			printNextStep("Render one", fmt.Sprintf("mathscene render %s", catalog.All[0].Name))
			return nil
		},
	}
}
