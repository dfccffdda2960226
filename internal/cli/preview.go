package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// previewCommand creates the preview command: an interactive sheet browser.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	opts := c.newOptions()
	opts.Preview = true

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse sheet layouts interactively",
		Long: `Browse the sheets of an imposition plan in the terminal.

Without --pages a demo document of 8 pages is used, which makes preview handy
for exploring how different N-up values behave before committing to a print
run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			plan, err := runner.Plan(cmd.Context(), opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewSheetModel(plan))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.InputPages, "pages", "p", 0, "number of pages (default: 8-page demo)")
	cmd.Flags().IntVarP(&opts.PagesPerSide, "nup", "n", opts.PagesPerSide, "pages per sheet side (N-up)")
	cmd.Flags().Float64Var(&opts.TargetRatio, "ratio", opts.TargetRatio, "rows/columns ratio preferred when grids tie on waste")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
