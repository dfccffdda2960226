package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// pagesCommand creates the pages command for counting PDF pages.
func (c *CLI) pagesCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "pages [document.pdf]",
		Short: "Count the pages of a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			p := newProgress(c.Logger)
			pages, err := runner.Count(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Counted %d pages", pages))

			printKeyValue("Pages", strconv.Itoa(pages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
