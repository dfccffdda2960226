package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cutstack/cutstack/pkg/pipeline"
)

// planCommand creates the plan command for computing imposition plans.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "plan [pages]",
		Short: "Compute a cut-and-stack imposition plan",
		Long: `Compute a cut-and-stack imposition plan for a given page count.

The plan command takes a page count and an N-up value and computes the grid
layout, the per-sheet page assignments, and the cell positions for both sides
of every sheet. The result is printed as a summary; use --output to write the
full plan as JSON for later rendering.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("page count must be an integer, got %q", args[0])
			}
			opts.InputPages = pages
			return c.runPlan(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the full plan as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.PagesPerSide, "nup", "n", opts.PagesPerSide, "pages per sheet side (N-up)")
	cmd.Flags().Float64Var(&opts.TargetRatio, "ratio", opts.TargetRatio, "rows/columns ratio preferred when grids tie on waste")

	return cmd
}

// runPlan computes the plan and prints a summary.
func (c *CLI) runPlan(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	plan, cacheHit, err := runner.PlanWithCacheInfo(ctx, &opts)
	if err != nil {
		return err
	}

	printSuccess("Plan complete")
	printKeyValue("Grid", plan.Layout.String())
	printKeyValue("Sheets", strconv.Itoa(plan.Stats.SheetCount))
	printKeyValue("Total slots", strconv.Itoa(plan.Stats.TotalPages))
	if plan.Stats.PaddingPages > 0 {
		printWarning("%d blank page(s) pad the final sheets", plan.Stats.PaddingPages)
	}
	printStats(plan.Stats.InputPages, plan.Stats.SheetCount, cacheHit)

	if output != "" {
		data, err := pipeline.RenderFormat(plan, pipeline.FormatJSON, opts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}

	printNewline()
	printNextStep("Render", fmt.Sprintf("cutstack render --pages %d --nup %d", opts.InputPages, opts.PagesPerSide))

	return nil
}
