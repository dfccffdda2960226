package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cutstack/cutstack/pkg/pipeline"
)

// imposeCommand creates the impose command: the one-shot count-plan-render
// flow for a PDF document.
func (c *CLI) imposeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "impose [document.pdf]",
		Short: "Impose a PDF document onto cut-and-stack sheets",
		Long: `Impose a PDF document onto cut-and-stack sheets.

The impose command counts the document's pages, computes the imposition plan,
and renders the cut guide in one step. Output files are named after the input
document unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr)
			return c.runImpose(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().IntVarP(&opts.PagesPerSide, "nup", "n", opts.PagesPerSide, "pages per sheet side (N-up)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.TargetRatio, "ratio", opts.TargetRatio, "rows/columns ratio preferred when grids tie on waste")
	cmd.Flags().BoolVar(&opts.CutLines, "cut-lines", opts.CutLines, "draw dashed cut lines")
	cmd.Flags().BoolVar(&opts.PageNumbers, "page-numbers", opts.PageNumbers, "label cells with page numbers")

	return cmd
}

// runImpose runs the full pipeline for a document and writes the artifacts.
func (c *CLI) runImpose(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Imposing %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Impose failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input)) + "_sheets"
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Imposed %d pages onto %d sheets (%s grid)",
		result.Stats.InputPages, result.Stats.SheetCount, result.Plan.Layout.String())
	if result.Plan.Stats.PaddingPages > 0 {
		printWarning("%d blank page(s) pad the final sheets", result.Plan.Stats.PaddingPages)
	}
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.InputPages, result.Stats.SheetCount, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Preview", fmt.Sprintf("cutstack preview --pages %d --nup %d", result.Stats.InputPages, opts.PagesPerSide))

	return nil
}
