package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cutstack/cutstack/pkg/pipeline"
)

// renderCommand creates the render command for generating cut guides.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render sheet layouts as SVG, PNG, PDF, or JSON",
		Long: `Render the sheet layouts of an imposition plan.

Give the page count directly with --pages, or point --input at a PDF to have
the page count read from the document. Each requested format is written to its
own file next to the output base path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if opts.InputPages == 0 && opts.Input == "" {
				return fmt.Errorf("either --pages or --input is required")
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().IntVarP(&opts.InputPages, "pages", "p", 0, "number of pages to impose")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "PDF whose page count should be used")
	cmd.Flags().IntVarP(&opts.PagesPerSide, "nup", "n", opts.PagesPerSide, "pages per sheet side (N-up)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.TargetRatio, "ratio", opts.TargetRatio, "rows/columns ratio preferred when grids tie on waste")
	cmd.Flags().BoolVar(&opts.CutLines, "cut-lines", opts.CutLines, "draw dashed cut lines")
	cmd.Flags().BoolVar(&opts.PageNumbers, "page-numbers", opts.PageNumbers, "label cells with page numbers")

	return cmd
}

// runRender executes the pipeline and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering sheets...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.InputPages, result.Stats.SheetCount, result.CacheInfo.RenderHit)

	return nil
}

// writeArtifacts writes each rendered format to its own file and returns the
// written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	base := basePath(output)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		var path string
		if output != "" && len(formats) == 1 {
			path = output
		} else {
			path = fmt.Sprintf("%s.%s", base, format)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path, stripping a known format extension.
func basePath(output string) string {
	if output == "" {
		return "sheets"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
