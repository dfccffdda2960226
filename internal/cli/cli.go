// Package cli implements the cutstack command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cutstack/cutstack/pkg/buildinfo"
	"github.com/cutstack/cutstack/pkg/cache"
	"github.com/cutstack/cutstack/pkg/config"
	"github.com/cutstack/cutstack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cutstack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the user's
// configuration file (or defaults when none exists).
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)
	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Warn("ignoring malformed config", "error", err)
		cfg = config.Default()
	}
	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cutstack",
		Short:        "Cutstack computes cut-and-stack imposition layouts",
		Long:         `Cutstack arranges the pages of a document onto double-sided sheets so that after printing, cutting, and stacking, the pieces read in original page order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.planCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.imposeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cutstack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// newOptions builds pipeline options seeded from the user configuration.
func (c *CLI) newOptions() pipeline.Options {
	return pipeline.Options{
		PagesPerSide: c.Config.Layout.PagesPerSide,
		TargetRatio:  c.Config.Layout.TargetRatio,
		Formats:      c.Config.Render.Formats,
		CutLines:     c.Config.Render.CutLines,
		PageNumbers:  c.Config.Render.PageNumbers,
		Logger:       c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
