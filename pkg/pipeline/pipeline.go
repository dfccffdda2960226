// Package pipeline provides the core imposition pipeline for cutstack.
//
// This package implements the complete count → plan → render pipeline used by
// the CLI, the HTTP API, and the interactive preview. Centralizing this logic
// keeps behavior identical across entry points: what the preview shows is
// exactly what the renderer produces.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Count: Determine the logical page count of an input document
//  2. Plan: Compute the imposition plan (grid, sheet assignments, cells)
//  3. Render: Generate artifacts in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPages:   48,
//	    PagesPerSide: 4,
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cutstack/cutstack/pkg/cache"
	"github.com/cutstack/cutstack/pkg/errors"
	"github.com/cutstack/cutstack/pkg/imposition"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Preview
// =============================================================================

const (
	// DefaultPagesPerSide is the N-up value used by entry surfaces when the
	// user gives none.
	DefaultPagesPerSide = 2
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the imposition pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Count options
	Input string `json:"input,omitempty"` // path to a PDF; counted when InputPages is 0

	// Plan options
	InputPages   int     `json:"input_pages,omitempty"`
	PagesPerSide int     `json:"pages_per_sheet,omitempty"`
	TargetRatio  float64 `json:"target_ratio,omitempty"`

	// Preview marks a preview/demo context: an InputPages of 0 is replaced
	// by imposition.PreviewDefaultPages instead of being rejected.
	Preview bool `json:"preview,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	CutLines    bool     `json:"cut_lines,omitempty"`
	PageNumbers bool     `json:"page_numbers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the computed imposition plan.
	Plan *imposition.Plan

	// PlanHash is the content hash of the serialized plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputPages int
	SheetCount int
	CountTime  time.Duration
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CountHit  bool // Whether the page count came from cache
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
//
// Plan bounds are not checked here when a count stage will supply the page
// count; PlanWithCacheInfo validates them once the count is known.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetPlanDefaults()
	o.SetRenderDefaults()
	if o.Input == "" {
		if err := o.ValidateForPlan(); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPlanDefaults applies plan-stage defaults: the preview fallback for a
// zero page count and the standard target ratio.
func (o *Options) SetPlanDefaults() {
	if o.Preview && o.InputPages == 0 {
		o.InputPages = imposition.PreviewDefaultPages
	}
	if o.TargetRatio <= 0 {
		o.TargetRatio = imposition.DefaultTargetRatio
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPlan validates the plan-stage inputs against the supported
// bounds. Defaults are applied first.
func (o *Options) ValidateForPlan() error {
	o.SetPlanDefaults()
	if err := errors.ValidatePageCount(o.InputPages); err != nil {
		return err
	}
	return errors.ValidatePagesPerSide(o.PagesPerSide)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// PlanKeyOpts returns cache key options for plan computation.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		InputPages:   o.InputPages,
		PagesPerSide: o.PagesPerSide,
		TargetRatio:  o.TargetRatio,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		ShowNumbers: o.PageNumbers,
		CutLines:    o.CutLines,
	}
}
