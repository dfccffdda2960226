package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cutstack/cutstack/pkg/cache"
	"github.com/cutstack/cutstack/pkg/errors"
	"github.com/cutstack/cutstack/pkg/imposition"
	"github.com/cutstack/cutstack/pkg/observability"
	"github.com/cutstack/cutstack/pkg/pagecount"
)

// =============================================================================
// Runner - Pipeline Execution with Caching
// =============================================================================

// Runner executes the imposition pipeline with caching support.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a nil
// keyer selects the default SHA-256 keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, keyer: keyer, logger: logger}
}

// Close releases cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Execute runs the complete pipeline: count (when an input document is given),
// plan, and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Count. Only runs when the page count must come from a document.
	if opts.Input != "" && opts.InputPages == 0 {
		start := time.Now()
		pages, hit, err := r.CountWithCacheInfo(ctx, opts.Input)
		if err != nil {
			return nil, err
		}
		opts.InputPages = pages
		result.CacheInfo.CountHit = hit
		result.Stats.CountTime = time.Since(start)
	}

	// Stage 2: Plan.
	start := time.Now()
	plan, hit, err := r.PlanWithCacheInfo(ctx, &opts)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.CacheInfo.PlanHit = hit
	result.Stats.PlanTime = time.Since(start)
	result.Stats.InputPages = plan.Stats.InputPages
	result.Stats.SheetCount = plan.Stats.SheetCount

	planData, err := json.Marshal(plan)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan")
	}
	result.PlanHash = cache.Hash(planData)

	// Stage 3: Render.
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, plan, result.PlanHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(start)

	return result, nil
}

// =============================================================================
// Stage 1: Count
// =============================================================================

// CountWithCacheInfo determines the page count of the document at path,
// reporting whether the count came from cache.
func (r *Runner) CountWithCacheInfo(ctx context.Context, path string) (int, bool, error) {
	start := time.Now()
	observability.Pipeline().OnCountStart(ctx, path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		err = errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		observability.Pipeline().OnCountComplete(ctx, path, 0, time.Since(start), err)
		return 0, false, err
	}
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
		observability.Pipeline().OnCountComplete(ctx, path, 0, time.Since(start), err)
		return 0, false, err
	}

	key := r.keyer.CountKey(cache.Hash(data))
	if cached, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
		if pages, perr := strconv.Atoi(string(cached)); perr == nil && pages > 0 {
			observability.Cache().OnCacheHit(ctx, "count")
			observability.Pipeline().OnCountComplete(ctx, path, pages, time.Since(start), nil)
			r.logger.Debug("page count cache hit", "path", path, "pages", pages)
			return pages, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "count")

	pages, err := pagecount.CountBytes(data)
	observability.Pipeline().OnCountComplete(ctx, path, pages, time.Since(start), err)
	if err != nil {
		return 0, false, err
	}

	encoded := []byte(strconv.Itoa(pages))
	if cerr := r.cache.Set(ctx, key, encoded, cache.TTLCount); cerr != nil {
		r.logger.Warn("failed to cache page count", "error", cerr)
	} else {
		observability.Cache().OnCacheSet(ctx, "count", len(encoded))
	}

	r.logger.Debug("counted pages", "path", path, "pages", pages)
	return pages, false, nil
}

// Count determines the page count of the document at path.
func (r *Runner) Count(ctx context.Context, path string) (int, error) {
	pages, _, err := r.CountWithCacheInfo(ctx, path)
	return pages, err
}

// =============================================================================
// Stage 2: Plan
// =============================================================================

// PlanWithCacheInfo computes the imposition plan for opts, reporting whether
// it came from cache. Plan inputs are validated here so that counts supplied
// by the count stage pass through the same bounds checks as direct ones.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts *Options) (*imposition.Plan, bool, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnPlanStart(ctx, opts.InputPages, opts.PagesPerSide)

	key := r.keyer.PlanKey(opts.PlanKeyOpts())
	if cached, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
		var plan imposition.Plan
		if jerr := json.Unmarshal(cached, &plan); jerr == nil {
			observability.Cache().OnCacheHit(ctx, "plan")
			observability.Pipeline().OnPlanComplete(ctx, plan.Stats.SheetCount, time.Since(start), nil)
			r.logger.Debug("plan cache hit", "pages", opts.InputPages, "per_side", opts.PagesPerSide)
			return &plan, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	plan, err := imposition.Impose(opts.InputPages, opts.PagesPerSide,
		imposition.WithTargetRatio(opts.TargetRatio))
	if err != nil {
		observability.Pipeline().OnPlanComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnPlanComplete(ctx, plan.Stats.SheetCount, time.Since(start), nil)

	if data, jerr := json.Marshal(plan); jerr == nil {
		if cerr := r.cache.Set(ctx, key, data, cache.TTLPlan); cerr != nil {
			r.logger.Warn("failed to cache plan", "error", cerr)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}

	r.logger.Debug("computed plan",
		"pages", opts.InputPages,
		"per_side", opts.PagesPerSide,
		"grid", plan.Layout.String(),
		"sheets", plan.Stats.SheetCount)
	return plan, false, nil
}

// Plan computes the imposition plan for opts.
func (r *Runner) Plan(ctx context.Context, opts Options) (*imposition.Plan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, &opts)
	return plan, err
}

// =============================================================================
// Stage 3: Render
// =============================================================================

// RenderWithCacheInfo renders plan into all requested formats, reporting
// whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *imposition.Plan, planHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}

		key := r.keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if cached, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = cached
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := RenderFormat(plan, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if cerr := r.cache.Set(ctx, key, data, cache.TTLArtifact); cerr != nil {
			r.logger.Warn("failed to cache artifact", "format", format, "error", cerr)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		r.logger.Debug("rendered artifact", "format", format, "bytes", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit, nil
}

// Render renders plan into all requested formats without cache bookkeeping.
func (r *Runner) Render(ctx context.Context, plan *imposition.Plan, opts Options) (map[string][]byte, error) {
	planData, err := json.Marshal(plan)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan")
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, cache.Hash(planData), opts)
	return artifacts, err
}
