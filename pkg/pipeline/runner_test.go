package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cutstack/cutstack/pkg/cache"
	"github.com/cutstack/cutstack/pkg/errors"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(c, nil, logger)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRunnerExecute(t *testing.T) {
	r := testRunner(t)

	result, err := r.Execute(context.Background(), Options{
		InputPages:   8,
		PagesPerSide: 2,
		Formats:      []string{FormatSVG, FormatJSON},
		PageNumbers:  true,
		CutLines:     true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Plan == nil {
		t.Fatal("result has no plan")
	}
	if got := result.Plan.Layout.String(); got != "1×2" {
		t.Errorf("layout = %s, want 1×2", got)
	}
	if result.Stats.SheetCount != 2 {
		t.Errorf("sheet count = %d, want 2", result.Stats.SheetCount)
	}
	if result.PlanHash == "" {
		t.Error("plan hash should be set")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Error("missing or malformed SVG artifact")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("missing JSON artifact")
	}

	if result.CacheInfo.PlanHit || result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	r := testRunner(t)
	opts := Options{InputPages: 16, PagesPerSide: 4, Formats: []string{FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.PlanHit {
		t.Error("second run should hit the plan cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from computed artifact")
	}
}

func TestRunnerExecuteValidation(t *testing.T) {
	r := testRunner(t)

	_, err := r.Execute(context.Background(), Options{InputPages: 0, PagesPerSide: 2})
	if errors.GetCode(err) != errors.ErrCodeInvalidPageCount {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPageCount)
	}

	_, err = r.Execute(context.Background(), Options{InputPages: 8, PagesPerSide: 200})
	if errors.GetCode(err) != errors.ErrCodeInvalidPagesPerSheet {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPagesPerSheet)
	}
}

func TestRunnerCountMissingFile(t *testing.T) {
	r := testRunner(t)

	_, err := r.Count(context.Background(), "/nonexistent/input.pdf")
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestRunnerPlanNullCache(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(nil, nil, logger)
	defer r.Close()

	plan, err := r.Plan(context.Background(), Options{InputPages: 9, PagesPerSide: 9})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := plan.Layout.String(); got != "3×3" {
		t.Errorf("layout = %s, want 3×3", got)
	}
}

func TestRenderFormatUnknown(t *testing.T) {
	r := testRunner(t)

	plan, err := r.Plan(context.Background(), Options{InputPages: 4, PagesPerSide: 2})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	_, err = RenderFormat(plan, "bmp", Options{})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}
