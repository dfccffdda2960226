package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	want := Default()
	if cfg.Layout.TargetRatio != want.Layout.TargetRatio || cfg.Server.Addr != want.Server.Addr {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
target_ratio = 0.707
pages_per_side = 4

[render]
formats = ["svg", "pdf"]
cut_lines = false

[server]
addr = ":9090"
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.TargetRatio != 0.707 {
		t.Errorf("TargetRatio = %v, want 0.707", cfg.Layout.TargetRatio)
	}
	if cfg.Layout.PagesPerSide != 4 {
		t.Errorf("PagesPerSide = %d, want 4", cfg.Layout.PagesPerSide)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "pdf" {
		t.Errorf("Formats = %v, want [svg pdf]", cfg.Render.Formats)
	}
	if cfg.Render.CutLines {
		t.Error("CutLines should be false")
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Server.RedisAddr)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout\ntarget_ratio = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should fail")
	}
}

func TestLoadSanitizesZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\ntarget_ratio = -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.TargetRatio != Default().Layout.TargetRatio {
		t.Errorf("TargetRatio = %v, want default", cfg.Layout.TargetRatio)
	}
}
