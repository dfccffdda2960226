package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"plan":       false,
		"render":     false,
		"impose":     false,
		"preview":    false,
		"pages":      false,
		"cache":      false,
		"serve":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "sheets"},
		{"guide.svg", "guide"},
		{"guide.pdf", "guide"},
		{"guide", "guide"},
		{"guide.txt", "guide.txt"}, // unknown extension is kept
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "cutstack") {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestNewOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Layout.PagesPerSide = 4
	c.Config.Render.Formats = []string{"json"}

	opts := c.newOptions()
	if opts.PagesPerSide != 4 {
		t.Errorf("PagesPerSide = %d, want 4", opts.PagesPerSide)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}
