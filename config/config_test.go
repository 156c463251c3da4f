package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/handwriting"
	"github.com/gogpu/ink/tool"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	opts, err := cfg.PageOptions()
	if err != nil {
		t.Fatalf("PageOptions: %v", err)
	}
	def := handwriting.DefaultPageOptions()
	if diff := cmp.Diff(def, opts); diff != "" {
		t.Errorf("default page options differ from the generator defaults (-want +got):\n%s", diff)
	}
}

const sample = `
tools:
  marker:
    size: 20
    color: "#0000ff"
  eraser:
    size: 40
history:
  limit: 5
handwriting:
  seed: 42
  presets:
    shaky:
      font_size: 28
      chaos: 100
      color: "#112233"
generator:
  preset: shaky
  paper: lined
  tint: vintage
  density: 80
server:
  addr: ":9090"
  read_timeout: 5s
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.History.Limit != 5 {
		t.Errorf("History.Limit = %d", cfg.History.Limit)
	}
	if cfg.Handwriting.Seed == nil || *cfg.Handwriting.Seed != 42 {
		t.Errorf("Seed = %v", cfg.Handwriting.Seed)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout.Seconds() != 5 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.MaxUploadBytes != Default().Server.MaxUploadBytes {
		t.Error("unset server field lost its default")
	}
	if _, ok := cfg.Handwriting.Presets["neat"]; !ok {
		t.Error("built-in presets dropped by a file that adds one")
	}

	style, err := cfg.Style("shaky")
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	want := handwriting.Style{FontSize: 28, Jitter: 1, Rotation: 5, SpacingVariance: 100.0 / 30, Color: ink.Hex("#112233")}
	if diff := cmp.Diff(want, style); diff != "" {
		t.Errorf("Style(shaky) (-want +got):\n%s", diff)
	}

	opts, err := cfg.PageOptions()
	if err != nil {
		t.Fatalf("PageOptions: %v", err)
	}
	if opts.Paper != handwriting.Lined || opts.Tint != handwriting.Vintage || opts.Density != 80 {
		t.Errorf("PageOptions = %+v", opts)
	}
	if opts.Style.Color != ink.Hex("#1a1a2e") {
		t.Errorf("generator ink = %v, want the generator default", opts.Style.Color)
	}
}

func TestToolDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	m := tool.New(cfg.ToolDefaults()...)
	if err := m.Toggle(tool.Marker); err != nil {
		t.Fatal(err)
	}
	got, _ := m.Config()
	want := tool.Config{Kind: tool.Marker, Size: 20, Color: ink.Hex("#0000ff"), Opacity: 0.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("marker defaults (-want +got):\n%s", diff)
	}
	if err := m.Toggle(tool.Eraser); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.Config(); got.Size != 40 {
		t.Errorf("eraser size = %v, want 40", got.Size)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown tool", "tools:\n  laser: {size: 3}\n", "tools.laser"},
		{"bad tool color", "tools:\n  marker: {color: red}\n", "tools.marker.color"},
		{"unknown preset", "generator:\n  preset: fancy\n", "generator.preset"},
		{"bad paper", "generator:\n  paper: papyrus\n", "unknown paper"},
		{"font without path", "handwriting:\n  fonts:\n    - family: Hand\n", "handwriting.fonts[0]"},
		{"negative history", "history:\n  limit: -1\n", "history.limit"},
		{"negative pixel budget", "server:\n  max_image_pixels: -5\n", "server.max_image_pixels"},
		{"margins", "generator:\n  page: {width: 100, height: 100, margin_left: 60, margin_right: 60}\n", "invalid page"},
		{"syntax", "tools: [", "config: parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ink.yaml")
	cfg := Default()
	cfg.Generator.Density = 65
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip (-saved +loaded):\n%s", diff)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault(missing) = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file did not yield defaults:\n%s", diff)
	}
}

func TestLoadResolvesFontPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ink.yaml")
	data := "handwriting:\n  fonts:\n    - family: Hand\n      path: fonts/hand.ttf\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Handwriting.Fonts[0].Path, filepath.Join(dir, "fonts", "hand.ttf"); got != want {
		t.Errorf("font path = %q, want %q", got, want)
	}
	if _, err := cfg.Engine(); err == nil {
		t.Error("Engine() succeeded with a missing font file")
	}
}

func TestEngineSeeded(t *testing.T) {
	cfg, err := Parse([]byte("handwriting:\n  seed: 7\n"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	b, _ := cfg.Engine()
	style := handwriting.FromChaos(handwriting.DefaultStyle(), 50)
	pa, _ := a.Placements("seed", 0, 0, style)
	pb, _ := b.Placements("seed", 0, 0, style)
	if diff := cmp.Diff(pa, pb); diff != "" {
		t.Errorf("seeded engines differ:\n%s", diff)
	}
}
