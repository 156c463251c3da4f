// Package config loads YAML configuration for the ink commands.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/handwriting"
	"github.com/gogpu/ink/history"
	"github.com/gogpu/ink/tool"
)

// Config is the top-level configuration.
type Config struct {
	Tools       map[string]ToolConfig `yaml:"tools"`
	History     HistoryConfig         `yaml:"history"`
	Handwriting HandwritingConfig     `yaml:"handwriting"`
	Generator   GeneratorConfig       `yaml:"generator"`
	Server      ServerConfig          `yaml:"server"`
}

// ToolConfig overrides the defaults of one annotation tool. Zero fields
// keep the built-in default.
type ToolConfig struct {
	Size    float64 `yaml:"size"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// HistoryConfig sets the per-page undo depth.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// HandwritingConfig configures the handwriting engine.
type HandwritingConfig struct {
	// Seed fixes the random source. Nil seeds from the clock.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Fonts registers extra font families from TrueType/OpenType files.
	Fonts []FontConfig `yaml:"fonts,omitempty"`

	// Presets are named styles selectable by the generator.
	Presets map[string]Preset `yaml:"presets"`
}

// FontConfig names a font file.
type FontConfig struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
}

// Preset is a handwriting style. When Chaos is set it overrides jitter,
// rotation and spacing variance.
type Preset struct {
	handwriting.Style `yaml:",inline"`

	Ink   string   `yaml:"color"`
	Chaos *float64 `yaml:"chaos"`
}

// GeneratorConfig configures full-page generation.
type GeneratorConfig struct {
	Preset       string           `yaml:"preset"`
	Page         handwriting.Page `yaml:"page"`
	Paper        string           `yaml:"paper"`
	Tint         string           `yaml:"tint"`
	Ink          string           `yaml:"ink"`
	Density      float64          `yaml:"density"`
	Misalignment float64          `yaml:"misalignment"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	MaxImagePixels  int           `yaml:"max_image_pixels"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	def := handwriting.DefaultPageOptions()
	return &Config{
		Tools:   map[string]ToolConfig{},
		History: HistoryConfig{Limit: history.DefaultLimit},
		Handwriting: HandwritingConfig{
			Presets: map[string]Preset{
				"neat":   preset(handwriting.FromChaos(handwriting.DefaultStyle(), 5)),
				"casual": preset(handwriting.FromChaos(handwriting.DefaultStyle(), 20)),
				"messy":  preset(handwriting.FromChaos(handwriting.DefaultStyle(), 60)),
			},
		},
		Generator: GeneratorConfig{
			Preset:       "casual",
			Page:         def.Page,
			Paper:        string(def.Paper),
			Tint:         string(def.Tint),
			Ink:          def.Style.Color.HexString(),
			Density:      def.Density,
			Misalignment: def.Misalignment,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadBytes:  32 << 20,
			MaxImagePixels:  ink.DefaultMaxPixels,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

func preset(s handwriting.Style) Preset {
	hex := s.Color.HexString()
	s.Color = ink.RGBA{}
	return Preset{Style: s, Ink: hex}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i, f := range cfg.Handwriting.Fonts {
		if f.Path != "" && !filepath.IsAbs(f.Path) {
			cfg.Handwriting.Fonts[i].Path = filepath.Join(base, f.Path)
		}
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults when path is empty or
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Validate checks names and colors.
func (c *Config) Validate() error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(c.Tools)) {
		if _, err := tool.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("tools.%s: %w", name, err))
		}
		if err := checkColor(c.Tools[name].Color); err != nil {
			errs = append(errs, fmt.Errorf("tools.%s.color: %w", name, err))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Handwriting.Presets)) {
		if err := checkColor(c.Handwriting.Presets[name].Ink); err != nil {
			errs = append(errs, fmt.Errorf("handwriting.presets.%s.color: %w", name, err))
		}
	}
	for i, f := range c.Handwriting.Fonts {
		if f.Family == "" || f.Path == "" {
			errs = append(errs, fmt.Errorf("handwriting.fonts[%d]: family and path are required", i))
		}
	}
	g := c.Generator
	if g.Preset != "" {
		if _, ok := c.Handwriting.Presets[g.Preset]; !ok {
			errs = append(errs, fmt.Errorf("generator.preset: unknown preset %q", g.Preset))
		}
	}
	if err := checkColor(g.Ink); err != nil {
		errs = append(errs, fmt.Errorf("generator.ink: %w", err))
	}
	if c.History.Limit < 0 {
		errs = append(errs, errors.New("history.limit: negative"))
	}
	if c.Server.MaxImagePixels < 0 {
		errs = append(errs, errors.New("server.max_image_pixels: negative"))
	}
	if len(errs) == 0 {
		if _, err := c.PageOptions(); err != nil {
			errs = append(errs, fmt.Errorf("generator: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

var errColor = errors.New("invalid color")

func checkColor(s string) error {
	if s == "" {
		return nil
	}
	if _, err := ink.ParseHex(s); err != nil {
		return fmt.Errorf("%w: %w", errColor, err)
	}
	return nil
}

// ToolDefaults returns the configured tool defaults merged over the
// built-in ones, as options for a tool machine.
func (c *Config) ToolDefaults() []tool.Option {
	var opts []tool.Option
	for _, name := range slices.Sorted(maps.Keys(c.Tools)) {
		kind, err := tool.ParseKind(name)
		if err != nil {
			continue
		}
		t := c.Tools[name]
		cfg := tool.Default(kind)
		if t.Size > 0 {
			cfg.Size = t.Size
		}
		if t.Opacity > 0 {
			cfg.Opacity = t.Opacity
		}
		if col, err := ink.ParseHex(t.Color); err == nil && t.Color != "" {
			cfg.Color = col
		}
		opts = append(opts, tool.WithDefaults(cfg))
	}
	return opts
}

// Style returns the named preset, or the generator's preset when name is
// empty.
func (c *Config) Style(name string) (handwriting.Style, error) {
	if name == "" {
		name = c.Generator.Preset
	}
	if name == "" {
		return handwriting.DefaultStyle(), nil
	}
	p, ok := c.Handwriting.Presets[name]
	if !ok {
		return handwriting.Style{}, fmt.Errorf("config: unknown preset %q", name)
	}
	s := p.Style
	if p.Chaos != nil {
		s = handwriting.FromChaos(s, *p.Chaos)
	}
	s.Color = ink.Black
	if p.Ink != "" {
		col, err := ink.ParseHex(p.Ink)
		if err != nil {
			return handwriting.Style{}, fmt.Errorf("config: preset %q: %w", name, err)
		}
		s.Color = col
	}
	return s.Clamp(), nil
}

// PageOptions returns the generator options.
func (c *Config) PageOptions() (handwriting.PageOptions, error) {
	g := c.Generator
	style, err := c.Style(g.Preset)
	if err != nil {
		return handwriting.PageOptions{}, err
	}
	if g.Ink != "" {
		col, err := ink.ParseHex(g.Ink)
		if err != nil {
			return handwriting.PageOptions{}, fmt.Errorf("%w: %w", errColor, err)
		}
		style.Color = col
	}
	paper, err := handwriting.ParsePaper(g.Paper)
	if err != nil {
		return handwriting.PageOptions{}, err
	}
	tint, err := handwriting.ParseTint(g.Tint)
	if err != nil {
		return handwriting.PageOptions{}, err
	}
	opts := handwriting.PageOptions{
		Page:         g.Page,
		Paper:        paper,
		Tint:         tint,
		Style:        style,
		Density:      g.Density,
		Misalignment: g.Misalignment,
	}
	if err := opts.Validate(); err != nil {
		return handwriting.PageOptions{}, err
	}
	return opts, nil
}

// Engine creates a handwriting engine with the configured seed and fonts.
func (c *Config) Engine() (*handwriting.Engine, error) {
	var opts []handwriting.Option
	if c.Handwriting.Seed != nil {
		opts = append(opts, handwriting.WithSeed(*c.Handwriting.Seed))
	}
	for _, f := range c.Handwriting.Fonts {
		face, err := handwriting.LoadFaceFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("config: font %q: %w", f.Family, err)
		}
		opts = append(opts, handwriting.WithFamily(f.Family, face))
	}
	return handwriting.NewEngine(opts...)
}
