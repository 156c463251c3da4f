package handwriting

import (
	"errors"
	"fmt"

	"github.com/gogpu/ink"
)

// BaseFontSize is the generator font size at density 50.
const BaseFontSize = 24

// ErrInvalidPage is returned for page geometry with no usable area.
var ErrInvalidPage = errors.New("handwriting: invalid page geometry")

// PageOptions configures full-page generation.
type PageOptions struct {
	Page  Page  `yaml:"page" json:"page"`
	Paper Paper `yaml:"paper" json:"paper"`
	Tint  Tint  `yaml:"tint" json:"tint"`

	// Style supplies the family, ink color and per-glyph perturbation.
	// FontSize is derived from Density.
	Style Style `yaml:"style" json:"style"`

	// Density in [0, 100] scales the font: size = 24 x (1 + (50 - d) / 100).
	Density float64 `yaml:"density" json:"density"`

	// Misalignment in [0, 100] sets the per-word random offset range to
	// m/10 pixels and rotation range to m/1000 radians.
	Misalignment float64 `yaml:"misalignment" json:"misalignment"`
}

// DefaultPageOptions returns an A4 plain white page in dark blue ink.
func DefaultPageOptions() PageOptions {
	style := FromChaos(DefaultStyle(), 20)
	style.Color = ink.Hex("#1a1a2e")
	return PageOptions{
		Page:         A4(),
		Paper:        Plain,
		Tint:         Standard,
		Style:        style,
		Density:      50,
		Misalignment: 30,
	}
}

// FontSizeForDensity maps a density in [0, 100] to a font size.
func FontSizeForDensity(density float64) float64 {
	density = min(max(density, 0), 100)
	return BaseFontSize * (1 + (50-density)/100)
}

// Validate checks the page geometry.
func (o PageOptions) Validate() error {
	p := o.Page
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidPage, p.Width, p.Height)
	}
	if p.MarginLeft < 0 || p.MarginRight < 0 || p.MarginLeft+p.MarginRight >= p.Width {
		return fmt.Errorf("%w: horizontal margins %v + %v", ErrInvalidPage, p.MarginLeft, p.MarginRight)
	}
	if p.MarginTop < 0 || p.MarginTop >= p.Height {
		return fmt.Errorf("%w: top margin %v", ErrInvalidPage, p.MarginTop)
	}
	if _, err := ParsePaper(string(o.Paper)); err != nil {
		return err
	}
	_, err := ParseTint(string(o.Tint))
	return err
}

// Generator renders text onto paper pages.
type Generator struct {
	engine *Engine
}

// NewGenerator creates a generator drawing with e.
func NewGenerator(e *Engine) *Generator {
	return &Generator{engine: e}
}

// Engine returns the generator's engine.
func (g *Generator) Engine() *Engine {
	return g.engine
}

// Layout returns the word placement Generate would use.
func (g *Generator) Layout(text string, opts PageOptions) []Word {
	style := opts.Style
	style.FontSize = FontSizeForDensity(opts.Density)
	return Layout(text, engineMeasurer{g.engine, style}, style.FontSize, opts.Page)
}

// Generate renders text and returns one buffer per page. Empty text
// yields a single blank page.
func (g *Generator) Generate(text string, opts PageOptions) ([]*ink.PixelBuffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	style := opts.Style
	style.FontSize = FontSizeForDensity(opts.Density)
	mis := min(max(opts.Misalignment, 0), 100)
	ascent := g.engine.Ascent(style)

	words := Layout(text, engineMeasurer{g.engine, style}, style.FontSize, opts.Page)
	pages := make([]*ink.PixelBuffer, max(Pages(words), 1))
	for i := range pages {
		pages[i] = ink.NewPixelBuffer(int(opts.Page.Width), int(opts.Page.Height))
		DrawPaper(pages[i], opts.Paper, opts.Tint)
	}

	r := g.engine.rand
	for _, w := range words {
		dx := centered(r, mis/10)
		dy := centered(r, mis/10)
		rot := centered(r, mis/1000)
		m := ink.Translate(w.X+dx, w.Y+dy).
			Multiply(ink.Rotate(rot)).
			Multiply(ink.Translate(0, ascent))
		g.engine.RenderTextAt(pages[w.Page], w.Text, m, style)
	}
	ink.Logger().Info("handwriting: generated", "words", len(words), "pages", len(pages))
	return pages, nil
}

type engineMeasurer struct {
	e     *Engine
	style Style
}

func (m engineMeasurer) Measure(text string, size float64) float64 {
	s := m.style
	s.FontSize = size
	return m.e.Measure(text, s)
}

// PreviewText is the sample rendered by Preview.
const PreviewText = "Human Preview 123"

// Preview renders PreviewText at (20, 50) in 24 px on a 300 x 150
// transparent buffer.
func (e *Engine) Preview(style Style) *ink.PixelBuffer {
	pb := ink.NewPixelBuffer(300, 150)
	style.FontSize = 24
	e.RenderText(pb, PreviewText, 20, 50, style)
	return pb
}
