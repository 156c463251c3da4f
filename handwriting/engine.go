package handwriting

import (
	"errors"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ink"
)

// ErrNoFont is returned when an engine is given a face without a parsed font.
var ErrNoFont = errors.New("handwriting: face has no font")

// Option configures an Engine during creation.
type Option func(*options)

type options struct {
	face     *Face
	families map[string]*Face
	rand     Rand
	seed     *uint64
}

// WithFace sets the default face used when a style names no family or an
// unknown one.
func WithFace(f *Face) Option {
	return func(o *options) {
		if f != nil {
			o.face = f
		}
	}
}

// WithFamily registers a face under a family name.
func WithFamily(name string, f *Face) Option {
	return func(o *options) {
		if f != nil {
			o.families[name] = f
		}
	}
}

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed seeds a PCG source. It is ignored when WithRand is also given.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// Engine renders handwritten text and strikes. It is not safe for
// concurrent use because it consumes a shared random source.
type Engine struct {
	face     *Face
	families map[string]*Face
	rand     Rand
	shapers  map[*Face]*Shaper
}

// NewEngine creates an engine. Without options it uses Go Regular and a
// time-seeded source.
func NewEngine(opts ...Option) (*Engine, error) {
	o := options{
		families: map[string]*Face{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.face == nil {
		o.face = GoRegular()
	}
	if _, ok := o.families["Go"]; !ok {
		o.families["Go"] = GoRegular()
	}
	if _, ok := o.families["Go Italic"]; !ok {
		o.families["Go Italic"] = GoItalic()
	}
	if o.rand == nil {
		seed := timeSeed()
		if o.seed != nil {
			seed = *o.seed
		}
		o.rand = NewRand(seed)
	}
	if o.face.font == nil {
		return nil, ErrNoFont
	}
	return &Engine{
		face:     o.face,
		families: o.families,
		rand:     o.rand,
		shapers:  map[*Face]*Shaper{},
	}, nil
}

// Face returns the face used for style, falling back to the default face.
func (e *Engine) Face(style Style) *Face {
	if f, ok := e.families[style.FontFamily]; ok && style.FontFamily != "" {
		return f
	}
	return e.face
}

// Families returns the registered family names.
func (e *Engine) Families() []string {
	names := make([]string, 0, len(e.families))
	for n := range e.families {
		names = append(names, n)
	}
	return names
}

// Fork returns an engine sharing e's faces but drawing from r. Engines are
// not safe for concurrent use; fork one per goroutine. A nil r seeds from
// the clock.
func (e *Engine) Fork(r Rand) *Engine {
	if r == nil {
		r = NewRand(timeSeed())
	}
	return &Engine{
		face:     e.face,
		families: e.families,
		rand:     r,
		shapers:  map[*Face]*Shaper{},
	}
}

// SetRand replaces the random source.
func (e *Engine) SetRand(r Rand) {
	if r != nil {
		e.rand = r
	}
}

// Measure returns the shaped width of text in style.
func (e *Engine) Measure(text string, style Style) float64 {
	f := e.Face(style)
	s, ok := e.shapers[f]
	if !ok {
		s = NewShaper(f)
		e.shapers[f] = s
	}
	return s.Measure(norm.NFC.String(text), style.FontSize)
}

// Ascent returns the ascent of the style's face at its size.
func (e *Engine) Ascent(style Style) float64 {
	return e.Face(style).Ascent(style.FontSize)
}

// Placement is the transform of one glyph.
type Placement struct {
	Rune rune

	// X and Y are the glyph origin after jitter.
	X, Y float64

	// Angle is the rotation in radians about the origin.
	Angle float64

	// Advance is the glyph's natural advance width.
	Advance float64

	// Spacing is the random change added to the advance.
	Spacing float64
}

// Matrix returns the glyph-to-run transform.
func (p Placement) Matrix() ink.Matrix {
	return ink.Translate(p.X, p.Y).Multiply(ink.Rotate(p.Angle))
}

// Placements computes glyph transforms for text starting at (x, y) without
// drawing. It consumes the random source exactly as RenderText does and
// returns the final cursor position.
func (e *Engine) Placements(text string, x, y float64, style Style) ([]Placement, float64) {
	style = style.Clamp()
	face := e.Face(style)
	text = norm.NFC.String(text)

	out := make([]Placement, 0, len(text))
	cursor := x
	for _, r := range text {
		angle := centered(e.rand, style.Rotation) * math.Pi / 180
		offX := centered(e.rand, style.Jitter)
		offY := centered(e.rand, style.Jitter)
		adv := face.Advance(r, style.FontSize)
		spacing := centered(e.rand, style.SpacingVariance)

		out = append(out, Placement{
			Rune:    r,
			X:       cursor + offX,
			Y:       y + offY,
			Angle:   angle,
			Advance: adv,
			Spacing: spacing,
		})
		cursor += adv + spacing
	}
	return out, cursor
}

// RenderText draws text with its baseline starting at (x, y) and returns
// the cursor x after the last glyph.
func (e *Engine) RenderText(dst *ink.PixelBuffer, text string, x, y float64, style Style) float64 {
	pl, end := e.Placements(text, x, y, style)
	e.draw(dst, pl, ink.Identity(), style)
	return end
}

// RenderTextAt draws text in a coordinate system given by m, with the
// baseline starting at the origin, and returns the run's advance.
func (e *Engine) RenderTextAt(dst *ink.PixelBuffer, text string, m ink.Matrix, style Style) float64 {
	pl, end := e.Placements(text, 0, 0, style)
	e.draw(dst, pl, m, style)
	return end
}

func (e *Engine) draw(dst *ink.PixelBuffer, pl []Placement, m ink.Matrix, style Style) {
	style = style.Clamp()
	face := e.Face(style)
	for _, p := range pl {
		outline, err := face.Outline(p.Rune, style.FontSize)
		if err != nil {
			ink.Logger().Debug("handwriting: skip glyph", "rune", p.Rune, "err", err)
			continue
		}
		if !outline.HasCurrentPoint() {
			continue
		}
		dst.FillPath(outline.Transform(m.Multiply(p.Matrix())), style.Color, ink.SourceOver)
	}
}
