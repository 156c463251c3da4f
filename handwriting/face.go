package handwriting

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink"
)

// Face is a parsed TrueType or OpenType font. It is safe for concurrent use.
type Face struct {
	data []byte
	font *opentype.Font
	name string
}

// LoadFace parses font data.
func LoadFace(data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("handwriting: failed to parse font: %w", err)
	}
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}
	return &Face{data: data, font: f, name: name}, nil
}

// LoadFaceFile reads and parses a font file.
func LoadFaceFile(path string) (*Face, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("handwriting: failed to read font: %w", err)
	}
	return LoadFace(data)
}

var (
	goRegular = sync.OnceValue(func() *Face { return mustLoad(goregular.TTF) })
	goItalic  = sync.OnceValue(func() *Face { return mustLoad(goitalic.TTF) })
)

// GoRegular returns the bundled Go Regular face.
func GoRegular() *Face { return goRegular() }

// GoItalic returns the bundled Go Italic face.
func GoItalic() *Face { return goItalic() }

func mustLoad(data []byte) *Face {
	f, err := LoadFace(data)
	if err != nil {
		panic(err)
	}
	return f
}

// Family returns the font family name, or "" when the font has none.
func (f *Face) Family() string {
	return f.name
}

// Data returns the raw font bytes.
func (f *Face) Data() []byte {
	return f.data
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// glyphRune maps control characters to a space so they advance without
// drawing a missing-glyph box.
func glyphRune(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return ' '
	}
	return r
}

func (f *Face) index(buf *sfnt.Buffer, r rune) sfnt.GlyphIndex {
	idx, err := f.font.GlyphIndex(buf, glyphRune(r))
	if err != nil {
		return 0
	}
	return idx
}

// Advance returns the unhinted advance width of r at size pixels.
func (f *Face) Advance(r rune, size float64) float64 {
	var buf sfnt.Buffer
	adv, err := f.font.GlyphAdvance(&buf, f.index(&buf, r), ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv)
}

// Ascent returns the distance from the top of the em box to the baseline.
func (f *Face) Ascent(size float64) float64 {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, ppem(size), font.HintingNone)
	if err != nil {
		return size * 0.8
	}
	return fixedToFloat64(m.Ascent)
}

// Outline returns the outline of r at size pixels with the origin on the
// baseline and y pointing down. Whitespace yields an empty path.
func (f *Face) Outline(r rune, size float64) (*ink.Path, error) {
	var buf sfnt.Buffer
	segs, err := f.font.LoadGlyph(&buf, f.index(&buf, r), ppem(size), nil)
	if err != nil {
		return nil, fmt.Errorf("handwriting: failed to load glyph %q: %w", r, err)
	}
	p := ink.NewPath()
	pt := func(a fixed.Point26_6) (float64, float64) {
		return fixedToFloat64(a.X), fixedToFloat64(a.Y)
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if p.HasCurrentPoint() {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadraticTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if p.HasCurrentPoint() {
		p.Close()
	}
	return p, nil
}
