package handwriting

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Measurer returns the rendered width of a run of text.
type Measurer interface {
	Measure(text string, size float64) float64
}

// Shaper measures text with HarfBuzz shaping via go-text/typesetting, so
// kerning and ligatures are reflected in word widths.
//
// Shaper is safe for concurrent use. The parsed font is shared; faces and
// HarfbuzzShaper instances are per call because neither is safe for
// concurrent use.
type Shaper struct {
	face *Face

	shaperPool sync.Pool

	once    sync.Once
	gtFont  *font.Font
	initErr error
}

// NewShaper creates a shaper for face.
func NewShaper(face *Face) *Shaper {
	return &Shaper{
		face: face,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

func (s *Shaper) parsed() (*font.Font, error) {
	s.once.Do(func() {
		f, err := font.ParseTTF(bytes.NewReader(s.face.data))
		if err != nil {
			s.initErr = err
			return
		}
		s.gtFont = f.Font
	})
	return s.gtFont, s.initErr
}

// Measure returns the advance width of text at size pixels. When the font
// cannot be shaped it falls back to summing per-rune advances.
func (s *Shaper) Measure(text string, size float64) float64 {
	if text == "" {
		return 0
	}
	f, err := s.parsed()
	if err != nil {
		return sumAdvances(s.face, text, size)
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	var w fixed.Int26_6
	for _, g := range out.Glyphs {
		w += g.Advance
	}
	return fixedToFloat64(w)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// sumAdvances adds per-rune advances without shaping.
func sumAdvances(face *Face, text string, size float64) float64 {
	var w float64
	for _, r := range text {
		w += face.Advance(r, size)
	}
	return w
}
