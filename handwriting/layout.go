package handwriting

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LineHeightFactor is the line pitch as a multiple of the font size.
const LineHeightFactor = 1.5

// Page is the page geometry used by Layout, in pixels.
type Page struct {
	Width        float64 `yaml:"width" json:"width"`
	Height       float64 `yaml:"height" json:"height"`
	MarginLeft   float64 `yaml:"margin_left" json:"marginLeft"`
	MarginRight  float64 `yaml:"margin_right" json:"marginRight"`
	MarginTop    float64 `yaml:"margin_top" json:"marginTop"`
	MarginBottom float64 `yaml:"margin_bottom" json:"marginBottom"`
}

// A4 returns an A4 page at 96 DPI with the generator's margins.
func A4() Page {
	return Page{
		Width:        794,
		Height:       1123,
		MarginLeft:   80,
		MarginRight:  80,
		MarginTop:    100,
		MarginBottom: 60,
	}
}

// MaxX returns the x coordinate of the right margin.
func (p Page) MaxX() float64 {
	return p.Width - p.MarginRight
}

// Word is one laid-out word. X and Y locate the top-left of its line box.
type Word struct {
	Text  string
	X, Y  float64
	Width float64
	Line  int
	Page  int
}

// Layout breaks text into words at whitespace and places them greedily.
// Each word is measured with a trailing space. When a word would cross the
// right margin and the line already holds a word, a new line starts at the
// left margin, lineHeight = size x 1.5 below. A word wider than the whole
// line is placed alone on its own line. Lines that would run past the
// bottom margin continue on a new page.
func Layout(text string, m Measurer, size float64, page Page) []Word {
	words := strings.Fields(norm.NFC.String(text))
	if len(words) == 0 {
		return nil
	}
	lineHeight := size * LineHeightFactor
	maxX := page.MaxX()

	out := make([]Word, 0, len(words))
	x, y := page.MarginLeft, page.MarginTop
	line, pg := 0, 0
	lineEmpty := true
	for _, w := range words {
		width := m.Measure(w+" ", size)
		if x+width > maxX && !lineEmpty {
			x = page.MarginLeft
			y += lineHeight
			line++
			lineEmpty = true
			if y+size > page.Height-page.MarginBottom && y > page.MarginTop {
				y = page.MarginTop
				line = 0
				pg++
			}
		}
		out = append(out, Word{Text: w, X: x, Y: y, Width: width, Line: line, Page: pg})
		x += width
		lineEmpty = false
	}
	return out
}

// Pages returns the number of pages spanned by words.
func Pages(words []Word) int {
	if len(words) == 0 {
		return 0
	}
	return words[len(words)-1].Page + 1
}
