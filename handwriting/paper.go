package handwriting

import (
	"fmt"

	"github.com/gogpu/ink"
)

// Paper is the ruling drawn under generated text.
type Paper string

const (
	// Plain has no ruling.
	Plain Paper = "plain"
	// Lined has horizontal rules every 30 px and a red margin line.
	Lined Paper = "lined"
	// Grid has a 20 px square grid.
	Grid Paper = "grid"
)

// Tint is the paper base color.
type Tint string

const (
	// Standard is white paper.
	Standard Tint = "standard"
	// Vintage is warm off-white paper.
	Vintage Tint = "vintage"
	// Legal is a yellow legal pad.
	Legal Tint = "legal"
)

// Color returns the base color of the tint. Unknown tints are white.
func (t Tint) Color() ink.RGBA {
	switch t {
	case Vintage:
		return ink.Hex("#fdfaf0")
	case Legal:
		return ink.Hex("#fff59d")
	default:
		return ink.White
	}
}

// ParsePaper validates a paper name.
func ParsePaper(s string) (Paper, error) {
	switch p := Paper(s); p {
	case Plain, Lined, Grid:
		return p, nil
	case "":
		return Plain, nil
	}
	return "", fmt.Errorf("handwriting: unknown paper %q", s)
}

// ParseTint validates a tint name.
func ParseTint(s string) (Tint, error) {
	switch t := Tint(s); t {
	case Standard, Vintage, Legal:
		return t, nil
	case "":
		return Standard, nil
	}
	return "", fmt.Errorf("handwriting: unknown tint %q", s)
}

// Ruling constants.
const (
	RuleSpacing = 30
	RuleStart   = 100
	RuleInset   = 40
	MarginLineX = 60
	GridSpacing = 20
)

var (
	ruleColor   = ink.Hex("#e5e7eb")
	marginColor = ink.Hex("#fca5a5")
)

// DrawPaper fills dst with the tint and draws the ruling for paper.
func DrawPaper(dst *ink.PixelBuffer, paper Paper, tint Tint) {
	w, h := float64(dst.Width()), float64(dst.Height())
	dst.Fill(tint.Color())

	line := func(x0, y0, x1, y1, width float64, c ink.RGBA) {
		dst.PaintStroke([]ink.Point{ink.Pt(x0, y0), ink.Pt(x1, y1)}, ink.Paint{
			Color:   c,
			Opacity: 1,
			Width:   width,
			Cap:     ink.LineCapButt,
		})
	}

	switch paper {
	case Lined:
		for y := float64(RuleStart); y < h; y += RuleSpacing {
			line(RuleInset, y, w-RuleInset, y, 1, ruleColor)
		}
		line(MarginLineX, 0, MarginLineX, h, 1, marginColor)
	case Grid:
		for x := 0.0; x < w; x += GridSpacing {
			line(x, 0, x, h, 0.5, ruleColor)
		}
		for y := 0.0; y < h; y += GridSpacing {
			line(0, y, w, y, 0.5, ruleColor)
		}
	}
}
