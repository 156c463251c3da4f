package handwriting

import (
	"math"

	"github.com/gogpu/ink"
)

// strikeStep is the distance between wobbled points along a strike.
const strikeStep = 5

// StrikePoints returns the wobbled polyline for a strike from (x0, y0) to
// (x1, y1). The first point is the exact start; then one point every 5
// pixels along the segment, each offset independently on both axes by up
// to wobble/2.
func (e *Engine) StrikePoints(x0, y0, x1, y1, wobble float64) []ink.Point {
	pts := []ink.Point{ink.Pt(x0, y0)}
	dist := math.Hypot(x1-x0, y1-y0)
	if dist == 0 {
		return pts
	}
	segments := dist / strikeStep
	for i := 0; float64(i) <= segments; i++ {
		t := float64(i) / segments
		offX := centered(e.rand, wobble)
		offY := centered(e.rand, wobble)
		pts = append(pts, ink.Pt(x0+(x1-x0)*t+offX, y0+(y1-y0)*t+offY))
	}
	return pts
}

// DrawStrike renders a hand-wobbled straight line and returns its points.
func (e *Engine) DrawStrike(dst *ink.PixelBuffer, x0, y0, x1, y1 float64, s StrikeStyle) []ink.Point {
	pts := e.StrikePoints(x0, y0, x1, y1, s.Wobble)
	dst.PaintStroke(pts, ink.Paint{
		Color:   s.Color,
		Opacity: 1,
		Width:   s.Thickness,
		Cap:     ink.LineCapButt,
		Mode:    ink.SourceOver,
	})
	return pts
}
