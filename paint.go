package ink

import (
	"github.com/gogpu/ink/internal/blend"
	"github.com/gogpu/ink/internal/stroke"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

func (c LineCap) stroke() stroke.Cap {
	switch c {
	case LineCapRound:
		return stroke.CapRound
	case LineCapSquare:
		return stroke.CapSquare
	default:
		return stroke.CapButt
	}
}

// CompositeMode selects how painted pixels combine with the buffer.
type CompositeMode int

const (
	// SourceOver paints the source over existing pixels.
	SourceOver CompositeMode = iota
	// DestinationOut removes existing pixels in proportion to source alpha.
	DestinationOut
	// Copy replaces existing pixels with the coverage-weighted source.
	Copy
)

// String returns the canvas name of the mode.
func (m CompositeMode) String() string {
	return m.blend().String()
}

func (m CompositeMode) blend() blend.Mode {
	switch m {
	case DestinationOut:
		return blend.DestinationOut
	case Copy:
		return blend.Source
	default:
		return blend.SourceOver
	}
}

// Paint describes how a stroke is painted into a PixelBuffer.
// Joins are always round.
type Paint struct {
	// Color is the ink color. Its alpha is multiplied by Opacity.
	Color RGBA

	// Opacity is the global alpha applied to the whole stroke.
	Opacity float64

	// Width is the line width in buffer pixels.
	Width float64

	// Cap is the shape of the stroke ends.
	Cap LineCap

	// Mode is the compositing operation.
	Mode CompositeMode
}

// NewPaint creates an opaque black round-capped paint of width 1.
func NewPaint() Paint {
	return Paint{
		Color:   Black,
		Opacity: 1,
		Width:   1,
		Cap:     LineCapRound,
		Mode:    SourceOver,
	}
}

// Source returns the effective source color with opacity applied.
func (p Paint) Source() RGBA {
	return p.Color.WithAlpha(p.Opacity)
}
