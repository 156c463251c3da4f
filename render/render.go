// Package render composites sampled pointer strokes onto a PixelBuffer.
//
// Two strategies exist. Incremental draws each new segment directly and
// suits opaque tools. Replay restores the pre-stroke snapshot on every
// sample and redraws the whole path as one mask, so a translucent stroke
// never darkens where it crosses itself.
package render

import (
	"github.com/gogpu/ink"
)

// Strategy selects how a stroke reaches the buffer.
type Strategy uint8

const (
	// Incremental draws the segment previous->current on each sample.
	Incremental Strategy = iota
	// Replay restores the pre-stroke state and redraws every sample.
	Replay
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Incremental:
		return "incremental"
	case Replay:
		return "replay"
	default:
		return "unknown"
	}
}

// Stroke is one gesture in progress. It owns the sampled points and, for
// the replay strategy, the snapshot taken just before the gesture began.
type Stroke struct {
	strategy Strategy
	paint    ink.Paint
	points   ink.Stroke
	pre      *ink.Snapshot
}

// Begin starts a stroke at p and paints a round dot there.
func Begin(buf *ink.PixelBuffer, strategy Strategy, paint ink.Paint, p ink.Point) *Stroke {
	paint.Cap = ink.LineCapRound
	s := &Stroke{
		strategy: strategy,
		paint:    paint,
		points:   ink.Stroke{p},
	}
	if strategy == Replay {
		s.pre = buf.Snapshot()
	}
	buf.PaintStroke(s.points, s.paint)
	return s
}

// Add appends a sample and updates the buffer. Repeated samples at the
// same position are ignored.
func (s *Stroke) Add(buf *ink.PixelBuffer, p ink.Point) {
	last, _ := s.points.Last()
	if p == last {
		return
	}
	s.points = append(s.points, p)

	switch s.strategy {
	case Replay:
		if err := buf.Restore(s.pre); err != nil {
			ink.Logger().Warn("render: restore pre-stroke snapshot", "err", err)
			return
		}
		buf.PaintStroke(s.points, s.paint)
	default:
		buf.PaintStroke([]ink.Point{last, p}, s.paint)
	}
}

// Points returns the samples collected so far.
func (s *Stroke) Points() ink.Stroke {
	return s.points
}

// Pre returns the pre-stroke snapshot, or nil for incremental strokes.
func (s *Stroke) Pre() *ink.Snapshot {
	return s.pre
}

// Strategy returns the stroke's rendering strategy.
func (s *Stroke) Strategy() Strategy {
	return s.strategy
}

// Paint returns the paint applied to the stroke.
func (s *Stroke) Paint() ink.Paint {
	return s.paint
}
