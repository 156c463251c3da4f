// Package input maps pointer and touch events from display space into
// backing-buffer space.
//
// The display element may be scaled by layout (CSS or a zoom factor), so a
// pointer position is mapped per axis with scale = buffer / display.
package input

import (
	"math"

	"github.com/gogpu/ink"
)

// Kind identifies the source of an input event.
type Kind uint8

const (
	// KindPointer is a mouse or pen event carrying ClientX/ClientY.
	KindPointer Kind = iota
	// KindTouch is a touch event; the first contact in Touches is used.
	KindTouch
)

// Touch is one contact point of a touch event.
type Touch struct {
	ClientX, ClientY float64
}

// Event is a pointer or touch event in client (display) coordinates.
type Event struct {
	Kind             Kind
	ClientX, ClientY float64
	Touches          []Touch
}

// Rect is the bounding rectangle of the display element in client
// coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Valid reports whether the rectangle has a positive, finite area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0 && !math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0)
}

// Client returns the event's client position. For touch events the first
// contact is selected; ok is false when a touch event has no contacts.
func (e Event) Client() (x, y float64, ok bool) {
	if e.Kind == KindTouch {
		if len(e.Touches) == 0 {
			return 0, 0, false
		}
		return e.Touches[0].ClientX, e.Touches[0].ClientY, true
	}
	return e.ClientX, e.ClientY, true
}

// Map converts an event into buffer coordinates for a buffer of bufW x bufH
// displayed inside rect. ok is false when the rectangle is degenerate or
// the event carries no position.
func Map(ev Event, rect Rect, bufW, bufH int) (ink.Point, bool) {
	if !rect.Valid() || bufW <= 0 || bufH <= 0 {
		return ink.Point{}, false
	}
	cx, cy, ok := ev.Client()
	if !ok {
		return ink.Point{}, false
	}
	sx := float64(bufW) / rect.Width
	sy := float64(bufH) / rect.Height
	return ink.Pt((cx-rect.Left)*sx, (cy-rect.Top)*sy), true
}

// Scale returns the per-axis display-to-buffer scale factors.
func Scale(rect Rect, bufW, bufH int) (sx, sy float64) {
	if !rect.Valid() {
		return 1, 1
	}
	return float64(bufW) / rect.Width, float64(bufH) / rect.Height
}

// ScaleWidth maps a display-space line width into buffer space using the
// geometric mean of the axis scales, which is exact for uniform scaling.
func ScaleWidth(size float64, rect Rect, bufW, bufH int) float64 {
	sx, sy := Scale(rect, bufW, bufH)
	return size * math.Sqrt(sx*sy)
}
