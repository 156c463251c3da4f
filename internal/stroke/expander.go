// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns the point translated by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Cap specifies the shape of line endpoints.
type Cap int

const (
	// CapButt ends the stroke exactly at the endpoint.
	CapButt Cap = iota
	// CapRound adds a semicircle with radius = width/2.
	CapRound
	// CapSquare extends the stroke by width/2 beyond the endpoint.
	CapSquare
)

// Style defines the stroke geometry. Joins are always round.
type Style struct {
	Width float64
	Cap   Cap
}

// Expander converts polylines into positively oriented polygons.
type Expander struct {
	style Style

	// Tolerance is the maximum distance between a true circle and its
	// polygonal approximation.
	tolerance float64
}

// NewExpander creates a new expander with the given style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the arc flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline of the stroked polyline as a set of polygons.
// Consecutive duplicate points are ignored. A single point produces a dot
// for round and square caps and nothing for butt caps, matching canvas.
func (e *Expander) Expand(points []Point) [][]Point {
	if e.style.Width <= 0 || len(points) == 0 {
		return nil
	}
	pts := dedupe(points)
	hw := e.style.Width / 2

	var out [][]Point
	if len(pts) == 1 {
		switch e.style.Cap {
		case CapRound:
			out = append(out, e.disk(pts[0], hw))
		case CapSquare:
			out = append(out, orient([]Point{
				{pts[0].X - hw, pts[0].Y - hw},
				{pts[0].X + hw, pts[0].Y - hw},
				{pts[0].X + hw, pts[0].Y + hw},
				{pts[0].X - hw, pts[0].Y + hw},
			}))
		}
		return out
	}

	last := len(pts) - 1
	for i := 0; i < last; i++ {
		p0, p1 := pts[i], pts[i+1]
		tan := p1.Sub(p0)
		unit := tan.Scale(1 / tan.Length())
		if e.style.Cap == CapSquare {
			if i == 0 {
				p0 = p0.Add(unit.Scale(-hw))
			}
			if i+1 == last {
				p1 = p1.Add(unit.Scale(hw))
			}
		}
		norm := unit.Perp().Scale(hw)
		out = append(out, orient([]Point{
			p0.Add(norm),
			p1.Add(norm),
			p1.Add(norm.Neg()),
			p0.Add(norm.Neg()),
		}))
	}

	// Round joins at every interior vertex; round caps at both ends.
	for i, p := range pts {
		if (i == 0 || i == last) && e.style.Cap != CapRound {
			continue
		}
		out = append(out, e.disk(p, hw))
	}
	return out
}

// disk approximates a circle so that no edge deviates from the true arc by
// more than the tolerance.
func (e *Expander) disk(c Point, r float64) []Point {
	n := 8
	if r > e.tolerance {
		n = int(math.Ceil(math.Pi / math.Acos(1-e.tolerance/r)))
	}
	n = max(8, min(n, 256))
	poly := make([]Point, n)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return orient(poly)
}

// SignedArea returns twice the signed area of the polygon (shoelace formula).
func SignedArea(poly []Point) float64 {
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum
}

// orient reverses poly in place when its signed area is negative.
func orient(poly []Point) []Point {
	if SignedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	return poly
}

// dedupe drops consecutive identical points.
func dedupe(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for i, p := range points {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
