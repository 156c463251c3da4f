// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ink/internal/stroke"
)

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCube
	opClose
)

type op struct {
	kind opKind
	pts  [3]stroke.Point
}

// Mask is an 8-bit coverage mask placed at Origin in destination space.
type Mask struct {
	Origin image.Point
	Alpha  *image.Alpha
}

// Bounds returns the destination-space rectangle covered by the mask.
func (m *Mask) Bounds() image.Rectangle {
	return m.Alpha.Bounds().Add(m.Origin)
}

// At returns the coverage at destination coordinates (x, y).
func (m *Mask) At(x, y int) uint8 {
	return m.Alpha.AlphaAt(x-m.Origin.X, y-m.Origin.Y).A
}

// Builder records contours and rasterizes them into a coverage mask.
//
// The accumulated winding is clamped by absolute value, so contours with
// the same orientation union and opposite contours cut holes.
type Builder struct {
	ops    []op
	open   bool
	minX   float64
	minY   float64
	maxX   float64
	maxY   float64
	hasPts bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset()
	return b
}

// Reset discards all recorded contours.
func (b *Builder) Reset() {
	b.ops = b.ops[:0]
	b.open = false
	b.hasPts = false
	b.minX, b.minY = math.Inf(1), math.Inf(1)
	b.maxX, b.maxY = math.Inf(-1), math.Inf(-1)
}

// Empty reports whether nothing has been recorded.
func (b *Builder) Empty() bool {
	return !b.hasPts
}

func (b *Builder) grow(pts ...stroke.Point) {
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	b.hasPts = true
}

// MoveTo starts a new contour, closing the previous one.
func (b *Builder) MoveTo(x, y float64) {
	if b.open {
		b.ops = append(b.ops, op{kind: opClose})
	}
	p := stroke.Point{X: x, Y: y}
	b.ops = append(b.ops, op{kind: opMove, pts: [3]stroke.Point{p}})
	b.grow(p)
	b.open = true
}

// LineTo adds a line segment.
func (b *Builder) LineTo(x, y float64) {
	p := stroke.Point{X: x, Y: y}
	b.ops = append(b.ops, op{kind: opLine, pts: [3]stroke.Point{p}})
	b.grow(p)
}

// QuadTo adds a quadratic Bezier segment.
func (b *Builder) QuadTo(cx, cy, x, y float64) {
	c, p := stroke.Point{X: cx, Y: cy}, stroke.Point{X: x, Y: y}
	b.ops = append(b.ops, op{kind: opQuad, pts: [3]stroke.Point{c, p}})
	b.grow(c, p)
}

// CubeTo adds a cubic Bezier segment.
func (b *Builder) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	c1 := stroke.Point{X: c1x, Y: c1y}
	c2 := stroke.Point{X: c2x, Y: c2y}
	p := stroke.Point{X: x, Y: y}
	b.ops = append(b.ops, op{kind: opCube, pts: [3]stroke.Point{c1, c2, p}})
	b.grow(c1, c2, p)
}

// Close closes the current contour.
func (b *Builder) Close() {
	if b.open {
		b.ops = append(b.ops, op{kind: opClose})
		b.open = false
	}
}

// Polygon adds a closed polygon.
func (b *Builder) Polygon(poly []stroke.Point) {
	if len(poly) < 3 {
		return
	}
	b.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		b.LineTo(p.X, p.Y)
	}
	b.Close()
}

// Polygons adds each polygon as its own contour.
func (b *Builder) Polygons(polys [][]stroke.Point) {
	for _, poly := range polys {
		b.Polygon(poly)
	}
}

// Mask rasterizes the recorded contours, clipped to clip. It returns nil
// when nothing intersects the clip rectangle.
func (b *Builder) Mask(clip image.Rectangle) *Mask {
	if !b.hasPts {
		return nil
	}
	r := image.Rect(
		int(math.Floor(b.minX))-1, int(math.Floor(b.minY))-1,
		int(math.Ceil(b.maxX))+1, int(math.Ceil(b.maxY))+1,
	).Intersect(clip)
	if r.Empty() {
		return nil
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	pt := func(p stroke.Point) (float32, float32) {
		return float32(p.X - ox), float32(p.Y - oy)
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	open := false
	for _, o := range b.ops {
		switch o.kind {
		case opMove:
			x, y := pt(o.pts[0])
			z.MoveTo(x, y)
			open = true
		case opLine:
			x, y := pt(o.pts[0])
			z.LineTo(x, y)
		case opQuad:
			cx, cy := pt(o.pts[0])
			x, y := pt(o.pts[1])
			z.QuadTo(cx, cy, x, y)
		case opCube:
			c1x, c1y := pt(o.pts[0])
			c2x, c2y := pt(o.pts[1])
			x, y := pt(o.pts[2])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case opClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}

	alpha := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
	return &Mask{Origin: r.Min, Alpha: alpha}
}

// Stroke expands a polyline with the given style and rasterizes the union
// of its pieces.
func Stroke(points []stroke.Point, style stroke.Style, clip image.Rectangle) *Mask {
	b := NewBuilder()
	b.Polygons(stroke.NewExpander(style).Expand(points))
	return b.Mask(clip)
}
