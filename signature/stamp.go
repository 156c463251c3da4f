package signature

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/ink"
)

// BaseUnit is the stamp width in buffer pixels at scale 1.
const BaseUnit = 50

// Stamper places signature assets onto a buffer.
type Stamper struct {
	// BaseUnit is the width of a stamp at scale 1.
	BaseUnit float64

	// Interpolator resamples the asset to the target size.
	Interpolator xdraw.Interpolator
}

// NewStamper returns a stamper with BaseUnit 50 and Catmull-Rom resampling.
func NewStamper() *Stamper {
	return &Stamper{BaseUnit: BaseUnit, Interpolator: xdraw.CatmullRom}
}

// Rect returns the buffer rectangle a stamp of a at scale covers when
// centered on at: width = scale x BaseUnit, height = width / aspect.
func (s *Stamper) Rect(a *Asset, at ink.Point, scale float64) image.Rectangle {
	w := scale * s.BaseUnit
	h := w / a.Aspect()
	x0 := int(math.Round(at.X - w/2))
	y0 := int(math.Round(at.Y - h/2))
	return image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
}

// Stamp composites a onto buf, centered on at, and returns the covered
// rectangle before clipping. A nil asset or non-positive scale is a no-op.
func (s *Stamper) Stamp(buf *ink.PixelBuffer, a *Asset, at ink.Point, scale float64) image.Rectangle {
	if a == nil || scale <= 0 {
		return image.Rectangle{}
	}
	r := s.Rect(a, at, scale)
	if r.Empty() {
		return r
	}
	scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	s.Interpolator.Scale(scaled, scaled.Bounds(), a.img, a.img.Bounds(), xdraw.Src, nil)
	buf.DrawImage(scaled, r.Min)
	ink.Logger().Debug("signature: stamped", "rect", r)
	return r
}
