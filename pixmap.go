package ink

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/ink/internal/blend"
	"github.com/gogpu/ink/internal/raster"
	"github.com/gogpu/ink/internal/stroke"
)

// ErrSizeMismatch is returned when two buffers or a buffer and a snapshot
// have different dimensions.
var ErrSizeMismatch = errors.New("ink: size mismatch")

// PixelBuffer is the annotation overlay of one page: a width x height grid
// of premultiplied RGBA pixels, 4 bytes per pixel. A new buffer is fully
// transparent.
//
// PixelBuffer implements draw.Image, so the standard image packages can
// draw into and read from it directly.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8
}

var _ draw.Image = (*PixelBuffer)(nil)

// NewPixelBuffer creates a transparent buffer. Negative dimensions are
// treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width, height = max(width, 0), max(height, 0)
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw premultiplied RGBA bytes. The slice aliases the buffer.
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// RGBAAt returns the premultiplied pixel at (x, y), or transparent when
// out of bounds.
func (p *PixelBuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetRGBA stores a premultiplied pixel. Out-of-bounds writes are ignored.
func (p *PixelBuffer) SetRGBA(x, y int, c color.RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = c.R, c.G, c.B, c.A
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// Set implements the draw.Image interface.
func (p *PixelBuffer) Set(x, y int, c color.Color) {
	p.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Clear makes every pixel fully transparent.
func (p *PixelBuffer) Clear() {
	clear(p.data)
}

// Fill replaces every pixel with c.
func (p *PixelBuffer) Fill(c RGBA) {
	r, g, b, a := c.premul8()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	c := NewPixelBuffer(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// CopyFrom replaces the contents of p with those of src.
func (p *PixelBuffer) CopyFrom(src *PixelBuffer) error {
	if src.width != p.width || src.height != p.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, src.width, src.height, p.width, p.height)
	}
	copy(p.data, src.data)
	return nil
}

// Equal reports whether both buffers have the same size and pixels.
func (p *PixelBuffer) Equal(o *PixelBuffer) bool {
	if p.width != o.width || p.height != o.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// rgba returns an *image.RGBA sharing the buffer's memory.
func (p *PixelBuffer) rgba() *image.RGBA {
	return &image.RGBA{Pix: p.data, Stride: p.width * 4, Rect: p.Bounds()}
}

// ToImage converts the buffer to an independent image.RGBA.
func (p *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(p.Bounds())
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a buffer from an image.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	pb := NewPixelBuffer(b.Dx(), b.Dy())
	draw.Draw(pb.rgba(), pb.Bounds(), img, b.Min, draw.Src)
	return pb
}

// EncodePNG writes the buffer to w as PNG.
func (p *PixelBuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.rgba())
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DrawImage composites img source-over with its top-left corner at pt.
// Parts of img outside the buffer are clipped.
func (p *PixelBuffer) DrawImage(img image.Image, pt image.Point) {
	src, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		src = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(pt).Intersect(p.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sx := sb.Min.X + r.Min.X - pt.X
		sy := sb.Min.Y + y - pt.Y
		si := src.PixOffset(sx, sy)
		di := (y*p.width + r.Min.X) * 4
		n := r.Dx() * 4
		blend.SpanOver(p.data[di:di+n], src.Pix[si:si+n])
	}
}

// PaintStroke strokes the polyline through points with round joins.
// The whole polyline is rasterized as one coverage mask, so regions where
// the stroke overlaps itself are painted once.
func (p *PixelBuffer) PaintStroke(points []Point, paint Paint) {
	if len(points) == 0 || paint.Width <= 0 {
		return
	}
	pts := make([]stroke.Point, len(points))
	for i, pt := range points {
		pts[i] = stroke.Point{X: pt.X, Y: pt.Y}
	}
	m := raster.Stroke(pts, stroke.Style{Width: paint.Width, Cap: paint.Cap.stroke()}, p.Bounds())
	p.fillMask(m, paint.Source(), paint.Mode)
}

// FillPath fills path using the nonzero winding rule.
func (p *PixelBuffer) FillPath(path *Path, c RGBA, mode CompositeMode) {
	b := raster.NewBuilder()
	path.appendTo(b)
	p.fillMask(b.Mask(p.Bounds()), c, mode)
}

func (p *PixelBuffer) fillMask(m *raster.Mask, c RGBA, mode CompositeMode) {
	if m == nil {
		return
	}
	sr, sg, sb, sa := c.premul8()
	fn := blend.Get(mode.blend())
	r := m.Bounds()
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := (y - m.Origin.Y) * m.Alpha.Stride
		di := (y*p.width + r.Min.X) * 4
		blend.Span(p.data[di:di+w*4], m.Alpha.Pix[mi:mi+w], sr, sg, sb, sa, fn)
	}
}
