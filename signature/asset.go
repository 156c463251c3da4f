// Package signature prepares uploaded signature images and stamps them
// onto a page overlay.
//
// An upload is decoded once and keyed: every pixel whose red, green and
// blue channels are all above the threshold becomes fully transparent,
// which removes the paper background from a scanned or photographed
// signature. Stamping then scales the keyed asset and composites it
// source-over, centered on the pointer.
package signature

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	// Registered decoders for uploads.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/ink"
)

// DefaultThreshold is the brightness above which all of R, G and B must lie
// for a pixel to be treated as background.
const DefaultThreshold = 200

// ErrInvalidAsset is returned for uploads that are not decodable images or
// have no pixels.
var ErrInvalidAsset = errors.New("signature: invalid asset")

// Asset is a background-keyed signature bitmap. It is immutable once
// created.
type Asset struct {
	img *image.NRGBA
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and keys its background with DefaultThreshold.
func Decode(r io.Reader) (*Asset, error) {
	return DecodeThreshold(r, DefaultThreshold)
}

// DecodeThreshold is Decode with a custom keying threshold.
func DecodeThreshold(r io.Reader, threshold uint8) (*Asset, error) {
	return DecodeLimit(r, threshold, ink.DefaultMaxPixels)
}

// DecodeLimit is DecodeThreshold that rejects uploads declaring more than
// maxPixels before any pixel memory is allocated. A non-positive maxPixels
// selects ink.DefaultMaxPixels.
func DecodeLimit(r io.Reader, threshold uint8, maxPixels int) (*Asset, error) {
	img, format, err := ink.DecodeImage(r, maxPixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAsset, err)
	}
	ink.Logger().Debug("signature: decoded upload", "format", format, "bounds", img.Bounds())
	return NewAsset(img, threshold)
}

// DecodeBytes is Decode over an in-memory upload.
func DecodeBytes(data []byte) (*Asset, error) {
	return Decode(bytes.NewReader(data))
}

// NewAsset copies img into a new asset and keys it with threshold. The
// source image is not modified.
func NewAsset(img image.Image, threshold uint8) (*Asset, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidAsset)
	}
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	keyed := Key(n, threshold)
	ink.Logger().Debug("signature: keyed background", "pixels", keyed, "threshold", threshold)
	return &Asset{img: n}, nil
}

// Key makes every pixel with R, G and B strictly greater than threshold
// fully transparent and returns the number of pixels changed. Color
// channels are left as they were.
func Key(img *image.NRGBA, threshold uint8) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i] > threshold && row[i+1] > threshold && row[i+2] > threshold && row[i+3] != 0 {
				row[i+3] = 0
				n++
			}
		}
	}
	return n
}

// Width returns the intrinsic width in pixels.
func (a *Asset) Width() int { return a.img.Rect.Dx() }

// Height returns the intrinsic height in pixels.
func (a *Asset) Height() int { return a.img.Rect.Dy() }

// Aspect returns width / height.
func (a *Asset) Aspect() float64 {
	return float64(a.Width()) / float64(a.Height())
}

// Image returns the keyed bitmap. Callers must not modify it.
func (a *Asset) Image() *image.NRGBA { return a.img }

// EncodePNG writes the keyed asset as PNG.
func (a *Asset) EncodePNG(w io.Writer) error {
	return png.Encode(w, a.img)
}
