package signature

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/handwriting"
)

// ErrEmptyName is returned by FromText for a blank name.
var ErrEmptyName = errors.New("signature: empty name")

// typedPadding is the transparent border around a typed signature.
const typedPadding = 8

// FromText renders name in handwriting and returns it as an asset, for
// users without a scanned signature. The result needs no keying beyond the
// transparent background it is drawn on.
func FromText(e *handwriting.Engine, name string, style handwriting.Style) (*Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	style = style.Clamp()
	ascent := e.Ascent(style)
	w := int(math.Ceil(e.Measure(name, style)+style.Jitter+style.SpacingVariance*float64(utf8.RuneCountInString(name)))) + 2*typedPadding
	h := int(math.Ceil(style.FontSize*handwriting.LineHeightFactor)) + 2*typedPadding

	pb := ink.NewPixelBuffer(w, h)
	e.RenderText(pb, name, typedPadding, typedPadding+ascent, style)
	return NewAsset(pb, DefaultThreshold)
}
