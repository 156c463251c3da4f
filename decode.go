package ink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
)

// DefaultMaxPixels is the pixel budget DecodeImage applies when given a
// non-positive limit.
const DefaultMaxPixels = 25_000_000

// ErrImageTooLarge is returned by DecodeImage for images whose header
// declares more pixels than allowed.
var ErrImageTooLarge = errors.New("ink: image too large")

// DecodeImage decodes an image in any registered format after checking
// the dimensions in its header against maxPixels, so a small file that
// declares a huge canvas is rejected before pixel memory is allocated.
func DecodeImage(r io.Reader, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("ink: %s image is %dx%d", format, cfg.Width, cfg.Height)
	}
	if cfg.Width > maxPixels/cfg.Height {
		return nil, format, fmt.Errorf("%w: %s %dx%d exceeds %d pixels", ErrImageTooLarge, format, cfg.Width, cfg.Height, maxPixels)
	}
	img, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}
