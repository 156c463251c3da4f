package session

import (
	"context"
	"fmt"
	"image"
)

// Surface is a rendered page.
type Surface struct {
	Page  int
	Image image.Image
}

// Size returns the pixel dimensions of the surface.
func (s Surface) Size() (w, h int) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

// SurfaceProvider renders document pages. Pages are 1-based.
type SurfaceProvider interface {
	Render(ctx context.Context, page int) (Surface, error)
}

// Images is a SurfaceProvider over pre-rendered page images.
type Images []image.Image

// Render returns the image for page.
func (p Images) Render(ctx context.Context, page int) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return Surface{}, err
	}
	if page < 1 || page > len(p) {
		return Surface{}, fmt.Errorf("session: page %d out of range [1, %d]", page, len(p))
	}
	return Surface{Page: page, Image: p[page-1]}, nil
}
