package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// ErrNoImages is returned when converting an empty image list.
var ErrNoImages = errors.New("document: no images")

// ImagesToPDF writes a new PDF with one page per encoded image (PNG, JPEG,
// TIFF or WebP), each scaled to fit the page.
func ImagesToPDF(ctx context.Context, w io.Writer, imgs ...io.Reader) error {
	if len(imgs) == 0 {
		return ErrNoImages
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := api.ImportImages(nil, w, imgs, pdfcpu.DefaultImportConfig(), Configuration()); err != nil {
		return fmt.Errorf("document: import images: %w", err)
	}
	return nil
}

// FromImages encodes each image as PNG and writes them as a PDF, one image
// per page.
func FromImages(ctx context.Context, w io.Writer, imgs ...image.Image) error {
	readers := make([]io.Reader, 0, len(imgs))
	for i, img := range imgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("document: encode page %d: %w", i+1, err)
		}
		readers = append(readers, &buf)
	}
	return ImagesToPDF(ctx, w, readers...)
}
