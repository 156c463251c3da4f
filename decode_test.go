package ink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"testing"
)

// pngHeader returns a PNG signature and IHDR chunk declaring w x h without
// any pixel data.
func pngHeader(w, h uint32) []byte {
	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA
	_ = binary.Write(&b, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	b.Write(chunk)
	_ = binary.Write(&b, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return b.Bytes()
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 30, 20))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	img, format, err := DecodeImage(bytes.NewReader(data), 600)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if format != "png" || img.Bounds() != image.Rect(0, 0, 30, 20) {
		t.Errorf("DecodeImage() = %s %v", format, img.Bounds())
	}

	if _, _, err := DecodeImage(bytes.NewReader(data), 599); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("over budget error = %v, want ErrImageTooLarge", err)
	}
}

func TestDecodeImageRejectsHugeHeader(t *testing.T) {
	_, _, err := DecodeImage(bytes.NewReader(pngHeader(50000, 50000)), 0)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("error = %v, want ErrImageTooLarge", err)
	}
	if _, _, err := DecodeImage(bytes.NewReader([]byte("not an image")), 0); err == nil {
		t.Error("DecodeImage accepted garbage")
	}
}
