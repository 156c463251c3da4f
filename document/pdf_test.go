package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pages builds a PDF with n solid-color pages of different sizes.
func pages(t *testing.T, n int) []byte {
	t.Helper()
	imgs := make([]image.Image, n)
	for i := range imgs {
		img := image.NewRGBA(image.Rect(0, 0, 40+10*i, 30))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p] = uint8(40 * i)
			img.Pix[p+3] = 255
		}
		imgs[i] = img
	}
	var buf bytes.Buffer
	if err := FromImages(context.Background(), &buf, imgs...); err != nil {
		t.Fatalf("FromImages: %v", err)
	}
	return buf.Bytes()
}

func open(t *testing.T, n int, opts ...Option) *PDF {
	t.Helper()
	d, err := Open(bytes.NewReader(pages(t, n)), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return d
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open(strings.NewReader("not a pdf")); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("Open(garbage) error = %v, want ErrInvalidDocument", err)
	}
}

func TestEditsChangeIdentity(t *testing.T) {
	var changes []Change
	d := open(t, 3, WithObserver(func(c Change) { changes = append(changes, c) }))
	ctx := context.Background()
	if d.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", d.PageCount())
	}

	ids := map[string]bool{d.ID(): true}
	steps := []struct {
		name  string
		op    func() error
		pages int
	}{
		{"rotate", func() error { return d.Rotate(ctx, 2, 90) }, 3},
		{"reorder", func() error { return d.Reorder(ctx, []int{3, 1, 2}) }, 3},
		{"delete", func() error { return d.Delete(ctx, 1) }, 2},
		{"merge", func() error { return d.Merge(ctx, bytes.NewReader(pages(t, 2))) }, 4},
		{"optimize", func() error { return d.Optimize(ctx) }, 4},
	}
	for _, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if got := d.PageCount(); got != s.pages {
			t.Errorf("%s: PageCount() = %d, want %d", s.name, got, s.pages)
		}
		if ids[d.ID()] {
			t.Errorf("%s: identity %s reused", s.name, d.ID())
		}
		ids[d.ID()] = true
	}

	var ops []Op
	for _, c := range changes {
		ops = append(ops, c.Op)
	}
	want := []Op{OpOpen, OpRotate, OpReorder, OpDelete, OpMerge, OpOptimize}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("observed ops (-want +got):\n%s", diff)
	}
	if last := changes[len(changes)-1]; last.ID != d.ID() || last.PageCount != 4 {
		t.Errorf("last change = %+v", last)
	}
}

func TestRejectedEditsKeepDocument(t *testing.T) {
	d := open(t, 3)
	ctx := context.Background()
	id := d.ID()
	before := d.Bytes()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rotate 45", d.Rotate(ctx, 1, 45), ErrInvalidRotation},
		{"rotate page 4", d.Rotate(ctx, 4, 90), ErrInvalidRange},
		{"delete all", d.Delete(ctx, 1, 2, 3), ErrLastPage},
		{"delete page 0", d.Delete(ctx, 0), ErrInvalidRange},
		{"reorder short", d.Reorder(ctx, []int{1, 2}), ErrInvalidOrder},
		{"reorder repeat", d.Reorder(ctx, []int{1, 1, 2}), ErrInvalidOrder},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, tt.err, tt.want)
		}
	}
	if err := d.Rotate(ctx, 1, 360); err != nil {
		t.Errorf("Rotate(360) error = %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := d.Rotate(canceled, 1, 90); !errors.Is(err, context.Canceled) {
		t.Errorf("Rotate(canceled) error = %v", err)
	}

	if d.ID() != id || !bytes.Equal(d.Bytes(), before) {
		t.Error("rejected edits changed the document")
	}
}

func TestSplit(t *testing.T) {
	d := open(t, 4)
	ctx := context.Background()
	id := d.ID()

	out, err := d.Split(ctx, []int{4, 2})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	part, err := Open(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Open(split): %v", err)
	}
	if part.PageCount() != 2 {
		t.Errorf("split PageCount() = %d, want 2", part.PageCount())
	}
	if d.ID() != id || d.PageCount() != 4 {
		t.Error("Split modified the source document")
	}

	all, err := d.SplitAll(ctx)
	if err != nil {
		t.Fatalf("SplitAll: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("SplitAll() returned %d documents, want 4", len(all))
	}
	if _, err := d.Split(ctx, nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Split(nil) error = %v", err)
	}
}

func TestExport(t *testing.T) {
	d := open(t, 1)
	var buf bytes.Buffer
	if err := d.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("export starts with %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestObserveRemove(t *testing.T) {
	d := open(t, 2)
	n := 0
	remove := d.Observe(func(Change) { n++ })
	if err := d.Rotate(context.Background(), 1, 180); err != nil {
		t.Fatal(err)
	}
	remove()
	if err := d.Rotate(context.Background(), 1, 180); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("observer called %d times, want 1", n)
	}
}

func TestImagesToPDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := ImagesToPDF(context.Background(), &buf); !errors.Is(err, ErrNoImages) {
		t.Errorf("ImagesToPDF() error = %v, want ErrNoImages", err)
	}
}
