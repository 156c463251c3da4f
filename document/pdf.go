package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/gogpu/ink"
)

var (
	// ErrInvalidDocument is returned for input that pdfcpu cannot read.
	ErrInvalidDocument = errors.New("document: invalid PDF")

	// ErrInvalidRotation is returned for angles that are not a multiple
	// of 90 degrees.
	ErrInvalidRotation = errors.New("document: rotation must be a multiple of 90")

	// ErrInvalidOrder is returned by Reorder for anything other than a
	// permutation of the document's pages.
	ErrInvalidOrder = errors.New("document: order is not a permutation of the pages")

	// ErrLastPage is returned when an edit would leave no pages.
	ErrLastPage = errors.New("document: cannot remove every page")
)

// Option configures a PDF during Open.
type Option func(*options)

type options struct {
	conf      *model.Configuration
	observers []Observer
}

// WithObserver registers o for every edit, including the initial open.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observers = append(opts.observers, o)
		}
	}
}

// WithConfiguration replaces the pdfcpu configuration.
func WithConfiguration(conf *model.Configuration) Option {
	return func(opts *options) {
		if conf != nil {
			opts.conf = conf
		}
	}
}

// Configuration returns the pdfcpu configuration used by default: the
// library defaults with relaxed validation, which accepts the many
// slightly malformed files found in the wild.
func Configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PDF is an in-memory PDF document. It is safe for concurrent use;
// observers run on the goroutine that made the edit, after the lock is
// released.
type PDF struct {
	mu        sync.Mutex
	id        string
	data      []byte
	pages     int
	conf      *model.Configuration
	observers []Observer
}

var _ Mutator = (*PDF)(nil)

// Open reads a PDF document.
func Open(r io.Reader, opts ...Option) (*PDF, error) {
	o := options{conf: Configuration()}
	for _, opt := range opts {
		opt(&o)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: read: %w", err)
	}
	n, err := api.PageCount(bytes.NewReader(data), o.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	d := &PDF{
		id:        uuid.NewString(),
		data:      data,
		pages:     n,
		conf:      o.conf,
		observers: o.observers,
	}
	ink.Logger().Info("document: opened", "id", d.id, "pages", n, "bytes", len(data))
	d.notify(Change{Op: OpOpen, ID: d.id, PageCount: n})
	return d, nil
}

// ID returns the current document identity.
func (d *PDF) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// PageCount returns the current number of pages.
func (d *PDF) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pages
}

// Observe registers o and returns a function that removes it.
func (d *PDF) Observe(o Observer) (remove func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
	idx := len(d.observers) - 1
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if idx < len(d.observers) {
			d.observers[idx] = nil
		}
	}
}

// Rotate turns page clockwise by degrees, adding to its current rotation.
// A rotation of a whole turn leaves the document unchanged.
func (d *PDF) Rotate(ctx context.Context, page, degrees int) error {
	if degrees%90 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)
	}
	degrees = (degrees%360 + 360) % 360
	if err := d.checkPages(page); err != nil {
		return err
	}
	if degrees == 0 {
		return nil
	}
	return d.apply(ctx, OpRotate, func(rs io.ReadSeeker, w io.Writer) error {
		return api.Rotate(rs, w, degrees, selection([]int{page}), d.conf)
	})
}

// Delete removes pages. At least one page must remain.
func (d *PDF) Delete(ctx context.Context, pages ...int) error {
	if len(pages) == 0 {
		return nil
	}
	if err := d.checkPages(pages...); err != nil {
		return err
	}
	unique := slices.Compact(slices.Sorted(slices.Values(pages)))
	if len(unique) >= d.PageCount() {
		return ErrLastPage
	}
	return d.apply(ctx, OpDelete, func(rs io.ReadSeeker, w io.Writer) error {
		return api.RemovePages(rs, w, selection(unique), d.conf)
	})
}

// Reorder rearranges the pages so that page order[i] becomes page i+1.
func (d *PDF) Reorder(ctx context.Context, order []int) error {
	n := d.PageCount()
	if len(order) != n {
		return fmt.Errorf("%w: %d entries for %d pages", ErrInvalidOrder, len(order), n)
	}
	sorted := slices.Sorted(slices.Values(order))
	for i, p := range sorted {
		if p != i+1 {
			return fmt.Errorf("%w: %v", ErrInvalidOrder, order)
		}
	}
	return d.apply(ctx, OpReorder, func(rs io.ReadSeeker, w io.Writer) error {
		return api.Collect(rs, w, selection(order), d.conf)
	})
}

// Merge appends the pages of docs in order.
func (d *PDF) Merge(ctx context.Context, docs ...io.ReadSeeker) error {
	if len(docs) == 0 {
		return nil
	}
	return d.apply(ctx, OpMerge, func(rs io.ReadSeeker, w io.Writer) error {
		return api.MergeRaw(append([]io.ReadSeeker{rs}, docs...), w, false, d.conf)
	})
}

// Optimize rewrites the document with shared resources deduplicated and
// unused objects dropped.
func (d *PDF) Optimize(ctx context.Context) error {
	return d.apply(ctx, OpOptimize, func(rs io.ReadSeeker, w io.Writer) error {
		return api.Optimize(rs, w, d.conf)
	})
}

// Split returns a new document holding pages in the given order. The
// receiver is not modified.
func (d *PDF) Split(ctx context.Context, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, &RangeError{Reason: "no pages selected"}
	}
	if err := d.checkPages(pages...); err != nil {
		return nil, err
	}
	return d.derive(ctx, func(rs io.ReadSeeker, w io.Writer) error {
		return api.Collect(rs, w, selection(pages), d.conf)
	})
}

// SplitAll returns one single-page document per page.
func (d *PDF) SplitAll(ctx context.Context) ([][]byte, error) {
	n := d.PageCount()
	out := make([][]byte, 0, n)
	for p := 1; p <= n; p++ {
		b, err := d.Split(ctx, []int{p})
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Export writes the current document.
func (d *PDF) Export(w io.Writer) error {
	d.mu.Lock()
	data := d.data
	d.mu.Unlock()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("document: export: %w", err)
	}
	return nil
}

// Bytes returns a copy of the current document.
func (d *PDF) Bytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return bytes.Clone(d.data)
}

func (d *PDF) checkPages(pages ...int) error {
	n := d.PageCount()
	for _, p := range pages {
		if p < 1 || p > n {
			return &RangeError{Token: fmt.Sprint(p), Reason: fmt.Sprintf("not a page in [1, %d]", n)}
		}
	}
	return nil
}

func (d *PDF) derive(ctx context.Context, fn func(io.ReadSeeker, io.Writer) error) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	data := d.data
	d.mu.Unlock()

	var buf bytes.Buffer
	if err := fn(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// apply runs fn over the current bytes and, on success, installs the
// result under a new identity.
func (d *PDF) apply(ctx context.Context, op Op, fn func(io.ReadSeeker, io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	var buf bytes.Buffer
	if err := fn(bytes.NewReader(d.data), &buf); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("document: %s: %w", op, err)
	}
	n, err := api.PageCount(bytes.NewReader(buf.Bytes()), d.conf)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("document: %s: count pages: %w", op, err)
	}
	d.data = buf.Bytes()
	d.pages = n
	d.id = uuid.NewString()
	c := Change{Op: op, ID: d.id, PageCount: n}
	d.mu.Unlock()

	ink.Logger().Info("document: edited", "op", op, "id", c.ID, "pages", n)
	d.notify(c)
	return nil
}

func (d *PDF) notify(c Change) {
	d.mu.Lock()
	obs := slices.Clone(d.observers)
	d.mu.Unlock()
	for _, o := range obs {
		if o != nil {
			o(c)
		}
	}
}
