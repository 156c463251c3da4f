package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/history"
	"github.com/gogpu/ink/input"
	"github.com/gogpu/ink/signature"
	"github.com/gogpu/ink/tool"
)

// ErrNoSurface is returned by operations that need a drawable page before
// its surface is ready.
var ErrNoSurface = errors.New("session: no surface")

// ErrNoPages is returned by Load when no document with pages is open.
var ErrNoPages = errors.New("session: document has no pages")

// ErrNoProvider is returned by Load without a SurfaceProvider.
var ErrNoProvider = errors.New("session: no surface provider")

// PageContext is the overlay state of the active page. Buffer and History
// are nil until the page surface is ready.
type PageContext struct {
	PageIndex int
	Buffer    *ink.PixelBuffer
	History   *history.Log
}

// Ready reports whether the context can be drawn on.
func (pc PageContext) Ready() bool {
	return pc.Buffer != nil
}

// NoticeKind identifies a Notice.
type NoticeKind uint8

const (
	// Activated is sent when the page context becomes drawable.
	Activated NoticeKind = iota
	// Committed is sent after a stroke, stamp or page clear.
	Committed
	// Restored is sent after undo or redo changes the buffer.
	Restored
	// Deactivated is the last notice a page-scoped listener receives.
	Deactivated
)

var noticeNames = [...]string{"activated", "committed", "restored", "deactivated"}

// String returns the notice name.
func (k NoticeKind) String() string {
	if int(k) < len(noticeNames) {
		return noticeNames[k]
	}
	return fmt.Sprintf("NoticeKind(%d)", k)
}

// Notice describes a change to the active page overlay.
type Notice struct {
	Kind   NoticeKind
	Page   int
	Commit tool.Commit
}

// Listener receives notices for the page that was active when it
// subscribed.
type Listener func(Notice)

type subscriber struct {
	id int
	l  Listener
}

// Coordinator owns the live PageContext and resets the tool machine and
// history whenever the active page or the document identity changes.
type Coordinator struct {
	opts    options
	machine *tool.Machine

	docID     string
	pageCount int
	ctx       PageContext
	rect      input.Rect
	parked    map[int]*ink.PixelBuffer

	listeners []subscriber
	nextID    int
}

// New creates a coordinator with no document.
func New(opts ...Option) *Coordinator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Coordinator{
		opts:   o,
		parked: map[int]*ink.PixelBuffer{},
	}
	toolOpts := append(append([]tool.Option(nil), o.toolOpts...), tool.WithCommitHook(c.committed))
	c.machine = tool.New(toolOpts...)
	return c
}

// Tool returns the tool machine for tool selection. Input should go
// through the coordinator's pointer methods.
func (c *Coordinator) Tool() *tool.Machine {
	return c.machine
}

// Context returns the active page context.
func (c *Coordinator) Context() PageContext {
	return c.ctx
}

// Document returns the current document identity and page count.
func (c *Coordinator) Document() (id string, pageCount int) {
	return c.docID, c.pageCount
}

// Page returns the active 1-based page index, or 0 without a document.
func (c *Coordinator) Page() int {
	return c.ctx.PageIndex
}

// SetAsset replaces the signature asset used by the signature tool.
func (c *Coordinator) SetAsset(a *signature.Asset) {
	c.machine.SetAsset(a)
}

// DocumentChanged records a new document identity and page count. A
// changed identity discards the active and parked overlays. The active
// page is clamped into [1, pageCount].
func (c *Coordinator) DocumentChanged(id string, pageCount int) {
	pageCount = max(pageCount, 0)
	changed := id != c.docID
	c.docID = id
	c.pageCount = pageCount
	page := c.clamp(c.ctx.PageIndex)
	if changed || page == 0 {
		clear(c.parked)
		ink.Logger().Info("session: document changed", "id", id, "pages", pageCount, "page", page)
		c.activate(page, false)
		return
	}
	if page != c.ctx.PageIndex {
		c.SetPage(page)
	}
}

// Bind reports d's identity and page count now and after every completed
// mutation of d. Observers run on the mutating goroutine, which must be the
// one driving the coordinator. The returned function stops observing.
func (c *Coordinator) Bind(d *document.PDF) (unbind func()) {
	c.DocumentChanged(d.ID(), d.PageCount())
	return d.Observe(func(ch document.Change) {
		c.DocumentChanged(ch.ID, ch.PageCount)
	})
}

// SetPage makes page active, clamped into [1, pageCount], and returns the
// resulting index. The previous page's overlay is parked; the new context
// is not drawable until SurfaceReady.
func (c *Coordinator) SetPage(page int) int {
	page = c.clamp(page)
	if page == c.ctx.PageIndex {
		return page
	}
	ink.Logger().Info("session: page changed", "from", c.ctx.PageIndex, "to", page)
	c.activate(page, true)
	return page
}

// Next moves to the following page, stopping at the last.
func (c *Coordinator) Next() int {
	return c.SetPage(c.ctx.PageIndex + 1)
}

// Prev moves to the preceding page, stopping at the first.
func (c *Coordinator) Prev() int {
	return c.SetPage(c.ctx.PageIndex - 1)
}

// SurfaceReady reports that page has been rendered at w x h pixels. For
// the active page it allocates a same-sized overlay, restoring the parked
// one when its size matches, and a fresh history whose undo stops at the
// restored marks. Resizing a drawable page deactivates its listeners.
// Notices for pages that are no longer active are ignored.
func (c *Coordinator) SurfaceReady(page, w, h int) {
	if page != c.ctx.PageIndex || page == 0 {
		ink.Logger().Debug("session: stale surface", "page", page, "active", c.ctx.PageIndex)
		return
	}
	if w <= 0 || h <= 0 {
		ink.Logger().Warn("session: empty surface", "page", page, "w", w, "h", h)
		return
	}
	if b := c.ctx.Buffer; b != nil && b.Width() == w && b.Height() == h {
		return
	}

	buf := ink.NewPixelBuffer(w, h)
	var histOpts []history.Option
	if old := c.parked[page]; old != nil {
		delete(c.parked, page)
		if old.Width() == w && old.Height() == h {
			buf = old
			histOpts = append(histOpts, history.WithBase(old.Snapshot()))
		} else {
			ink.Logger().Warn("session: parked overlay size changed, dropped", "page", page)
		}
	}
	if c.ctx.Buffer != nil {
		c.notify(Deactivated, tool.Commit{})
		c.listeners = nil
	}
	c.ctx.Buffer = buf
	c.ctx.History = history.New(c.opts.limit, histOpts...)
	c.machine.Attach(c.ctx.Buffer, c.ctx.History)
	c.syncScale()

	ink.Logger().Info("session: page ready", "page", page, "w", w, "h", h)
	if c.opts.onActivate != nil {
		c.opts.onActivate(c.ctx)
	}
	c.notify(Activated, tool.Commit{})
}

// Load makes page active, renders it with the configured provider and
// reports the surface as ready. It returns the rendered surface.
func (c *Coordinator) Load(ctx context.Context, page int) (Surface, error) {
	if c.opts.provider == nil {
		return Surface{}, ErrNoProvider
	}
	page = c.SetPage(page)
	if page == 0 {
		return Surface{}, ErrNoPages
	}
	s, err := c.opts.provider.Render(ctx, page)
	if err != nil {
		return Surface{}, fmt.Errorf("session: render page %d: %w", page, err)
	}
	w, h := s.Size()
	c.SurfaceReady(page, w, h)
	return s, nil
}

// SetDisplayRect sets where the overlay is shown on screen. Pointer
// events are mapped through it and tool widths scaled by it.
func (c *Coordinator) SetDisplayRect(r input.Rect) {
	c.rect = r
	c.syncScale()
}

func (c *Coordinator) syncScale() {
	if c.ctx.Buffer == nil || !c.rect.Valid() {
		return
	}
	c.machine.SetWidthScale(input.ScaleWidth(1, c.rect, c.ctx.Buffer.Width(), c.ctx.Buffer.Height()))
}

// Subscribe registers l for the active page. The listener receives
// Deactivated and is dropped when the page changes or its surface is
// resized. Listeners are notified in subscription order. The returned
// function unsubscribes and may be called more than once.
func (c *Coordinator) Subscribe(l Listener) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, subscriber{id: id, l: l})
	return func() {
		c.listeners = slices.DeleteFunc(c.listeners, func(s subscriber) bool { return s.id == id })
	}
}

// PointerDown begins a stroke or stamp at a display-space event.
func (c *Coordinator) PointerDown(ev input.Event) {
	if p, ok := c.mapEvent(ev); ok {
		c.machine.PointerDown(p)
	}
}

// PointerMove extends the stroke in progress.
func (c *Coordinator) PointerMove(ev input.Event) {
	if p, ok := c.mapEvent(ev); ok {
		c.machine.PointerMove(p)
	}
}

// PointerUp completes the stroke in progress.
func (c *Coordinator) PointerUp() {
	c.machine.PointerUp()
}

// PointerLeave completes the stroke in progress.
func (c *Coordinator) PointerLeave() {
	c.machine.PointerLeave()
}

func (c *Coordinator) mapEvent(ev input.Event) (ink.Point, bool) {
	if c.ctx.Buffer == nil {
		return ink.Point{}, false
	}
	p, ok := input.Map(ev, c.rect, c.ctx.Buffer.Width(), c.ctx.Buffer.Height())
	if !ok {
		ink.Logger().Debug("session: unmapped event", "kind", ev.Kind)
	}
	return p, ok
}

// Undo steps the active page back.
func (c *Coordinator) Undo() bool {
	if !c.machine.Undo() {
		return false
	}
	c.notify(Restored, tool.Commit{})
	return true
}

// Redo steps the active page forward.
func (c *Coordinator) Redo() bool {
	if !c.machine.Redo() {
		return false
	}
	c.notify(Restored, tool.Commit{})
	return true
}

// ClearPage erases the active overlay as one undoable step.
func (c *Coordinator) ClearPage() error {
	if c.ctx.Buffer == nil {
		return ErrNoSurface
	}
	return c.machine.ClearPage()
}

// Flatten composites the active overlay over base, scaling the overlay to
// base's size when they differ. Neither base nor the overlay is modified.
func (c *Coordinator) Flatten(base image.Image) (*ink.PixelBuffer, error) {
	if c.ctx.Buffer == nil {
		return nil, ErrNoSurface
	}
	out := ink.FromImage(base)
	var overlay image.Image = c.ctx.Buffer
	if out.Width() != c.ctx.Buffer.Width() || out.Height() != c.ctx.Buffer.Height() {
		scaled := image.NewRGBA(out.Bounds())
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), c.ctx.Buffer, c.ctx.Buffer.Bounds(), xdraw.Src, nil)
		overlay = scaled
	}
	out.DrawImage(overlay, image.Point{})
	return out, nil
}

func (c *Coordinator) activate(page int, park bool) {
	if c.ctx.Buffer != nil {
		c.notify(Deactivated, tool.Commit{})
		if park && !c.ctx.Buffer.Snapshot().Transparent() {
			c.parked[c.ctx.PageIndex] = c.ctx.Buffer
		}
	}
	c.listeners = nil
	c.ctx = PageContext{PageIndex: page}
	c.machine.Attach(nil, nil)
}

func (c *Coordinator) clamp(page int) int {
	if c.pageCount == 0 {
		return 0
	}
	return min(max(page, 1), c.pageCount)
}

func (c *Coordinator) committed(cm tool.Commit) {
	c.notify(Committed, cm)
}

func (c *Coordinator) notify(kind NoticeKind, cm tool.Commit) {
	n := Notice{Kind: kind, Page: c.ctx.PageIndex, Commit: cm}
	for _, s := range slices.Clone(c.listeners) {
		s.l(n)
	}
}
