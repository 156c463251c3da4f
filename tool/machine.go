package tool

import (
	"errors"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/history"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/signature"
)

// ErrBusy is returned when the tool configuration is changed while a stroke
// is in progress.
var ErrBusy = errors.New("tool: stroke in progress")

// State is the machine state.
type State uint8

const (
	// Idle waits for pointer-down.
	Idle State = iota
	// Drawing tracks a gesture until pointer-up or pointer-leave.
	Drawing
)

// String returns the state name.
func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Commit describes a completed edit.
type Commit struct {
	// Kind is the tool that produced the edit.
	Kind Kind
	// Cleared is set for ClearPage, which is not tied to a tool.
	Cleared bool
}

// CommitHook observes completed edits.
type CommitHook func(Commit)

// Machine routes pointer samples for one page overlay. It is not safe for
// concurrent use; input is expected to arrive from one goroutine.
type Machine struct {
	opts options

	cfg    *Config
	buf    *ink.PixelBuffer
	hist   *history.Log
	asset  *signature.Asset
	scale  float64
	stroke *render.Stroke
	active Config
}

// New creates an idle machine with no tool selected.
func New(opts ...Option) *Machine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Machine{opts: o, scale: 1}
}

// Attach binds the machine to a page buffer and its history, abandoning
// any stroke in progress. A nil buffer detaches; drawing is then a no-op.
func (m *Machine) Attach(buf *ink.PixelBuffer, hist *history.Log) {
	m.stroke = nil
	m.buf = buf
	m.hist = hist
}

// Reset returns to Idle without committing.
func (m *Machine) Reset() {
	m.stroke = nil
}

// SetWidthScale sets the display-to-buffer factor applied to line widths.
func (m *Machine) SetWidthScale(s float64) {
	if s > 0 {
		m.scale = s
	}
}

// SetAsset replaces the signature asset. A nil asset disables stamping.
func (m *Machine) SetAsset(a *signature.Asset) {
	m.asset = a
}

// Asset returns the current signature asset.
func (m *Machine) Asset() *signature.Asset {
	return m.asset
}

// State returns the current state.
func (m *Machine) State() State {
	if m.stroke != nil {
		return Drawing
	}
	return Idle
}

// Config returns the selected configuration and whether a tool is selected.
func (m *Machine) Config() (Config, bool) {
	if m.cfg == nil {
		return Config{}, false
	}
	return *m.cfg, true
}

// Select makes cfg the active tool. It fails with ErrBusy while drawing.
func (m *Machine) Select(cfg Config) error {
	if m.State() == Drawing {
		return ErrBusy
	}
	cfg = cfg.Clamp()
	m.cfg = &cfg
	m.opts.configs[cfg.Kind] = cfg
	ink.Logger().Debug("tool: selected", "kind", cfg.Kind, "size", cfg.Size)
	return nil
}

// Deselect clears the active tool. It fails with ErrBusy while drawing.
func (m *Machine) Deselect() error {
	if m.State() == Drawing {
		return ErrBusy
	}
	m.cfg = nil
	return nil
}

// Toggle selects the remembered configuration for kind, or deselects when
// kind is already active.
func (m *Machine) Toggle(kind Kind) error {
	if m.cfg != nil && m.cfg.Kind == kind {
		return m.Deselect()
	}
	return m.Select(m.opts.configs[kind])
}

// CycleColor advances the active tool's color through Palette and returns
// the new color.
func (m *Machine) CycleColor() (ink.RGBA, error) {
	if m.State() == Drawing {
		return ink.RGBA{}, ErrBusy
	}
	base := m.opts.configs[Marker]
	if m.cfg != nil {
		base = *m.cfg
	}
	next := NextColor(base.Color)
	if m.cfg != nil {
		m.cfg.Color = next
		m.opts.configs[m.cfg.Kind] = *m.cfg
	}
	mk := m.opts.configs[Marker]
	mk.Color = next
	m.opts.configs[Marker] = mk
	return next, nil
}

// PointerDown starts a stroke at p, or stamps the signature. It is a no-op
// with no tool, no buffer, or while already drawing. A stamp that would
// cover no pixels is not committed.
func (m *Machine) PointerDown(p ink.Point) {
	if m.cfg == nil || m.buf == nil || m.stroke != nil {
		return
	}
	cfg := *m.cfg
	if cfg.Kind == Signature {
		if m.asset == nil {
			ink.Logger().Debug("tool: signature without asset")
			return
		}
		if cfg.Size <= 0 || m.opts.stamper.Rect(m.asset, p, cfg.Size).Empty() {
			ink.Logger().Debug("tool: signature stamp covers no pixels", "size", cfg.Size)
			return
		}
		m.seed()
		m.opts.stamper.Stamp(m.buf, m.asset, p, cfg.Size)
		m.commit(Commit{Kind: cfg.Kind})
		return
	}

	m.seed()

	m.active = cfg
	m.stroke = render.Begin(m.buf, cfg.Strategy(), cfg.Paint(cfg.Size*m.scale), p)
}

// PointerMove adds a sample to the stroke in progress.
func (m *Machine) PointerMove(p ink.Point) {
	if m.stroke == nil {
		return
	}
	m.stroke.Add(m.buf, p)
}

// PointerUp completes the stroke and commits it to history.
func (m *Machine) PointerUp() {
	if m.stroke == nil {
		return
	}
	ink.Logger().Debug("tool: stroke done", "kind", m.active.Kind, "points", len(m.stroke.Points()))
	m.stroke = nil
	m.commit(Commit{Kind: m.active.Kind})
}

// PointerLeave is treated exactly like PointerUp.
func (m *Machine) PointerLeave() {
	m.PointerUp()
}

// Undo steps the attached history back.
func (m *Machine) Undo() bool {
	if m.stroke != nil || m.buf == nil || m.hist == nil {
		return false
	}
	return m.hist.Undo(m.buf)
}

// Redo steps the attached history forward.
func (m *Machine) Redo() bool {
	if m.stroke != nil || m.buf == nil || m.hist == nil {
		return false
	}
	return m.hist.Redo(m.buf)
}

// ClearPage clears the buffer to transparent and records exactly one
// history entry. It fails with ErrBusy while drawing.
func (m *Machine) ClearPage() error {
	if m.State() == Drawing {
		return ErrBusy
	}
	if m.buf == nil {
		return nil
	}
	m.buf.Clear()
	m.commit(Commit{Cleared: true})
	return nil
}

// Stroke returns the stroke in progress, or nil when idle.
func (m *Machine) Stroke() *render.Stroke {
	return m.stroke
}

// seed records the untouched buffer before the first edit so that undoing
// it returns to blank.
func (m *Machine) seed() {
	if m.hist != nil {
		m.hist.Seed(m.buf)
	}
}

func (m *Machine) commit(c Commit) {
	if m.hist != nil {
		m.hist.Commit(m.buf)
	}
	if m.opts.hook != nil {
		m.opts.hook(c)
	}
}
