// Package history keeps a bounded linear undo/redo log of full-buffer
// snapshots for the active page.
package history

import (
	"github.com/gogpu/ink"
)

// DefaultLimit is the number of snapshots kept before the oldest is evicted.
const DefaultLimit = 20

// Log is a linear undo/redo log. The zero value is not usable; call New.
//
// Cursor is -1 when the log is empty or fully undone, otherwise it indexes
// the snapshot that matches the buffer.
type Log struct {
	limit     int
	base      *ink.Snapshot
	snapshots []*ink.Snapshot
	cursor    int
}

// Option configures a Log.
type Option func(*Log)

// WithBase sets the state that undoing the first snapshot returns to.
// Without a base the buffer is cleared to transparent.
func WithBase(s *ink.Snapshot) Option {
	return func(l *Log) {
		l.base = s
	}
}

// New creates a log holding at most limit snapshots. A non-positive limit
// selects DefaultLimit.
func New(limit int, opts ...Option) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	l := &Log{limit: limit, cursor: -1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Base returns the baseline snapshot, or nil.
func (l *Log) Base() *ink.Snapshot { return l.base }

// Limit returns the maximum number of retained snapshots.
func (l *Log) Limit() int { return l.limit }

// Len returns the number of retained snapshots.
func (l *Log) Len() int { return len(l.snapshots) }

// Cursor returns the index of the current snapshot, or -1.
func (l *Log) Cursor() int { return l.cursor }

// Seeded reports whether any snapshot has been recorded since the last reset.
func (l *Log) Seeded() bool { return len(l.snapshots) > 0 }

// CanUndo reports whether Undo would change the buffer.
func (l *Log) CanUndo() bool { return l.cursor >= 0 }

// CanRedo reports whether Redo would change the buffer.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snapshots)-1 }

// Seed records the initial state of buf when the log is still empty, so
// undoing the first stroke returns to that state. It reports whether a
// snapshot was recorded.
func (l *Log) Seed(buf *ink.PixelBuffer) bool {
	if l.Seeded() {
		return false
	}
	l.Commit(buf)
	return true
}

// Commit copies buf into a new snapshot, discarding any redo states. When
// the log exceeds its limit the oldest snapshot is evicted.
func (l *Log) Commit(buf *ink.PixelBuffer) {
	l.snapshots = append(l.snapshots[:l.cursor+1], buf.Snapshot())
	l.cursor++
	if over := len(l.snapshots) - l.limit; over > 0 {
		clear(l.snapshots[:over])
		l.snapshots = l.snapshots[over:]
		l.cursor -= over
	}
	ink.Logger().Debug("history: commit", "len", len(l.snapshots), "cursor", l.cursor)
}

// Undo steps back one snapshot and restores it into buf. Undoing the first
// snapshot restores the base, or clears buf to transparent without one,
// and leaves the cursor at -1. It reports whether the buffer changed state.
func (l *Log) Undo(buf *ink.PixelBuffer) bool {
	switch {
	case l.cursor > 0:
		l.cursor--
		return l.restore(buf)
	case l.cursor == 0:
		l.cursor = -1
		if l.base == nil {
			buf.Clear()
			return true
		}
		if err := buf.Restore(l.base); err != nil {
			ink.Logger().Warn("history: restore base failed", "err", err)
			return false
		}
		return true
	default:
		return false
	}
}

// Redo steps forward one snapshot and restores it into buf.
func (l *Log) Redo(buf *ink.PixelBuffer) bool {
	if !l.CanRedo() {
		return false
	}
	l.cursor++
	return l.restore(buf)
}

// Reset drops every snapshot. The base is kept.
func (l *Log) Reset() {
	clear(l.snapshots)
	l.snapshots = l.snapshots[:0]
	l.cursor = -1
}

// Current returns the snapshot at the cursor, or nil.
func (l *Log) Current() *ink.Snapshot {
	if l.cursor < 0 {
		return nil
	}
	return l.snapshots[l.cursor]
}

func (l *Log) restore(buf *ink.PixelBuffer) bool {
	if err := buf.Restore(l.snapshots[l.cursor]); err != nil {
		ink.Logger().Warn("history: restore failed", "err", err)
		return false
	}
	return true
}
