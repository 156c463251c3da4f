package history

import (
	"testing"

	"github.com/gogpu/ink"
)

// paintStep draws a distinct mark for step i.
func paintStep(buf *ink.PixelBuffer, i int) {
	p := ink.NewPaint()
	p.Width = 3
	y := float64(2 + i*3)
	buf.PaintStroke([]ink.Point{{X: 5, Y: y}, {X: 95, Y: y}}, p)
}

func TestNewDefaults(t *testing.T) {
	l := New(0)
	if l.Limit() != DefaultLimit || l.Len() != 0 || l.Cursor() != -1 {
		t.Errorf("New(0) = limit %d len %d cursor %d", l.Limit(), l.Len(), l.Cursor())
	}
	if l.CanUndo() || l.CanRedo() {
		t.Error("empty log should not undo or redo")
	}
	buf := ink.NewPixelBuffer(4, 4)
	if l.Undo(buf) || l.Redo(buf) {
		t.Error("Undo/Redo on empty log reported a change")
	}
}

func TestUndoRedoIdentity(t *testing.T) {
	const n = 8
	buf := ink.NewPixelBuffer(100, 100)
	l := New(DefaultLimit)
	l.Seed(buf)

	states := []*ink.Snapshot{buf.Snapshot()}
	for i := range n {
		paintStep(buf, i)
		l.Commit(buf)
		states = append(states, buf.Snapshot())
	}

	for step := n; step > 0; step-- {
		if !l.Undo(buf) {
			t.Fatalf("Undo at step %d failed", step)
		}
		if !states[step-1].Equal(buf) {
			t.Fatalf("after undo to %d buffer differs", step-1)
		}
		if !l.Redo(buf) {
			t.Fatalf("Redo at step %d failed", step)
		}
		if !states[step].Equal(buf) {
			t.Fatalf("undo+redo at step %d is not the identity", step)
		}
		l.Undo(buf)
	}
}

func TestUndoPastFirstClears(t *testing.T) {
	buf := ink.NewPixelBuffer(10, 10)
	l := New(DefaultLimit)
	buf.Fill(ink.White)
	l.Commit(buf)

	if !l.Undo(buf) {
		t.Fatal("Undo() = false")
	}
	if l.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1", l.Cursor())
	}
	if !buf.Snapshot().Transparent() {
		t.Error("undo past first snapshot did not clear")
	}
	if !l.Redo(buf) || buf.RGBAAt(0, 0).A != 255 {
		t.Error("redo from -1 did not restore the first snapshot")
	}
}

func TestUndoPastFirstRestoresBase(t *testing.T) {
	buf := ink.NewPixelBuffer(100, 100)
	paintStep(buf, 0)
	base := buf.Snapshot()
	l := New(DefaultLimit, WithBase(base))
	l.Seed(buf)
	paintStep(buf, 1)
	l.Commit(buf)

	for i := range 3 {
		l.Undo(buf)
		if i > 0 && l.Cursor() != -1 {
			t.Fatalf("Cursor() = %d after %d undos", l.Cursor(), i+1)
		}
	}
	if !base.Equal(buf) {
		t.Error("undo past the first snapshot did not return to the base")
	}
	l.Reset()
	if l.Base() != base {
		t.Error("Reset() dropped the base")
	}
}

func TestBoundedHistory(t *testing.T) {
	buf := ink.NewPixelBuffer(100, 100)
	l := New(DefaultLimit)

	var states []*ink.Snapshot
	for i := range 25 {
		paintStep(buf, i)
		l.Commit(buf)
		states = append(states, buf.Snapshot())
	}
	if l.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", l.Len())
	}
	if l.Cursor() != 19 {
		t.Fatalf("Cursor() = %d, want 19", l.Cursor())
	}

	// Only states 5..24 are reachable.
	for i := 23; i >= 5; i-- {
		l.Undo(buf)
		if !states[i].Equal(buf) {
			t.Fatalf("undo to state %d mismatch", i)
		}
	}
	l.Undo(buf)
	if !buf.Snapshot().Transparent() || l.CanUndo() {
		t.Error("undo past the oldest retained state should clear and stop")
	}
}

func TestCommitDiscardsRedo(t *testing.T) {
	buf := ink.NewPixelBuffer(100, 100)
	l := New(DefaultLimit)
	l.Seed(buf)
	for i := range 3 {
		paintStep(buf, i)
		l.Commit(buf)
	}
	l.Undo(buf)
	l.Undo(buf)
	if !l.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	paintStep(buf, 10)
	l.Commit(buf)
	if l.CanRedo() {
		t.Error("commit after undo kept redo states")
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestSeedOnlyOnce(t *testing.T) {
	buf := ink.NewPixelBuffer(4, 4)
	l := New(5)
	if !l.Seed(buf) {
		t.Fatal("first Seed() = false")
	}
	if l.Seed(buf) {
		t.Error("second Seed() = true")
	}
	if l.Len() != 1 || l.Cursor() != 0 {
		t.Errorf("after seed len %d cursor %d, want 1 0", l.Len(), l.Cursor())
	}
	l.Reset()
	if l.Seeded() || l.Cursor() != -1 || l.Current() != nil {
		t.Error("Reset() left state behind")
	}
}
