package handwriting

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ink"
)

func newSeeded(t *testing.T, seed uint64) *Engine {
	t.Helper()
	e, err := NewEngine(WithSeed(seed))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestPlacementsDeterministic(t *testing.T) {
	style := FromChaos(DefaultStyle(), 80)
	a, endA := newSeeded(t, 42).Placements("AB", 0, 0, style)
	b, endB := newSeeded(t, 42).Placements("AB", 0, 0, style)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("placements differ under the same seed (-a +b):\n%s", diff)
	}
	if endA != endB {
		t.Errorf("end cursor %v != %v", endA, endB)
	}

	c, _ := newSeeded(t, 7).Placements("AB", 0, 0, style)
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical placements")
	}
}

func TestPlacementsZeroPerturbation(t *testing.T) {
	e := newSeeded(t, 1)
	style := Style{FontSize: 30, Color: ink.Black}
	pl, end := e.Placements("AB", 0, 0, style)
	if len(pl) != 2 {
		t.Fatalf("len(placements) = %d, want 2", len(pl))
	}
	face := e.Face(style)
	advA, advB := face.Advance('A', 30), face.Advance('B', 30)
	if advA <= 0 || advB <= 0 {
		t.Fatalf("advances = %v, %v", advA, advB)
	}

	wantX := []float64{0, advA}
	for i, p := range pl {
		if p.X != wantX[i] || p.Y != 0 || p.Angle != 0 || p.Spacing != 0 {
			t.Errorf("placement %d = %+v, want X=%v on the baseline", i, p, wantX[i])
		}
	}
	if end != advA+advB {
		t.Errorf("end = %v, want %v", end, advA+advB)
	}
}

func TestPlacementsWithinRanges(t *testing.T) {
	e := newSeeded(t, 99)
	style := Style{FontSize: 20, Jitter: 1, Rotation: 5, SpacingVariance: 3}
	pl, _ := e.Placements("handwriting sample", 100, 50, style)

	cursor := 100.0
	for i, p := range pl {
		if math.Abs(p.X-cursor) > 0.5 || math.Abs(p.Y-50) > 0.5 {
			t.Errorf("glyph %d jitter out of range: %+v cursor %v", i, p, cursor)
		}
		if math.Abs(p.Angle) > 2.5*math.Pi/180 {
			t.Errorf("glyph %d angle %v out of range", i, p.Angle)
		}
		if math.Abs(p.Spacing) > 1.5 {
			t.Errorf("glyph %d spacing %v out of range", i, p.Spacing)
		}
		cursor += p.Advance + p.Spacing
	}
}

func TestPlacementsNormalizeNFC(t *testing.T) {
	e := newSeeded(t, 3)
	pl, _ := e.Placements("e\u0301", 0, 0, DefaultStyle())
	if len(pl) != 1 || pl[0].Rune != '\u00e9' {
		t.Errorf("placements = %+v, want a single composed é", pl)
	}
}

func TestRenderTextDraws(t *testing.T) {
	e := newSeeded(t, 5)
	pb := ink.NewPixelBuffer(300, 80)
	style := DefaultStyle()
	end := e.RenderText(pb, "Hello", 10, 50, style)
	if end <= 10 {
		t.Fatalf("end = %v, want > 10", end)
	}
	if pb.Snapshot().Transparent() {
		t.Fatal("RenderText drew nothing")
	}
	// Nothing far below the baseline or right of the run.
	for y := 70; y < 80; y++ {
		for x := 0; x < 300; x++ {
			if pb.RGBAAt(x, y).A != 0 {
				t.Fatalf("ink at (%d, %d) below descender area", x, y)
			}
		}
	}
	for x := int(end) + 10; x < 300; x++ {
		if pb.RGBAAt(x, 40).A != 0 {
			t.Fatalf("ink at (%d, 40) right of the run", x)
		}
	}
}

func TestStrikePoints(t *testing.T) {
	e := newSeeded(t, 11)
	pts := e.StrikePoints(0, 0, 50, 0, 0)
	// Exact start, then one point every 5 px including both ends.
	if len(pts) != 12 {
		t.Fatalf("len(points) = %d, want 12", len(pts))
	}
	for i, p := range pts[1:] {
		if want := float64(i) * 5; math.Abs(p.X-want) > 1e-9 || p.Y != 0 {
			t.Errorf("point %d = %v, want (%v, 0)", i+1, p, want)
		}
	}

	wobbly := e.StrikePoints(0, 0, 50, 0, 2)
	for i, p := range wobbly[1:] {
		if math.Abs(p.Y) > 1 || math.Abs(p.X-float64(i)*5) > 1 {
			t.Errorf("point %d = %v exceeds wobble", i+1, p)
		}
	}

	if got := e.StrikePoints(3, 3, 3, 3, 2); len(got) != 1 {
		t.Errorf("zero-length strike has %d points, want 1", len(got))
	}
}

func TestDrawStrike(t *testing.T) {
	e := newSeeded(t, 2)
	pb := ink.NewPixelBuffer(100, 40)
	e.DrawStrike(pb, 10, 20, 90, 20, DefaultStrike())
	if pb.RGBAAt(50, 20).A == 0 && pb.RGBAAt(50, 19).A == 0 && pb.RGBAAt(50, 21).A == 0 {
		t.Error("no ink near the strike center")
	}
	if pb.RGBAAt(50, 5).A != 0 {
		t.Error("strike ink far from the line")
	}
}

func TestFromChaos(t *testing.T) {
	got := FromChaos(Style{FontSize: 24}, 50)
	want := Style{FontSize: 24, Jitter: 0.5, Rotation: 2.5, SpacingVariance: 50.0 / 30}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromChaos mismatch (-want +got):\n%s", diff)
	}
	if s := FromChaos(Style{}, 500); s.Jitter != 1 || s.Rotation != 5 {
		t.Errorf("FromChaos(500) = %+v, want clamped to 100", s)
	}
}

func TestPreview(t *testing.T) {
	pb := newSeeded(t, 8).Preview(FromChaos(DefaultStyle(), 50))
	if pb.Width() != 300 || pb.Height() != 150 {
		t.Fatalf("preview size = %dx%d", pb.Width(), pb.Height())
	}
	if pb.Snapshot().Transparent() {
		t.Error("preview is empty")
	}
}

func TestFamilies(t *testing.T) {
	e := newSeeded(t, 1)
	if e.Face(Style{FontFamily: "Go Italic"}) != GoItalic() {
		t.Error("Go Italic family not registered")
	}
	if e.Face(Style{FontFamily: "Indie Flower"}) != GoRegular() {
		t.Error("unknown family should fall back to the default face")
	}
}

func TestFork(t *testing.T) {
	base := newSeeded(t, 1)
	style := FromChaos(DefaultStyle(), 60)
	a, _ := base.Fork(NewRand(9)).Placements("fork", 0, 0, style)
	b, _ := newSeeded(t, 9).Placements("fork", 0, 0, style)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("fork placements differ from a fresh engine with the same seed:\n%s", diff)
	}
	if len(base.Fork(nil).Families()) != len(base.Families()) {
		t.Error("fork lost registered families")
	}
}
