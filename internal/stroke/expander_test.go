package stroke

import (
	"math"
	"testing"
)

func TestNewExpander(t *testing.T) {
	e := NewExpander(Style{Width: 4, Cap: CapRound})
	if e.tolerance != 0.25 {
		t.Errorf("tolerance = %v, want 0.25", e.tolerance)
	}

	e.SetTolerance(0.1)
	if e.tolerance != 0.1 {
		t.Errorf("tolerance = %v, want 0.1", e.tolerance)
	}
	e.SetTolerance(-1)
	e.SetTolerance(0)
	if e.tolerance != 0.1 {
		t.Error("non-positive tolerance should be ignored")
	}
}

func TestExpandEmpty(t *testing.T) {
	tests := []struct {
		name   string
		style  Style
		points []Point
	}{
		{"no points", Style{Width: 2, Cap: CapRound}, nil},
		{"zero width", Style{Width: 0, Cap: CapRound}, []Point{{0, 0}, {10, 0}}},
		{"butt dot", Style{Width: 2, Cap: CapButt}, []Point{{5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewExpander(tt.style).Expand(tt.points); len(got) != 0 {
				t.Errorf("Expand() = %d polygons, want 0", len(got))
			}
		})
	}
}

func TestExpandDot(t *testing.T) {
	polys := NewExpander(Style{Width: 10, Cap: CapRound}).Expand([]Point{{20, 20}, {20, 20}})
	if len(polys) != 1 {
		t.Fatalf("Expand() = %d polygons, want 1", len(polys))
	}
	for _, p := range polys[0] {
		d := math.Hypot(p.X-20, p.Y-20)
		if math.Abs(d-5) > 1e-9 {
			t.Errorf("vertex %v at distance %v, want 5", p, d)
		}
	}
}

func TestExpandButtLine(t *testing.T) {
	polys := NewExpander(Style{Width: 2, Cap: CapButt}).Expand([]Point{{0, 0}, {10, 0}})
	if len(polys) != 1 {
		t.Fatalf("Expand() = %d polygons, want 1", len(polys))
	}
	// 10 x 2 rectangle, doubled by the shoelace sum.
	if got := SignedArea(polys[0]); math.Abs(got-40) > 1e-9 {
		t.Errorf("SignedArea = %v, want 40", got)
	}
}

func TestExpandSquareCapExtends(t *testing.T) {
	polys := NewExpander(Style{Width: 2, Cap: CapSquare}).Expand([]Point{{0, 0}, {10, 0}})
	if len(polys) != 1 {
		t.Fatalf("Expand() = %d polygons, want 1", len(polys))
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range polys[0] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	if minX != -1 || maxX != 11 {
		t.Errorf("x extent = [%v, %v], want [-1, 11]", minX, maxX)
	}
}

func TestExpandRoundJoins(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	polys := NewExpander(Style{Width: 4, Cap: CapRound}).Expand(pts)
	// 3 segments + 4 vertex disks.
	if len(polys) != 7 {
		t.Fatalf("Expand() = %d polygons, want 7", len(polys))
	}
}

func TestExpandPositiveOrientation(t *testing.T) {
	// Segments in every direction, including ones whose natural winding is negative.
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 0}, {-5, 7}, {3, -9}}
	for _, style := range []Style{
		{Width: 3, Cap: CapButt},
		{Width: 3, Cap: CapRound},
		{Width: 3, Cap: CapSquare},
	} {
		for i, poly := range NewExpander(style).Expand(pts) {
			if a := SignedArea(poly); a <= 0 {
				t.Errorf("cap %v polygon %d: SignedArea = %v, want > 0", style.Cap, i, a)
			}
		}
	}
}

func TestExpandSkipsDuplicates(t *testing.T) {
	polys := NewExpander(Style{Width: 2, Cap: CapButt}).Expand([]Point{{0, 0}, {0, 0}, {5, 0}, {5, 0}})
	if len(polys) != 1 {
		t.Errorf("Expand() = %d polygons, want 1", len(polys))
	}
}

func TestDiskSegmentCount(t *testing.T) {
	e := NewExpander(Style{Width: 1, Cap: CapRound})
	tests := []struct {
		r       float64
		wantMin int
		wantMax int
	}{
		{0.1, 8, 8},
		{1, 8, 8},
		{50, 30, 60},
		{1e6, 256, 256},
	}
	for _, tt := range tests {
		n := len(e.disk(Point{}, tt.r))
		if n < tt.wantMin || n > tt.wantMax {
			t.Errorf("disk(r=%v) has %d vertices, want [%d, %d]", tt.r, n, tt.wantMin, tt.wantMax)
		}
	}
}
