package ink

import (
	"strconv"
	"testing"
)

// BenchmarkPixelBuffer_Fill benchmarks filling buffers of various sizes.
func BenchmarkPixelBuffer_Fill(b *testing.B) {
	sizes := []struct {
		name   string
		width  int
		height int
	}{
		{"100x100", 100, 100},
		{"794x1123", 794, 1123},
		{"1920x1080", 1920, 1080},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			pb := NewPixelBuffer(size.width, size.height)
			c := Hex("#ce0a3a")
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				pb.Fill(c)
			}
			b.SetBytes(int64(size.width * size.height * 4))
		})
	}
}

// BenchmarkPixelBuffer_PaintStroke measures a full-path marker redraw,
// the per-move cost of replay rendering.
func BenchmarkPixelBuffer_PaintStroke(b *testing.B) {
	points := []int{2, 16, 128, 512}
	for _, n := range points {
		b.Run(strconv.Itoa(n)+"pts", func(b *testing.B) {
			pb := NewPixelBuffer(800, 600)
			pts := make([]Point, n)
			for i := range pts {
				pts[i] = Pt(float64(50+i%700), float64(100+(i*37)%400))
			}
			p := Paint{Color: Hex("#ce0a3a"), Opacity: 0.5, Width: 15, Cap: LineCapRound}
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				pb.PaintStroke(pts, p)
			}
		})
	}
}

// BenchmarkPixelBuffer_Snapshot measures snapshot capture and restore.
func BenchmarkPixelBuffer_Snapshot(b *testing.B) {
	pb := NewPixelBuffer(794, 1123)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := pb.Snapshot()
		_ = pb.Restore(s)
	}
}
