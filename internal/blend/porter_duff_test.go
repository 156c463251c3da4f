package blend

import "testing"

// TestMulDiv255 tests the multiply and divide by 255 helper function.
func TestMulDiv255(t *testing.T) {
	tests := []struct {
		name string
		a, b byte
		want byte
	}{
		{"zero * zero", 0, 0, 0},
		{"zero * max", 0, 255, 0},
		{"max * zero", 255, 0, 0},
		{"max * max", 255, 255, 255},
		{"half * half", 128, 128, 64},
		{"255 * 128", 255, 128, 128},
		{"128 * 255", 128, 255, 128},
		{"100 * 100", 100, 100, 40},
		{"200 * 200", 200, 200, 157},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mulDiv255(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestMulDiv255Identity verifies full coverage never alters a channel.
func TestMulDiv255Identity(t *testing.T) {
	for a := 0; a < 256; a++ {
		if got := mulDiv255(byte(a), 255); got != byte(a) {
			t.Fatalf("mulDiv255(%d, 255) = %d", a, got)
		}
	}
}

func TestPorterDuff(t *testing.T) {
	type px [4]byte
	tests := []struct {
		name string
		mode Mode
		src  px
		dst  px
		want px
	}{
		{"clear", Clear, px{255, 0, 0, 255}, px{0, 0, 255, 255}, px{0, 0, 0, 0}},
		{"source", Source, px{128, 0, 0, 128}, px{0, 0, 255, 255}, px{128, 0, 0, 128}},
		{"over transparent", SourceOver, px{128, 0, 0, 128}, px{0, 0, 0, 0}, px{128, 0, 0, 128}},
		{"over opaque", SourceOver, px{128, 0, 0, 128}, px{0, 0, 255, 255}, px{128, 0, 127, 255}},
		{"opaque over", SourceOver, px{255, 255, 255, 255}, px{10, 20, 30, 255}, px{255, 255, 255, 255}},
		{"destination over", DestinationOver, px{255, 0, 0, 255}, px{0, 0, 128, 128}, px{127, 0, 128, 255}},
		{"destination in", DestinationIn, px{0, 0, 0, 128}, px{0, 0, 255, 255}, px{0, 0, 128, 128}},
		{"destination out full", DestinationOut, px{0, 0, 0, 255}, px{10, 20, 30, 255}, px{0, 0, 0, 0}},
		{"destination out none", DestinationOut, px{0, 0, 0, 0}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := Get(tt.mode)
			r, g, b, a := fn(tt.src[0], tt.src[1], tt.src[2], tt.src[3], tt.dst[0], tt.dst[1], tt.dst[2], tt.dst[3])
			if got := (px{r, g, b, a}); got != tt.want {
				t.Errorf("%v: got %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if got := DestinationOut.String(); got != "destination-out" {
		t.Errorf("DestinationOut.String() = %q", got)
	}
	if got := Mode(200).String(); got != "unknown" {
		t.Errorf("Mode(200).String() = %q", got)
	}
}

func TestSpan(t *testing.T) {
	dst := []byte{
		0, 0, 255, 255,
		0, 0, 255, 255,
		0, 0, 255, 255,
	}
	Span(dst, []byte{0, 255, 128}, 0, 0, 0, 255, Get(DestinationOut))

	want := []byte{
		0, 0, 255, 255, // zero coverage untouched
		0, 0, 0, 0, // fully erased
		0, 0, 127, 127, // half erased
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Span() = %v, want %v", dst, want)
		}
	}
}

func TestSpanOver(t *testing.T) {
	dst := []byte{0, 0, 255, 255, 9, 9, 9, 9}
	src := []byte{255, 0, 0, 255, 0, 0, 0, 0}
	SpanOver(dst, src)
	want := []byte{255, 0, 0, 255, 9, 9, 9, 9}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("SpanOver() = %v, want %v", dst, want)
		}
	}
}
