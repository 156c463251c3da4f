package handwriting

import "testing"

func TestFontSizeForDensity(t *testing.T) {
	tests := []struct{ density, want float64 }{
		{50, 24},
		{0, 36},
		{100, 12},
		{-10, 36},
	}
	for _, tt := range tests {
		if got := FontSizeForDensity(tt.density); got != tt.want {
			t.Errorf("FontSizeForDensity(%v) = %v, want %v", tt.density, got, tt.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(newSeeded(t, 21))
	opts := DefaultPageOptions()
	opts.Paper = Lined

	pages, err := g.Generate("The quick brown fox jumps over the lazy dog.", opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	pb := pages[0]
	if pb.Width() != 794 || pb.Height() != 1123 {
		t.Fatalf("page size = %dx%d", pb.Width(), pb.Height())
	}

	dark := 0
	for y := 95; y < 135; y++ {
		for x := 70; x < 714; x++ {
			if c := pb.RGBAAt(x, y); c.R < 100 && c.G < 100 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no ink in the first text line")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultPageOptions()
	a, _ := NewGenerator(newSeeded(t, 4)).Generate("same seed same page", opts)
	b, _ := NewGenerator(newSeeded(t, 4)).Generate("same seed same page", opts)
	if !a[0].Equal(b[0]) {
		t.Error("pages differ under the same seed")
	}
}

func TestGenerateValidates(t *testing.T) {
	g := NewGenerator(newSeeded(t, 1))
	opts := DefaultPageOptions()
	opts.Page.MarginLeft = 500
	opts.Page.MarginRight = 400
	if _, err := g.Generate("x", opts); err == nil {
		t.Error("Generate accepted margins wider than the page")
	}
	opts = DefaultPageOptions()
	opts.Paper = "papyrus"
	if _, err := g.Generate("x", opts); err == nil {
		t.Error("Generate accepted an unknown paper")
	}
}

func TestGeneratorLayoutMatchesDensity(t *testing.T) {
	g := NewGenerator(newSeeded(t, 1))
	opts := DefaultPageOptions()
	opts.Density = 0
	words := g.Layout("one two three four five six seven eight nine ten", opts)
	if len(words) != 10 {
		t.Fatalf("len(words) = %d", len(words))
	}
	lineHeight := FontSizeForDensity(0) * LineHeightFactor
	for _, w := range words {
		off := w.Y - opts.Page.MarginTop
		if got := off / lineHeight; got != float64(w.Line) {
			t.Errorf("word %q y offset %v not a multiple of %v", w.Text, off, lineHeight)
		}
	}
}
