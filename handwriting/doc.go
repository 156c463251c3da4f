// Package handwriting renders text that imitates human handwriting.
//
// The Engine draws one glyph at a time. Each glyph gets a random rotation,
// a random positional jitter, and a random change to the spacing before
// the next glyph, all drawn from an injected random source. With a seeded
// source the output is fully reproducible.
//
// On top of the engine, Layout performs greedy word wrap on an A4 page,
// DrawPaper paints plain, lined or grid stationery, and Generator combines
// them into full pages with per-word misalignment.
//
// # Usage
//
//	e, _ := handwriting.NewEngine(handwriting.WithSeed(42))
//	pb := ink.NewPixelBuffer(400, 100)
//	end := e.RenderText(pb, "Hello", 20, 50, handwriting.DefaultStyle())
//	e.DrawStrike(pb, 20, 45, end, 45, handwriting.DefaultStrike())
package handwriting
