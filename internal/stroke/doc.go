// Package stroke converts sampled polylines into fillable outlines.
//
// Unlike a classic offset-curve stroker, the expander decomposes a stroke
// into simple convex pieces:
//   - one quadrilateral per segment, offset by width/2 on either side
//   - one disk per vertex for round joins and round caps
//   - optional square extensions for square caps
//
// Every piece is emitted with the same (positive) orientation, so a
// coverage rasterizer that clamps accumulated winding to 1 fills their
// union exactly once. This is what makes a translucent stroke that crosses
// itself blend uniformly: the crossing is covered once, not twice.
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{Width: 15, Cap: stroke.CapRound})
//	for _, poly := range e.Expand(points) {
//	    // fill poly
//	}
package stroke
