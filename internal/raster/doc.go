// Package raster turns outlines into anti-aliased 8-bit coverage masks.
//
// Coverage is accumulated with golang.org/x/image/vector and clamped, so a
// stroke decomposed into overlapping pieces produces a single mask whose
// pixels are never counted twice.
package raster
