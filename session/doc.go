// Package session binds one annotation overlay to the active page of a
// document.
//
// A Coordinator owns the live PageContext: the overlay PixelBuffer and its
// undo history. Changing the active page parks the current overlay and
// starts a fresh context, so annotations never leak across pages and undo
// never reaches back before the page became active. Returning to a page
// restores its parked overlay once the page surface is ready again. A new
// document identity, as produced by every structural edit, discards all
// parked overlays.
//
// The Coordinator is driven from a single goroutine, like the tool
// machine it wraps.
package session
