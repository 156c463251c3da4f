// Package ink provides the raster core of a document annotation and
// handwriting engine.
//
// # Overview
//
// ink models a page overlay as a PixelBuffer: a premultiplied RGBA grid
// the size of the rendered page. Tools paint freehand strokes into it,
// a history records snapshots for undo and redo, and a handwriting engine
// renders text that looks hand-written. Everything is pure Go and runs
// on the CPU.
//
// # Quick Start
//
//	pb := ink.NewPixelBuffer(794, 1123)
//
//	pb.PaintStroke([]ink.Point{{100, 100}, {300, 180}}, ink.Paint{
//	    Color:   ink.Hex("#ce0a3a"),
//	    Opacity: 0.5,
//	    Width:   15,
//	    Cap:     ink.LineCapRound,
//	})
//
//	pb.SavePNG("overlay.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: PixelBuffer, Snapshot, Paint, Path, Matrix, Point, RGBA
//   - Internal: stroke (outline expansion), raster (coverage), blend (compositing)
//   - Components: input, tool, render, history, signature, handwriting, session
//   - Collaborators: document (PDF mutation), ocr (recognition contract)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left of the backing buffer
//   - X increases right
//   - Y increases down
//   - Angles in radians, positive angles rotate clockwise on screen
//
// # Compositing
//
// A stroke is expanded into outline pieces and rasterized as a single
// coverage mask before it is blended. Self-overlapping regions are covered
// once, so a translucent marker has uniform opacity along its whole path.
package ink

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
