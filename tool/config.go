// Package tool implements the annotation tool configuration and the
// Idle/Drawing state machine that routes pointer samples to the stroke
// renderer.
package tool

import (
	"fmt"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

// Kind identifies an annotation tool.
type Kind uint8

const (
	// Marker is a translucent highlighter.
	Marker Kind = iota
	// Eraser clears overlay pixels to transparent.
	Eraser
	// Whiteout paints opaque white to hide page content.
	Whiteout
	// Signature stamps the session's signature asset.
	Signature
)

var kindNames = [...]string{"marker", "eraser", "whiteout", "signature"}

// String returns the tool name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind parses a tool name.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("tool: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Palette is the marker color cycle.
var Palette = []ink.RGBA{
	ink.Hex("#ce0a3a"),
	ink.Hex("#000000"),
	ink.Hex("#0000ff"),
	ink.Hex("#00ff00"),
	ink.Hex("#ffff00"),
}

// NextColor returns the palette entry after c. Colors outside the palette
// restart the cycle at its first entry.
func NextColor(c ink.RGBA) ink.RGBA {
	for i, p := range Palette {
		if p == c {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// Config is the active tool and its parameters. Size is a line width in
// display pixels, or a stamp scale for Signature.
type Config struct {
	Kind    Kind
	Size    float64
	Color   ink.RGBA
	Opacity float64
}

// Default returns the default configuration for kind.
func Default(kind Kind) Config {
	switch kind {
	case Eraser:
		return Config{Kind: Eraser, Size: 20, Color: ink.Black, Opacity: 1}
	case Whiteout:
		return Config{Kind: Whiteout, Size: 30, Color: ink.White, Opacity: 1}
	case Signature:
		return Config{Kind: Signature, Size: 2, Color: ink.Black, Opacity: 1}
	default:
		return Config{Kind: Marker, Size: 15, Color: Palette[0], Opacity: 0.5}
	}
}

// SizeRange returns the allowed size range for kind.
func SizeRange(kind Kind) (lo, hi float64) {
	switch kind {
	case Marker:
		return 1, 50
	case Signature:
		return 1, 10
	default:
		return 5, 100
	}
}

// Clamp returns c with Size clamped to its kind's range and Opacity to [0, 1].
func (c Config) Clamp() Config {
	lo, hi := SizeRange(c.Kind)
	c.Size = min(max(c.Size, lo), hi)
	c.Opacity = min(max(c.Opacity, 0), 1)
	return c
}

// Strategy returns how strokes of this tool reach the buffer.
func (c Config) Strategy() render.Strategy {
	if c.Kind == Marker {
		return render.Replay
	}
	return render.Incremental
}

// Paint returns the paint for a stroke of this tool with the given buffer
// width.
func (c Config) Paint(width float64) ink.Paint {
	p := ink.Paint{
		Color:   c.Color,
		Opacity: c.Opacity,
		Width:   width,
		Cap:     ink.LineCapRound,
		Mode:    ink.SourceOver,
	}
	switch c.Kind {
	case Eraser:
		p.Color, p.Opacity, p.Mode = ink.Black, 1, ink.DestinationOut
	case Whiteout:
		p.Color, p.Opacity = ink.White, 1
	}
	return p
}
