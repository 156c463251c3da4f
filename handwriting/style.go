package handwriting

import (
	"github.com/gogpu/ink"
)

// Style controls the look and the perturbation of rendered text.
type Style struct {
	// FontFamily selects a face registered with the engine. Empty selects
	// the engine's default face.
	FontFamily string `yaml:"font_family" json:"fontFamily"`

	// FontSize is the em size in pixels.
	FontSize float64 `yaml:"font_size" json:"fontSize"`

	// Jitter is the full range in pixels of the random offset applied to
	// each glyph on both axes. Valid range [0, 1].
	Jitter float64 `yaml:"jitter" json:"jitter"`

	// Rotation is the full range in degrees of the random rotation applied
	// to each glyph. Valid range [0, 5].
	Rotation float64 `yaml:"rotation" json:"rotation"`

	// SpacingVariance is the full range in pixels of the random change to
	// the advance after each glyph.
	SpacingVariance float64 `yaml:"spacing_variance" json:"spacingVariance"`

	// Color is the ink color.
	Color ink.RGBA `yaml:"-" json:"-"`
}

// DefaultStyle returns a 30 px black style with moderate perturbation.
func DefaultStyle() Style {
	return Style{
		FontSize:        30,
		Jitter:          0.5,
		Rotation:        2,
		SpacingVariance: 2,
		Color:           ink.Black,
	}
}

// FromChaos maps a chaos level in [0, 100] onto the perturbation fields:
// jitter c/100, rotation c/20 degrees, spacing variance c/30.
func FromChaos(base Style, chaos float64) Style {
	chaos = min(max(chaos, 0), 100)
	base.Jitter = chaos / 100
	base.Rotation = chaos / 20
	base.SpacingVariance = chaos / 30
	return base
}

// Clamp limits Jitter to [0, 1], Rotation to [0, 5] and makes sizes
// non-negative.
func (s Style) Clamp() Style {
	s.Jitter = min(max(s.Jitter, 0), 1)
	s.Rotation = min(max(s.Rotation, 0), 5)
	s.SpacingVariance = max(s.SpacingVariance, 0)
	s.FontSize = max(s.FontSize, 0)
	return s
}

// StrikeStyle controls DrawStrike.
type StrikeStyle struct {
	Color     ink.RGBA
	Thickness float64
	Wobble    float64
}

// DefaultStrike returns a black 2 px strike with 2 px wobble.
func DefaultStrike() StrikeStyle {
	return StrikeStyle{Color: ink.Black, Thickness: 2, Wobble: 2}
}
