// Package palette provides the color math shared by the icon renderers:
// truncating linear blends, the seven-anchor rainbow ramp, and hex parsing
// for config overrides.
package palette

import (
	"fmt"
	"image/color"
)

// RainbowAnchors is the red→violet ramp used for the infinity stroke.
var RainbowAnchors = []color.NRGBA{
	{255, 0, 0, 255},   // red
	{255, 127, 0, 255}, // orange
	{255, 255, 0, 255}, // yellow
	{0, 255, 0, 255},   // green
	{0, 127, 255, 255}, // blue
	{75, 0, 130, 255},  // indigo
	{148, 0, 211, 255}, // violet
}

// Mix blends c1 toward c2 by ratio in [0,1]. Channels are computed as
// c1*(1-ratio) + c2*ratio and truncated, so Mix(c1, c2, 0) == c1 exactly.
func Mix(c1, c2 color.NRGBA, ratio float64) color.NRGBA {
	return color.NRGBA{
		R: mixChan(c1.R, c2.R, ratio),
		G: mixChan(c1.G, c2.G, ratio),
		B: mixChan(c1.B, c2.B, ratio),
		A: 255,
	}
}

func mixChan(a, b uint8, ratio float64) uint8 {
	return uint8(float64(a)*(1-ratio) + float64(b)*ratio)
}

// Rainbow maps a position in [0,1) onto the anchor ramp. The position is
// scaled across the six segments; positions at or past the final anchor
// return it unblended rather than erroring.
func Rainbow(pos float64) color.NRGBA {
	scaled := pos * float64(len(RainbowAnchors)-1)
	idx := int(scaled)
	if idx >= len(RainbowAnchors)-1 {
		return RainbowAnchors[len(RainbowAnchors)-1]
	}
	return Mix(RainbowAnchors[idx], RainbowAnchors[idx+1], scaled-float64(idx))
}

// ParseHex parses "#RRGGBB" or "#RGB" (case-insensitive, leading '#'
// optional) into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("palette: invalid hex color %q", s)
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("palette: invalid hex color %q", s)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.NRGBA{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
