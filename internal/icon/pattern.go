package icon

import (
	"image"
	"image/color"
	"math"

	"github.com/MS8080/iconforge/internal/raster"
)

// Pattern geometry is anchored on a base radius of size/6. The center
// circle uses the base radius, the outer ring sits at 1.8x that distance,
// and the inner ring at 0.6 of the outer distance.
const (
	patternOuterDistance = 1.8
	patternInnerFraction = 0.6
	patternOuterScale    = 0.7
	patternInnerScale    = 0.4
	patternAlpha         = 230
	lineAlpha            = 150
	glowSteps            = 20
)

// CircleSpec is one filled circle of the patterns motif.
type CircleSpec struct {
	X, Y, R float64
	Alpha   uint8
}

// LineSpec is one stroked segment of the patterns motif.
type LineSpec struct {
	X1, Y1, X2, Y2 float64
	Width          int
	Alpha          uint8
}

// PatternCircles returns the thirteen-circle motif for a canvas size: the
// center circle, six on the outer ring at 60 degree steps, and six on the
// inner ring rotated 30 degrees.
func PatternCircles(size int) []CircleSpec {
	cx, cy := float64(size/2), float64(size/2)
	base := float64(size / 6)
	offset := base * patternOuterDistance

	circles := make([]CircleSpec, 0, 13)
	circles = append(circles, CircleSpec{cx, cy, base, patternAlpha})
	for k := 0; k < 6; k++ {
		rad := float64(k*60) * math.Pi / 180
		circles = append(circles, CircleSpec{
			X:     cx + offset*math.Cos(rad),
			Y:     cy + offset*math.Sin(rad),
			R:     base * patternOuterScale,
			Alpha: patternAlpha,
		})
	}
	for k := 0; k < 6; k++ {
		rad := float64(30+k*60) * math.Pi / 180
		circles = append(circles, CircleSpec{
			X:     cx + offset*patternInnerFraction*math.Cos(rad),
			Y:     cy + offset*patternInnerFraction*math.Sin(rad),
			R:     base * patternInnerScale,
			Alpha: patternAlpha,
		})
	}
	return circles
}

// PatternLines returns the connecting web for a canvas size in draw
// order: for each of the six primary angles, a spoke from the center to
// the outer circle, then a ring segment from that circle to the next one.
// Ring segments use half the spoke alpha. Widths scale with the canvas
// but never drop below the 3px/2px floor, so the web stays visible at
// 20px.
func PatternLines(size int) []LineSpec {
	cx, cy := float64(size/2), float64(size/2)
	offset := float64(size/6) * patternOuterDistance
	spokeWidth := max(3, size/150)
	ringWidth := max(2, size/200)

	lines := make([]LineSpec, 0, 12)
	for i := 0; i < 6; i++ {
		rad := float64(i*60) * math.Pi / 180
		x1 := cx + offset*math.Cos(rad)
		y1 := cy + offset*math.Sin(rad)
		lines = append(lines, LineSpec{cx, cy, x1, y1, spokeWidth, lineAlpha})

		next := float64(((i+1)%6)*60) * math.Pi / 180
		x2 := cx + offset*math.Cos(next)
		y2 := cy + offset*math.Sin(next)
		lines = append(lines, LineSpec{x1, y1, x2, y2, ringWidth, lineAlpha / 2})
	}
	return lines
}

func renderPatterns(size int, p Palette) *image.NRGBA {
	img := linearGradient(size, p.GradientStart, p.GradientEnd)
	raster.Composite(img, connectingLines(size, p.Pattern))
	raster.Composite(img, patternCircles(size, p.Pattern))
	raster.Composite(img, radialGlow(size))
	raster.ApplyMask(img, raster.RoundedMask(size, CornerRadius(size)))
	return img
}

// patternCircles rasterizes the circle motif on a transparent overlay.
// Overlapping fills replace rather than stack, so the overlay alpha never
// exceeds patternAlpha.
func patternCircles(size int, c color.NRGBA) *image.NRGBA {
	ov := raster.New(size)
	for _, cs := range PatternCircles(size) {
		raster.FillCircle(ov, cs.X, cs.Y, cs.R, color.NRGBA{R: c.R, G: c.G, B: c.B, A: cs.Alpha})
	}
	return ov
}

// connectingLines rasterizes the web on a transparent overlay. Endpoint
// coordinates truncate to pixels.
func connectingLines(size int, c color.NRGBA) *image.NRGBA {
	ov := raster.New(size)
	for _, l := range PatternLines(size) {
		stroke := color.NRGBA{R: c.R, G: c.G, B: c.B, A: l.Alpha}
		raster.ThickLine(ov, int(l.X1), int(l.Y1), int(l.X2), int(l.Y2), l.Width, stroke)
	}
	return ov
}

// radialGlow stacks twenty shrinking white circles on a transparent
// overlay. Each circle replaces the pixels under it, so the glow alpha
// decreases toward the center: the outermost ring keeps alpha 30 and the
// innermost disc ends at alpha 1. Steps whose radius would go negative are
// skipped, which stops the stack early on tiny canvases.
func radialGlow(size int) *image.NRGBA {
	ov := raster.New(size)
	c := float64(size / 2)
	for i := 0; i < glowSteps; i++ {
		alpha := uint8(30 - float64(i)*1.5)
		radius := size/2 - i*5
		if radius < 0 {
			continue
		}
		raster.FillCircle(ov, c, c, float64(radius), color.NRGBA{R: 255, G: 255, B: 255, A: alpha})
	}
	return ov
}
