package icon

import (
	"image"
	"math"

	"github.com/MS8080/iconforge/internal/palette"
	"github.com/MS8080/iconforge/internal/raster"
)

// The lemniscate is sampled at a fixed count; its bounding box and stroke
// width scale with the canvas.
const (
	infinityPoints      = 400
	infinityWidthRatio  = 0.65
	infinityHeightRatio = 0.3
	infinityStrokeRatio = 0.08
)

// Point is a sampled curve coordinate.
type Point struct {
	X, Y float64
}

func renderInfinity(size int, p Palette) *image.NRGBA {
	img := radialGradient(size, p.GradientStart, p.GradientEnd)
	drawStroke(img, InfinityCurve(size), InfinityStrokeWidth(size))
	raster.ApplyMask(img, raster.RoundedMask(size, CornerRadius(size)))
	return raster.FlattenWhite(img)
}

// InfinityCurve samples the figure eight at the proportions the infinity
// style uses for a canvas size.
func InfinityCurve(size int) []Point {
	w := int(float64(size) * infinityWidthRatio)
	h := int(float64(size) * infinityHeightRatio)
	return Lemniscate(float64(size/2), float64(size/2), float64(w), float64(h), infinityPoints)
}

// InfinityStrokeWidth returns the stroke width the infinity style uses at
// a canvas size.
func InfinityStrokeWidth(size int) int {
	return int(float64(size) * infinityStrokeRatio)
}

// Lemniscate samples a figure-eight curve of Bernoulli centered on
// (cx, cy), fitted to the given bounding width and height. The first and
// last samples sit one parameter step apart, so closing the curve is the
// segment from the last point back toward the first.
func Lemniscate(cx, cy, width, height float64, n int) []Point {
	pts := make([]Point, n)
	a, b := width/2, height/2
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		den := 1 + math.Sin(t)*math.Sin(t)
		pts[i] = Point{
			X: cx + a*math.Cos(t)/den,
			Y: cy + b*math.Sin(t)*math.Cos(t)/den,
		}
	}
	return pts
}

// drawStroke connects consecutive samples with rainbow-colored segments,
// thickened by duplicating each segment at integer offsets along both
// axes. The offset range [-(w+1)/2, w/2) is centered on the curve. Segment
// color comes from the sample index over the full count, so the hue wraps
// just short of the violet end.
func drawStroke(img *image.NRGBA, pts []Point, width int) {
	for i := 0; i < len(pts)-1; i++ {
		c := palette.Rainbow(float64(i) / float64(len(pts)))
		x1, y1 := pts[i].X, pts[i].Y
		x2, y2 := pts[i+1].X, pts[i+1].Y
		for off := -((width + 1) / 2); off < width/2; off++ {
			o := float64(off)
			raster.Line(img, int(x1), int(y1+o), int(x2), int(y2+o), c)
			raster.Line(img, int(x1+o), int(y1), int(x2+o), int(y2), c)
		}
	}
}
