// Package raster implements the pixel-level drawing primitives the icon
// renderers are built on: Bresenham lines, distance-test circle fills,
// rounded-rectangle masks, and straight-alpha compositing.
//
// Primitives SET pixels rather than blending them. Translucent shapes are
// drawn onto a transparent overlay (later shapes overwrite earlier ones
// where they cross) and blending happens once, when Composite merges the
// overlay onto the opaque base.
package raster

import (
	"image"
	"image/color"
	"math"
)

// New returns a transparent square canvas.
func New(size int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, size, size))
}

// Fill sets every pixel of img to c.
func Fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// setPixel writes c at (x, y), ignoring out-of-bounds coordinates.
func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return
	}
	img.SetNRGBA(x, y, c)
}

// div255 divides by 255 with round-half-up, the usual 8-bit blend divisor.
func div255(v uint32) uint8 {
	return uint8((v + 127) / 255)
}

// Composite merges overlay onto base in place using straight-alpha
// blending: out = base*(255-a)/255 + overlay*a/255. The base is expected
// to be fully opaque; its alpha channel is left untouched.
func Composite(base, overlay *image.NRGBA) {
	b := base.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := overlay.NRGBAAt(x, y)
			if o.A == 0 {
				continue
			}
			if o.A == 255 {
				base.SetNRGBA(x, y, color.NRGBA{o.R, o.G, o.B, 255})
				continue
			}
			p := base.NRGBAAt(x, y)
			a := uint32(o.A)
			ia := 255 - a
			base.SetNRGBA(x, y, color.NRGBA{
				R: div255(uint32(p.R)*ia + uint32(o.R)*a),
				G: div255(uint32(p.G)*ia + uint32(o.G)*a),
				B: div255(uint32(p.B)*ia + uint32(o.B)*a),
				A: p.A,
			})
		}
	}
}

// Line draws a one-pixel line from (x0,y0) to (x1,y1) using Bresenham's
// algorithm. Endpoints outside the canvas are clipped per pixel.
func Line(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// ThickLine draws a line of the given width by stacking one-pixel lines
// offset across the axis perpendicular to the dominant direction. The
// stack is centered on the segment, with the extra row above/left when
// the width is even.
func ThickLine(img *image.NRGBA, x0, y0, x1, y1, width int, c color.NRGBA) {
	if width <= 1 {
		Line(img, x0, y0, x1, y1, c)
		return
	}
	horizontalish := abs(x1-x0) >= abs(y1-y0)
	for off := -(width / 2); off <= (width-1)/2; off++ {
		if horizontalish {
			Line(img, x0, y0+off, x1, y1+off, c)
		} else {
			Line(img, x0+off, y0, x1+off, y1, c)
		}
	}
}

// FillCircle fills the circle of radius r centered at (cx, cy) using a
// per-pixel distance test. A radius of zero sets the single center pixel;
// negative radii draw nothing.
func FillCircle(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	if r < 0 {
		return
	}
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	rr := r * r
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= rr {
				setPixel(img, x, y, c)
			}
		}
	}
}

// RoundedMask returns a size×size single-channel mask holding 255 inside
// a full-canvas rounded rectangle and 0 outside. The edge is hard, no
// anti-aliasing. Corner arcs are centered radius pixels in from each side
// of the [0,size] box, so the far arc centers sit at size-radius.
func RoundedMask(size, radius int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, size, size))
	rr := radius * radius
	for y := 0; y < size; y++ {
		cy := clampCorner(y, radius, size)
		for x := 0; x < size; x++ {
			cx := clampCorner(x, radius, size)
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr {
				m.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return m
}

// clampCorner maps a coordinate to the nearest corner-arc center along one
// axis; coordinates between the arcs map to themselves (distance zero).
func clampCorner(v, radius, size int) int {
	if v < radius {
		return radius
	}
	if v > size-radius {
		return size - radius
	}
	return v
}

// ApplyMask replaces the alpha channel of img with the mask values,
// leaving color channels untouched.
func ApplyMask(img *image.NRGBA, mask *image.Alpha) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.NRGBAAt(x, y)
			p.A = mask.AlphaAt(x, y).A
			img.SetNRGBA(x, y, p)
		}
	}
}

// FlattenWhite composites img over an opaque white background and returns
// the result. Every output pixel is fully opaque, so PNG encoding emits a
// plain RGB image.
func FlattenWhite(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.NRGBAAt(x, y)
			a := uint32(p.A)
			ia := 255 - a
			out.SetNRGBA(x, y, color.NRGBA{
				R: div255(255*ia + uint32(p.R)*a),
				G: div255(255*ia + uint32(p.G)*a),
				B: div255(255*ia + uint32(p.B)*a),
				A: 255,
			})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
