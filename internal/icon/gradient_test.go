package icon

import (
	"image/color"
	"testing"
)

func TestLinearGradientEndpoints(t *testing.T) {
	top := color.NRGBA{R: 58, G: 123, B: 213, A: 255}
	bottom := color.NRGBA{R: 88, G: 86, B: 214, A: 255}
	img := linearGradient(100, top, bottom)

	if got := img.NRGBAAt(50, 0); got != top {
		t.Errorf("first row = %v, want %v", got, top)
	}
	// The last row sits at ratio 99/100, one truncated step short of the
	// bottom color.
	want := color.NRGBA{R: 87, G: 86, B: 213, A: 255}
	if got := img.NRGBAAt(50, 99); got != want {
		t.Errorf("last row = %v, want %v", got, want)
	}
	mid := color.NRGBA{R: 73, G: 104, B: 213, A: 255}
	if got := img.NRGBAAt(50, 50); got != mid {
		t.Errorf("middle row = %v, want %v", got, mid)
	}
}

func TestLinearGradientRowsUniform(t *testing.T) {
	img := linearGradient(64, color.NRGBA{R: 58, G: 123, B: 213, A: 255}, color.NRGBA{R: 88, G: 86, B: 214, A: 255})
	for _, y := range []int{0, 17, 40, 63} {
		first := img.NRGBAAt(0, y)
		for x := 1; x < 64; x++ {
			if got := img.NRGBAAt(x, y); got != first {
				t.Fatalf("row %d pixel %d = %v, want %v", y, x, got, first)
			}
		}
	}
}

func TestLinearGradientMonotonic(t *testing.T) {
	img := linearGradient(128, color.NRGBA{R: 58, G: 123, B: 213, A: 255}, color.NRGBA{R: 88, G: 86, B: 214, A: 255})
	for y := 1; y < 128; y++ {
		prev, cur := img.NRGBAAt(0, y-1), img.NRGBAAt(0, y)
		if cur.R < prev.R {
			t.Fatalf("row %d: R %d below previous %d", y, cur.R, prev.R)
		}
		if cur.G > prev.G {
			t.Fatalf("row %d: G %d above previous %d", y, cur.G, prev.G)
		}
		if cur.B < prev.B {
			t.Fatalf("row %d: B %d below previous %d", y, cur.B, prev.B)
		}
	}
}

func TestRadialGradientCenterAndCorner(t *testing.T) {
	center := color.NRGBA{R: 147, G: 112, B: 219, A: 255}
	edge := color.NRGBA{R: 75, G: 0, B: 130, A: 255}
	img := radialGradient(100, center, edge)

	if got := img.NRGBAAt(50, 50); got != center {
		t.Errorf("center pixel = %v, want %v", got, center)
	}
	// With the center at size/2, (0,0) is the farthest pixel; its ratio
	// clamps to 1 and carries the edge color exactly.
	if got := img.NRGBAAt(0, 0); got != edge {
		t.Errorf("corner (0,0) = %v, want %v", got, edge)
	}
	// The other corners sit a pixel closer and land a few steps short of
	// the edge color.
	for _, p := range [][2]int{{99, 0}, {0, 99}, {99, 99}} {
		got := img.NRGBAAt(p[0], p[1])
		if chanDiff(got.R, edge.R) > 3 || chanDiff(got.G, edge.G) > 3 || chanDiff(got.B, edge.B) > 3 {
			t.Errorf("corner (%d,%d) = %v, want within 3 of %v", p[0], p[1], got, edge)
		}
	}
}

func chanDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestRadialGradientMonotonicFromCenter(t *testing.T) {
	img := radialGradient(100, color.NRGBA{R: 147, G: 112, B: 219, A: 255}, color.NRGBA{R: 75, G: 0, B: 130, A: 255})
	for x := 51; x < 100; x++ {
		prev, cur := img.NRGBAAt(x-1, 50), img.NRGBAAt(x, 50)
		if cur.R > prev.R || cur.G > prev.G || cur.B > prev.B {
			t.Fatalf("pixel (%d,50) = %v brighter than (%d,50) = %v", x, cur, x-1, prev)
		}
	}
}
