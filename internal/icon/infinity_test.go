package icon

import (
	"image/color"
	"math"
	"testing"
)

func TestLemniscateSamples(t *testing.T) {
	pts := Lemniscate(512, 512, 665, 307, 400)
	if len(pts) != 400 {
		t.Fatalf("len = %d, want 400", len(pts))
	}
	// t=0 sits on the right tip of the figure eight.
	if pts[0].X != 512+665.0/2 || pts[0].Y != 512 {
		t.Errorf("first sample = %v, want right tip", pts[0])
	}
}

func TestLemniscateStaysInBounds(t *testing.T) {
	pts := Lemniscate(512, 512, 665, 307, 400)
	for i, p := range pts {
		if math.Abs(p.X-512) > 665.0/2+1e-9 {
			t.Fatalf("sample %d X = %v outside width bound", i, p.X)
		}
		if math.Abs(p.Y-512) > 307.0/2+1e-9 {
			t.Fatalf("sample %d Y = %v outside height bound", i, p.Y)
		}
	}
}

func TestLemniscateCloses(t *testing.T) {
	pts := Lemniscate(512, 512, 665, 307, 400)
	first, last := pts[0], pts[len(pts)-1]
	dx, dy := first.X-last.X, first.Y-last.Y
	gap := math.Hypot(dx, dy)
	step := math.Hypot(pts[1].X-first.X, pts[1].Y-first.Y)
	if gap > 2*step {
		t.Errorf("curve gap %v exceeds twice the sample step %v", gap, step)
	}
}

func TestRenderInfinityOpaque(t *testing.T) {
	s := Styles["infinity"]
	img := s.Render(64, s.Palette)
	if !img.Opaque() {
		t.Fatal("flattened image reports non-opaque")
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		if got := img.NRGBAAt(p[0], p[1]); got != white {
			t.Errorf("corner (%d,%d) = %v, want white", p[0], p[1], got)
		}
	}
}

func TestRenderInfinityStrokeCoversCenter(t *testing.T) {
	s := Styles["infinity"]
	img := s.Render(64, s.Palette)
	// The figure eight crosses itself at the canvas center, so the pixel
	// there must carry a stroke color, not the gradient center color.
	if got := img.NRGBAAt(32, 32); got == (color.NRGBA{R: 147, G: 112, B: 219, A: 255}) {
		t.Error("center pixel still shows the gradient, stroke missing")
	}
}

func TestDrawStrokeZeroWidth(t *testing.T) {
	img := radialGradient(32, color.NRGBA{R: 10, A: 255}, color.NRGBA{R: 200, A: 255})
	snapshot := make([]uint8, len(img.Pix))
	copy(snapshot, img.Pix)
	drawStroke(img, Lemniscate(16, 16, 20, 10, 50), 0)
	for i := range img.Pix {
		if img.Pix[i] != snapshot[i] {
			t.Fatal("zero width stroke modified pixels")
		}
	}
}
