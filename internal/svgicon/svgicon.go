// Package svgicon writes scalable vector renditions of the icon styles.
// The vector output reuses the raster geometry. Translucent overlays
// stack in SVG instead of replacing each other like the raster overlays
// do, so the glow halo is approximated with a radial gradient.
package svgicon

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/palette"
	"github.com/MS8080/iconforge/internal/paths"
)

// Write renders a vector rendition of the style at the given viewport
// size to w.
func Write(w io.Writer, s icon.Style, size int) error {
	switch s.Name {
	case "patterns":
		writePatterns(w, s, size)
	case "infinity":
		writeInfinity(w, s, size)
	default:
		return fmt.Errorf("svgicon: no vector rendition for style %q", s.Name)
	}
	return nil
}

// WriteFile renders the style's vector rendition into path atomically.
func WriteFile(path string, s icon.Style, size int) error {
	var buf bytes.Buffer
	if err := Write(&buf, s, size); err != nil {
		return err
	}
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("svgicon: writing %s: %w", path, err)
	}
	return nil
}

func writePatterns(w io.Writer, s icon.Style, size int) {
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Def()
	canvas.LinearGradient("bg", 0, 0, 0, 100, []svg.Offcolor{
		{Offset: 0, Color: palette.Hex(s.Palette.GradientStart), Opacity: 1},
		{Offset: 100, Color: palette.Hex(s.Palette.GradientEnd), Opacity: 1},
	})
	// The raster glow is faintest at the center and brightest at the rim.
	canvas.RadialGradient("glow", 50, 50, 50, 50, 50, []svg.Offcolor{
		{Offset: 0, Color: "#ffffff", Opacity: 1.0 / 255},
		{Offset: 100, Color: "#ffffff", Opacity: 30.0 / 255},
	})
	canvas.DefEnd()

	radius := icon.CornerRadius(size)
	canvas.ClipPath(`id="corners"`)
	canvas.Roundrect(0, 0, size, size, radius, radius)
	canvas.ClipEnd()

	canvas.Group(`clip-path="url(#corners)"`)
	canvas.Rect(0, 0, size, size, "fill:url(#bg)")

	hex := palette.Hex(s.Palette.Pattern)
	for _, l := range icon.PatternLines(size) {
		canvas.Line(int(l.X1), int(l.Y1), int(l.X2), int(l.Y2),
			fmt.Sprintf("stroke:%s;stroke-opacity:%.4f;stroke-width:%d", hex, float64(l.Alpha)/255, l.Width))
	}
	for _, c := range icon.PatternCircles(size) {
		canvas.Circle(int(c.X), int(c.Y), int(c.R),
			fmt.Sprintf("fill:%s;fill-opacity:%.4f", hex, float64(c.Alpha)/255))
	}
	canvas.Circle(size/2, size/2, size/2, "fill:url(#glow)")
	canvas.Gend()
	canvas.End()
}

func writeInfinity(w io.Writer, s icon.Style, size int) {
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Def()
	// A 71% radius reaches the canvas corners, like the raster gradient.
	canvas.RadialGradient("bg", 50, 50, 71, 50, 50, []svg.Offcolor{
		{Offset: 0, Color: palette.Hex(s.Palette.GradientStart), Opacity: 1},
		{Offset: 100, Color: palette.Hex(s.Palette.GradientEnd), Opacity: 1},
	})
	canvas.DefEnd()

	radius := icon.CornerRadius(size)
	canvas.ClipPath(`id="corners"`)
	canvas.Roundrect(0, 0, size, size, radius, radius)
	canvas.ClipEnd()

	if s.Opaque {
		canvas.Rect(0, 0, size, size, "fill:#ffffff")
	}
	canvas.Group(`clip-path="url(#corners)"`)
	canvas.Rect(0, 0, size, size, "fill:url(#bg)")

	pts := icon.InfinityCurve(size)
	canvas.Gstyle(fmt.Sprintf("stroke-width:%d;stroke-linecap:round;fill:none", icon.InfinityStrokeWidth(size)))
	for i := 0; i < len(pts)-1; i++ {
		c := palette.Rainbow(float64(i) / float64(len(pts)))
		canvas.Line(int(pts[i].X), int(pts[i].Y), int(pts[i+1].X), int(pts[i+1].Y),
			fmt.Sprintf("stroke:%s", palette.Hex(c)))
	}
	canvas.Gend()
	canvas.Gend()
	canvas.End()
}
