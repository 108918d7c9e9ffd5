// Package banner renders social-sharing images for the icon styles: the
// style's gradient across a 1200x630 canvas with the icon and an optional
// caption.
package banner

import (
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"

	"github.com/MS8080/iconforge/internal/export"
	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/tmpl"
)

// Open Graph preview dimensions.
const (
	Width  = 1200
	Height = 630
)

const iconSize = 400

// Options configures the banner caption. Text renders only when a font
// file is given; the icon and background never depend on one.
type Options struct {
	Title    string // defaults to the title-cased style name
	Subtitle string // defaults to the style description
	FontPath string // TTF or OTF file, empty skips the caption
}

// Render draws the banner for a style.
func Render(s icon.Style, opts Options) image.Image {
	dc := gg.NewContext(Width, Height)

	grad := gg.NewLinearGradient(0, 0, 0, Height)
	grad.AddColorStop(0, s.Palette.GradientStart)
	grad.AddColorStop(1, s.Palette.GradientEnd)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	dc.DrawImage(s.Render(iconSize, s.Palette), 120, (Height-iconSize)/2)

	if opts.FontPath != "" {
		drawCaption(dc, s, opts)
	}
	return dc.Image()
}

func drawCaption(dc *gg.Context, s icon.Style, opts Options) {
	title := opts.Title
	if title == "" {
		title = tmpl.TitleCase(s.Name)
	}
	subtitle := opts.Subtitle
	if subtitle == "" {
		subtitle = s.Description
	}

	if err := dc.LoadFontFace(opts.FontPath, 96); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load font %s: %v\n", opts.FontPath, err)
		return
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 620, 300)

	if err := dc.LoadFontFace(opts.FontPath, 40); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load font %s: %v\n", opts.FontPath, err)
		return
	}
	dc.DrawStringWrapped(subtitle, 620, 340, 0, 0, 500, 1.5, gg.AlignLeft)
}

// WriteFile renders the banner and writes it to path atomically.
func WriteFile(path string, s icon.Style, opts Options) error {
	return export.WritePNG(path, Render(s, opts))
}
