// Package icon renders the application icon designs.
//
// Every design draws fully procedurally: gradients, circle motifs, and
// curve strokes are computed per pixel with no font or asset inputs, so a
// given style and size always produce the same image.
package icon

import (
	"image"
	"image/color"
	"sort"
)

// Palette holds the colors a style renders with.
type Palette struct {
	GradientStart color.NRGBA // gradient top (patterns) or center (infinity)
	GradientEnd   color.NRGBA // gradient bottom (patterns) or edge (infinity)
	Pattern       color.NRGBA // overlay shapes, used by the patterns style
}

// Style describes a named icon design: its default palette, the pixel
// sizes it exports at, and where the files go.
type Style struct {
	Name        string
	Description string
	Palette     Palette
	Sizes       []int  // export sizes in the order they are written
	FileName    string // file name template, {size} expands to the pixel size
	Dir         string // default output directory, relative to the working dir
	Opaque      bool   // flattened onto white, exported without alpha

	draw func(size int, p Palette) *image.NRGBA
}

// Render draws the style at the given pixel size using palette p.
func (s Style) Render(size int, p Palette) *image.NRGBA {
	return s.draw(size, p)
}

// Rounded-corner mask radius as a fraction of the canvas size, shared by
// all styles.
const cornerRadiusRatio = 0.2237

// CornerRadius returns the rounded-corner radius in pixels for a canvas
// size.
func CornerRadius(size int) int {
	return int(float64(size) * cornerRadiusRatio)
}

// Styles is the registry of all icon designs.
var Styles = map[string]Style{
	"patterns": {
		Name:        "patterns",
		Description: "Connected circle motif on a blue vertical gradient",
		Palette: Palette{
			GradientStart: color.NRGBA{R: 58, G: 123, B: 213, A: 255},
			GradientEnd:   color.NRGBA{R: 88, G: 86, B: 214, A: 255},
			Pattern:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		},
		Sizes:    []int{1024, 180, 167, 152, 120, 87, 80, 76, 60, 58, 40, 29, 20},
		FileName: "patterns-{size}.png",
		Dir:      "Resources",
		draw:     renderPatterns,
	},
	"infinity": {
		Name:        "infinity",
		Description: "Rainbow infinity curve on a purple radial gradient",
		Palette: Palette{
			GradientStart: color.NRGBA{R: 147, G: 112, B: 219, A: 255},
			GradientEnd:   color.NRGBA{R: 75, G: 0, B: 130, A: 255},
		},
		Sizes:    []int{1024},
		FileName: "asd-icon-{size}.png",
		Dir:      "BehaviorTracker/Assets.xcassets/AppIcon.appiconset",
		Opaque:   true,
		draw:     renderInfinity,
	},
}

// Names returns the registered style names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(Styles))
	for name := range Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Draw renders the patterns style at the given size with its default
// palette, for callers that just need an application icon image.
func Draw(size int) *image.NRGBA {
	s := Styles["patterns"]
	return s.Render(size, s.Palette)
}
