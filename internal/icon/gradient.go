package icon

import (
	"image"
	"image/color"
	"math"

	"github.com/MS8080/iconforge/internal/palette"
	"github.com/MS8080/iconforge/internal/raster"
)

// linearGradient fills a square canvas with a vertical top→bottom blend.
// Each scan line's channel value is top + (bottom-top)*y/size, truncated,
// so the ramp is monotonic and never leaves the endpoint bounds.
func linearGradient(size int, top, bottom color.NRGBA) *image.NRGBA {
	img := raster.New(size)
	for y := 0; y < size; y++ {
		row := color.NRGBA{
			R: gradChan(top.R, bottom.R, y, size),
			G: gradChan(top.G, bottom.G, y, size),
			B: gradChan(top.B, bottom.B, y, size),
			A: 255,
		}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, row)
		}
	}
	return img
}

func gradChan(a, b uint8, y, size int) uint8 {
	return uint8(float64(a) + float64(int(b)-int(a))*float64(y)/float64(size))
}

// radialGradient fills a square canvas with a center→edge blend. The blend
// ratio is distance/maxRadius where maxRadius reaches the canvas corner.
//
// Colors are precomputed into a radius-indexed table and looked up by
// rounded pixel distance instead of lerping every pixel, which makes the
// 1024px case cheap.
func radialGradient(size int, center, edge color.NRGBA) *image.NRGBA {
	img := raster.New(size)
	cx, cy := size/2, size/2
	maxRadius := math.Sqrt(float64(cx*cx + cy*cy))

	lut := make([]color.NRGBA, int(math.Ceil(maxRadius))+1)
	for i := range lut {
		ratio := float64(i) / maxRadius
		if ratio > 1 {
			ratio = 1
		}
		lut[i] = palette.Mix(center, edge, ratio)
	}

	for y := 0; y < size; y++ {
		dy := float64(y - cy)
		for x := 0; x < size; x++ {
			dx := float64(x - cx)
			idx := int(math.Round(math.Sqrt(dx*dx + dy*dy)))
			if idx >= len(lut) {
				idx = len(lut) - 1
			}
			img.SetNRGBA(x, y, lut[idx])
		}
	}
	return img
}
