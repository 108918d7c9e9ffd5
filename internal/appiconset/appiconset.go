// Package appiconset writes the Contents.json manifest that turns a
// directory of icon PNGs into an Xcode AppIcon.appiconset.
package appiconset

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/MS8080/iconforge/internal/paths"
)

// Slot describes where a pixel size lands in the asset catalog: the device
// idiom, the display scale, and the point size Xcode expects.
type Slot struct {
	Pixels int
	Idiom  string
	Scale  string
	Points string
}

// Slots lists the catalog slot for every exported pixel size, App Store
// entry first. Point size times scale always equals the pixel size.
var Slots = []Slot{
	{1024, "ios-marketing", "1x", "1024x1024"},
	{180, "iphone", "3x", "60x60"},
	{167, "ipad", "2x", "83.5x83.5"},
	{152, "ipad", "2x", "76x76"},
	{120, "iphone", "2x", "60x60"},
	{87, "iphone", "3x", "29x29"},
	{80, "ipad", "2x", "40x40"},
	{76, "ipad", "1x", "76x76"},
	{60, "iphone", "3x", "20x20"},
	{58, "iphone", "2x", "29x29"},
	{40, "ipad", "1x", "40x40"},
	{29, "ipad", "1x", "29x29"},
	{20, "ipad", "1x", "20x20"},
}

// SlotFor returns the catalog slot for a pixel size.
func SlotFor(pixels int) (Slot, bool) {
	for _, s := range Slots {
		if s.Pixels == pixels {
			return s, true
		}
	}
	return Slot{}, false
}

// Image is one entry of the manifest's images array.
type Image struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

// Info identifies the manifest generator to Xcode.
type Info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

type manifest struct {
	Images []Image `json:"images"`
	Info   Info    `json:"info"`
}

// Contents renders a Contents.json body for the given pixel sizes.
// fileName maps a pixel size to the PNG name referenced by the entry.
// Sizes without a known slot are rejected.
func Contents(sizes []int, fileName func(pixels int) string) ([]byte, error) {
	m := manifest{
		Images: make([]Image, 0, len(sizes)),
		Info:   Info{Author: "iconforge", Version: 1},
	}
	for _, px := range sizes {
		slot, ok := SlotFor(px)
		if !ok {
			return nil, fmt.Errorf("appiconset: no catalog slot for %dpx", px)
		}
		m.Images = append(m.Images, Image{
			Filename: fileName(px),
			Idiom:    slot.Idiom,
			Scale:    slot.Scale,
			Size:     slot.Points,
		})
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("appiconset: encoding manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Write renders Contents.json into dir.
func Write(dir string, sizes []int, fileName func(pixels int) string) error {
	data, err := Contents(sizes, fileName)
	if err != nil {
		return err
	}
	return paths.AtomicWrite(filepath.Join(dir, "Contents.json"), data)
}
