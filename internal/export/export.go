// Package export turns rendered icon images into files: PNG sets, Windows
// ICO bundles, and scaled thumbnails.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"

	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/paths"
	"github.com/MS8080/iconforge/internal/tmpl"
)

// ICOSizes are the image sizes embedded in a Windows icon bundle, largest
// first.
var ICOSizes = []int{256, 48, 32, 16}

// FileFor returns the output file name for a style at a pixel size.
func FileFor(s icon.Style, size int) string {
	return tmpl.Expand(s.FileName, tmpl.Vars{Style: s.Name, Size: size})
}

// Result describes one written icon file.
type Result struct {
	Style    string
	Size     int
	Path     string
	Bytes    int
	Duration time.Duration
}

// Progress receives each result as soon as its file is written.
type Progress func(Result)

// Run groups the files written by one RenderAll call.
type Run struct {
	ID      string
	Style   string
	Results []Result
}

// RenderAll renders the style at every configured size and writes the
// PNGs into dir. Files are written atomically in the style's size order;
// on error the files already written stay in place.
func RenderAll(s icon.Style, dir string, progress Progress) (Run, error) {
	run := Run{ID: uuid.NewString(), Style: s.Name}
	for _, size := range s.Sizes {
		start := time.Now()
		img := s.Render(size, s.Palette)
		data, err := EncodePNG(img)
		if err != nil {
			return run, err
		}
		path := filepath.Join(dir, FileFor(s, size))
		if err := paths.AtomicWrite(path, data); err != nil {
			return run, fmt.Errorf("export: writing %s: %w", path, err)
		}
		res := Result{
			Style:    s.Name,
			Size:     size,
			Path:     path,
			Bytes:    len(data),
			Duration: time.Since(start),
		}
		run.Results = append(run.Results, res)
		if progress != nil {
			progress(res)
		}
	}
	return run, nil
}

// EncodePNG encodes img to PNG bytes. Fully opaque images come out as
// plain RGB, images with transparency keep their alpha channel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img and writes it to path atomically.
func WritePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := paths.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

// WriteICO renders the style at each given size and writes a multi-image
// Windows icon to path. Every size renders natively rather than scaling
// down a large master, matching how the PNG exports work.
func WriteICO(path string, s icon.Style, sizes []int) error {
	images := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		images = append(images, s.Render(size, s.Palette))
	}
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return fmt.Errorf("export: encoding %s: %w", filepath.Base(path), err)
	}
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

// Thumbnail renders the style oversized and scales it down with
// Catmull-Rom resampling. Fine pattern detail survives better than in a
// native render at thumbnail size.
func Thumbnail(s icon.Style, renderSize, thumbSize int) *image.NRGBA {
	src := s.Render(renderSize, s.Palette)
	dst := image.NewNRGBA(image.Rect(0, 0, thumbSize, thumbSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
