// mkicon renders a single patterns icon PNG, handy for one-off exports
// outside the managed output directories.
// Usage: go run ./cmd/mkicon <output.png> [size]
package main

import (
	"image/png"
	"os"
	"strconv"

	"github.com/MS8080/iconforge/internal/icon"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(1)
	}
	size := 256
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			size = n
		}
	}
	img := icon.Draw(size)
	f, err := os.Create(os.Args[1])
	if err != nil {
		os.Exit(1)
	}
	defer f.Close()
	png.Encode(f, img)
}
