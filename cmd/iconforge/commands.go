package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/MS8080/iconforge/internal/appiconset"
	"github.com/MS8080/iconforge/internal/banner"
	"github.com/MS8080/iconforge/internal/config"
	"github.com/MS8080/iconforge/internal/dashboard"
	"github.com/MS8080/iconforge/internal/export"
	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/renderlog"
	"github.com/MS8080/iconforge/internal/svgicon"
)

// cmdOpts carries the global CLI options into command handlers.
type cmdOpts struct {
	ConfigPath string
	OutDir     string
	Size       int
	Quiet      bool
}

// loadConfig loads the configuration and applies the --out override.
func loadConfig(opts cmdOpts) config.Config {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fatal("%v", err)
	}
	if opts.OutDir != "" {
		cfg.Options.OutDir = opts.OutDir
	}
	return cfg
}

// resolveStyles maps style arguments to resolved styles. With no
// arguments every registered style is returned, in name order.
func resolveStyles(cfg config.Config, args []string) []icon.Style {
	names := args
	if len(names) == 0 {
		names = icon.Names()
	}
	styles := make([]icon.Style, 0, len(names))
	for _, name := range names {
		s, err := config.Resolve(cfg, name)
		if err != nil {
			fatal("%v\nKnown styles: %s", err, strings.Join(icon.Names(), ", "))
		}
		styles = append(styles, s)
	}
	return styles
}

// applySizeOverride narrows a style to a single export size.
func applySizeOverride(s icon.Style, px int) icon.Style {
	if px > 0 {
		s.Sizes = []int{px}
	}
	return s
}

// sizeList renders pixel sizes as "1024, 512, 256".
func sizeList(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// openStore opens the render history store when logging is enabled.
// Failures disable history for this invocation rather than aborting it.
func openStore(cfg config.Config) *renderlog.SQLiteStore {
	if !cfg.Options.Log {
		return nil
	}
	store, err := renderlog.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: render history disabled: %v\n", err)
		return nil
	}
	return store
}

func renderCmd(args []string, opts cmdOpts) {
	cfg := loadConfig(opts)
	styles := resolveStyles(cfg, args)

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	// Per-file lines go to interactive terminals only; piped output and
	// --quiet get just the per-style summary.
	showFiles := !opts.Quiet && term.IsTerminal(int(os.Stdout.Fd()))

	for _, s := range styles {
		s = applySizeOverride(s, opts.Size)
		dir := config.OutDirFor(cfg, s)

		var progress export.Progress
		if showFiles {
			progress = func(r export.Result) {
				fmt.Printf("  %4d px  %9s  %s\n", r.Size, fmtBytes(int64(r.Bytes)), r.Path)
			}
		}

		run, err := export.RenderAll(s, dir, progress)
		if err != nil {
			fatal("%v", err)
		}
		if store != nil {
			if err := store.LogRun(run); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: record render history: %v\n", err)
			}
		}

		if !opts.Quiet {
			total := 0
			for _, r := range run.Results {
				total += r.Bytes
			}
			fmt.Printf("%s: %d file(s), %s in %s\n", s.Name, len(run.Results), fmtBytes(int64(total)), dir)
		}
	}
}

func listCmd(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}

	for _, name := range icon.Names() {
		s, err := config.Resolve(cfg, name)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("%s: %s\n", s.Name, s.Description)
		fmt.Printf("  %-7s %s\n", "sizes", sizeList(s.Sizes))
		pattern := strings.ReplaceAll(s.FileName, "{size}", "<size>")
		fmt.Printf("  %-7s %s\n", "files", filepath.Join(config.OutDirFor(cfg, s), pattern))
	}
}

func icoCmd(args []string, opts cmdOpts) {
	cfg := loadConfig(opts)
	styles := resolveStyles(cfg, args)

	sizes := export.ICOSizes
	if opts.Size > 0 {
		sizes = []int{opts.Size}
	}

	for _, s := range styles {
		path := filepath.Join(config.OutDirFor(cfg, s), s.Name+".ico")
		if err := export.WriteICO(path, s, sizes); err != nil {
			fatal("%v", err)
		}
		if !opts.Quiet {
			fmt.Printf("Wrote %s (%s px)\n", path, sizeList(sizes))
		}
	}
}

func svgCmd(args []string, opts cmdOpts) {
	cfg := loadConfig(opts)
	styles := resolveStyles(cfg, args)

	size := 1024
	if opts.Size > 0 {
		size = opts.Size
	}

	for _, s := range styles {
		path := filepath.Join(config.OutDirFor(cfg, s), s.Name+".svg")
		if err := svgicon.WriteFile(path, s, size); err != nil {
			fatal("%v", err)
		}
		if !opts.Quiet {
			fmt.Printf("Wrote %s\n", path)
		}
	}
}

func bannerCmd(args []string, opts cmdOpts) {
	var fontPath string
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--font":
			if i+1 < len(args) {
				fontPath = args[i+1]
				i++
			} else {
				fatal("--font requires a file path")
			}
		default:
			rest = append(rest, args[i])
		}
	}

	cfg := loadConfig(opts)
	styles := resolveStyles(cfg, rest)

	for _, s := range styles {
		path := filepath.Join(config.OutDirFor(cfg, s), s.Name+"-banner.png")
		if err := banner.WriteFile(path, s, banner.Options{FontPath: fontPath}); err != nil {
			fatal("%v", err)
		}
		if !opts.Quiet {
			fmt.Printf("Wrote %s (%dx%d)\n", path, banner.Width, banner.Height)
		}
	}
}

func contentsCmd(args []string, opts cmdOpts) {
	cfg := loadConfig(opts)
	styles := resolveStyles(cfg, args)

	for _, s := range styles {
		dir := config.OutDirFor(cfg, s)
		fileName := func(px int) string { return export.FileFor(s, px) }
		if err := appiconset.Write(dir, s.Sizes, fileName); err != nil {
			fatal("%v", err)
		}
		if !opts.Quiet {
			fmt.Printf("Wrote %s (%d images)\n", filepath.Join(dir, "Contents.json"), len(s.Sizes))
		}
	}
}

func serveCmd(args []string, configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}

	port := cfg.Options.Port
	open := true
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--port", "-p":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n <= 0 || n > 65535 {
					fatal("--port requires a port number")
				}
				port = n
				i++
			} else {
				fatal("--port requires a port number")
			}
		case "--no-open":
			open = false
		default:
			fatal("unknown serve option %q", args[i])
		}
	}

	store, err := renderlog.Open()
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	if err := dashboard.Serve(cfg, store, port, open); err != nil {
		fatal("%v", err)
	}
}
