package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/MS8080/iconforge/internal/icon"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]

	var configPath string
	var outDir string
	size := 0
	quiet := false

	// Pull global options out of the argument list; what remains is the
	// command and its arguments.
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
		case "--out", "-o":
			if i+1 < len(args) {
				outDir = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --out requires a directory\n")
				os.Exit(1)
			}
		case "--size", "-s":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n <= 0 {
					fmt.Fprintf(os.Stderr, "Error: --size requires a positive pixel count\n")
					os.Exit(1)
				}
				size = n
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --size requires a pixel count\n")
				os.Exit(1)
			}
		case "--quiet", "-q":
			quiet = true
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) < 1 {
		printUsage()
		os.Exit(1)
	}

	opts := cmdOpts{ConfigPath: configPath, OutDir: outDir, Size: size, Quiet: quiet}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()

	case "version", "-V", "--version":
		printVersion()

	case "list":
		listCmd(configPath)

	case "render":
		renderCmd(filtered[1:], opts)

	case "ico":
		icoCmd(filtered[1:], opts)

	case "svg":
		svgCmd(filtered[1:], opts)

	case "banner":
		bannerCmd(filtered[1:], opts)

	case "contents":
		contentsCmd(filtered[1:], opts)

	case "history":
		historyCmd(filtered[1:])

	case "serve":
		serveCmd(filtered[1:], configPath)

	default:
		// A bare style name renders it: "iconforge patterns" is shorthand
		// for "iconforge render patterns".
		for _, name := range icon.Names() {
			if filtered[0] == name {
				renderCmd(filtered[:1], opts)
				return
			}
		}
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run \"iconforge help\" for usage.\n")
		os.Exit(1)
	}
}

// fatal prints an error to stderr and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("iconforge %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Println(`iconforge - procedural app icon generator

Usage:
  iconforge [options] <command>

Options:
  --config, -c <path>   Path to iconforge-config.json
  --out, -o <dir>       Output root directory (overrides config)
  --size, -s <px>       Render a single pixel size
  --quiet, -q           Suppress per-file progress output

Commands:
  render [style]          Render the PNG icon set (all styles if omitted)
  list                    List styles with their sizes and output files
  ico [style]             Write a multi-size Windows .ico bundle
  svg [style]             Write an SVG vector master
  banner [style]          Render the 1200x630 marketing banner
  contents                Write the AppIcon.appiconset Contents.json manifest
  history [n]             Show the n most recent renders (default 10)
  history summary [days]  Aggregated render totals (default last 7 days)
  history runs [days]     List render runs (default last 7 days)
  history clean <days>    Drop history entries older than <days> days
  history clear           Delete all render history
  history watch           Live-updating render summary (press x to exit)
  history export [days]   Dump render history as JSON to stdout
  serve                   Open the gallery dashboard [--port <n>] [--no-open]
  version                 Print version information
  help                    Show this help

Config resolution order:
  1. --config <path>                        (explicit)
  2. iconforge-config.json next to binary   (portable)
  3. ~/.config/iconforge/iconforge-config.json

Examples:
  iconforge render                     # all styles, all sizes
  iconforge render patterns            # one style
  iconforge -s 512 render infinity     # one style at a single size
  iconforge -o ./build render          # write under ./build
  iconforge ico patterns               # patterns.ico with 256/48/32/16
  iconforge history summary 30         # last 30 days of renders
  iconforge serve                      # gallery on 127.0.0.1:8418`)
}
