package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/MS8080/iconforge/internal/renderlog"
)

func historyCmd(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "summary":
			historySummary(args[1:])
			return
		case "runs":
			historyRuns(args[1:])
			return
		case "clear":
			historyClear()
			return
		case "clean":
			historyClean(args[1:])
			return
		case "export":
			historyExport(args[1:])
			return
		case "watch":
			historyWatch()
			return
		}
	}
	historyList(args)
}

// mustOpenStore opens the render history database or exits.
func mustOpenStore() *renderlog.SQLiteStore {
	store, err := renderlog.Open()
	if err != nil {
		fatal("%v", err)
	}
	return store
}

func historyList(args []string) {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("count must be a positive integer")
		}
		count = n
	}

	store := mustOpenStore()
	defer store.Close()

	entries, err := store.Entries(0)
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No renders recorded yet.")
		return
	}
	if len(entries) > count {
		entries = entries[len(entries)-count:]
	}
	for _, e := range entries {
		fmt.Printf("%s  %-9s %5d px  %9s  %s\n",
			e.Time.In(time.Local).Format("2006-01-02 15:04:05"),
			e.Style, e.Size, fmtBytes(int64(e.Bytes)), e.File)
	}
}

func historySummary(args []string) {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fatal("days must be a positive integer or \"all\"")
			}
			days = n
		}
	}

	store := mustOpenStore()
	defer store.Close()

	entries, err := store.Entries(days)
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		if days == 0 {
			fmt.Println("No renders recorded yet.")
		} else {
			fmt.Println("No renders in the last", days, "days.")
		}
		return
	}

	groups := renderlog.GroupByDay(entries, time.Local)
	var out strings.Builder
	renderSummaryTable(&out, groups, nil)
	fmt.Print(out.String())
}

func historyRuns(args []string) {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fatal("days must be a positive integer or \"all\"")
			}
			days = n
		}
	}

	store := mustOpenStore()
	defer store.Close()

	runs, err := store.Runs(days)
	if err != nil {
		fatal("%v", err)
	}
	if len(runs) == 0 {
		if days == 0 {
			fmt.Println("No render runs recorded yet.")
		} else {
			fmt.Println("No render runs in the last", days, "days.")
		}
		return
	}

	for _, r := range runs {
		fmt.Printf("%s  %-9s %3d file(s)  %9s  %s\n",
			r.Start.In(time.Local).Format("2006-01-02 15:04:05"),
			r.Style, r.Files, fmtBytes(r.Bytes), r.Duration.Round(time.Millisecond))
	}
}

// --- Table layout constants ---

const (
	colStyle     = 24 // width of the style name column
	colSizeLabel = 22 // width of the size label column (indented by 2)
	colNumber    = 7  // width of numeric columns (Files, New)
	colBytes     = 10 // width of the bytes column
	colGap       = 2  // gap between columns
	colPct       = 5  // width of the percentage column (fits " 100%")
	// Base separator width covers the fixed columns: style, Files, %, and Bytes.
	sepBase       = colStyle + 1 + colNumber + colGap + colPct + colGap + colBytes
	sepPerCol     = colGap + colNumber
	watchInterval = 2 * time.Second
)

// --- ANSI color helpers (disabled when NO_COLOR env var is set) ---

var noColor = os.Getenv("NO_COLOR") != ""

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func bold(s string) string  { return ansi("\033[1m", s) }
func dim(s string) string   { return ansi("\033[2m", s) }
func cyan(s string) string  { return ansi("\033[36m", s) }
func green(s string) string { return ansi("\033[32m", s) }

// fmtNum formats an integer with dot as thousands separator (e.g. 1234 → "1.234").
func fmtNum(n int) string {
	neg := ""
	if n < 0 {
		neg = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return neg + s
	}
	var buf strings.Builder
	r := len(s) % 3
	if r > 0 {
		buf.WriteString(s[:r])
	}
	for i := r; i < len(s); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s[i : i+3])
	}
	return neg + buf.String()
}

// fmtPct formats n as a percentage of total (e.g. "68%"), or "" if total is 0.
func fmtPct(n, total int) string {
	if total == 0 {
		return ""
	}
	return strconv.Itoa(n*100/total) + "%"
}

// fmtBytes formats a byte count in human units (e.g. "3.4 KB").
func fmtBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// padL pads s to width with spaces on the left.
func padL(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// padR pads s to width with spaces on the right.
func padR(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// colorPadL applies a color function to s, then left-pads to width
// (accounting for invisible ANSI escape bytes).
func colorPadL(colorFn func(string) string, s string, width int) string {
	colored := colorFn(s)
	return padL(colored, width+(len(colored)-len(s)))
}

// --- Summary table types ---

type sizeKey struct {
	style string
	size  int
}

type counts struct {
	files int
	bytes int64
}

type tableData struct {
	perSize      map[sizeKey]*counts
	perStyle     map[string]*counts
	styleOrder   []string
	sizesByStyle map[string][]sizeKey
}

func baselineKey(style string, size int) string {
	return style + "/" + strconv.Itoa(size)
}

// aggregateGroups collects per-size and per-style counts from day groups.
func aggregateGroups(groups []renderlog.DayGroup) tableData {
	td := tableData{
		perSize:      map[sizeKey]*counts{},
		perStyle:     map[string]*counts{},
		sizesByStyle: map[string][]sizeKey{},
	}
	styleSeen := map[string]bool{}

	for _, dg := range groups {
		for _, e := range dg.Entries {
			sk := sizeKey{e.Style, e.Size}
			sc, ok := td.perSize[sk]
			if !ok {
				sc = &counts{}
				td.perSize[sk] = sc
			}
			sc.files++
			sc.bytes += int64(e.Bytes)

			pc, ok := td.perStyle[e.Style]
			if !ok {
				pc = &counts{}
				td.perStyle[e.Style] = pc
			}
			pc.files++
			pc.bytes += int64(e.Bytes)

			if !styleSeen[e.Style] {
				styleSeen[e.Style] = true
				td.styleOrder = append(td.styleOrder, e.Style)
			}
		}
	}
	sort.Strings(td.styleOrder)

	for sk := range td.perSize {
		td.sizesByStyle[sk.style] = append(td.sizesByStyle[sk.style], sk)
	}
	// Largest size first, matching export order.
	for _, sks := range td.sizesByStyle {
		sort.Slice(sks, func(i, j int) bool { return sks[i].size > sks[j].size })
	}

	return td
}

// renderTableHeader writes the date line, column header, and separator.
func renderTableHeader(w *strings.Builder, groups []renderlog.DayGroup, hasNew bool, sep string) {
	if len(groups) == 1 {
		dg := groups[0]
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s  (%s)", dg.Date.Format("2006-01-02"), dg.Date.Format("Monday"))))
	} else {
		// Groups arrive newest first.
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s — %s",
			groups[len(groups)-1].Date.Format("2006-01-02"),
			groups[0].Date.Format("2006-01-02"))))
	}

	hdr := fmt.Sprintf("  %-*s %*s  %*s  %*s", colStyle, "", colNumber, "Files", colPct, "%", colBytes, "Bytes")
	if hasNew {
		hdr += fmt.Sprintf("  %*s", colNumber, "New")
	}
	w.WriteString(bold(hdr) + "\n")
	w.WriteString(sep + "\n")
}

// renderTableRows writes style subtotal and per-size rows.
// Returns the total "new" count across all styles.
func renderTableRows(w *strings.Builder, td tableData, baseline map[string]int, hasNew bool, grandFiles int) int {
	totalNew := 0

	for si, style := range td.styleOrder {
		if si > 0 {
			w.WriteString("\n")
		}
		sks := td.sizesByStyle[style]
		pc := td.perStyle[style]

		// Style subtotal row.
		w.WriteString("  " + padR(cyan(style), colStyle+(len(cyan(style))-len(style))))
		w.WriteString(" " + padL(fmtNum(pc.files), colNumber))
		w.WriteString("  " + padL(fmtPct(pc.files, grandFiles), colPct))
		w.WriteString("  " + padL(fmtBytes(pc.bytes), colBytes))
		if hasNew {
			sNew := 0
			for _, sk := range sks {
				sNew += td.perSize[sk].files - baseline[baselineKey(sk.style, sk.size)]
			}
			if sNew > 0 {
				w.WriteString("  " + colorPadL(green, "+"+fmtNum(sNew), colNumber))
			} else {
				w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
			}
			totalNew += sNew
		}
		w.WriteString("\n")

		// Size rows (indented).
		for _, sk := range sks {
			c := td.perSize[sk]
			label := fmt.Sprintf("%d px", sk.size)
			fmt.Fprintf(w, "    %-*s %*s", colSizeLabel, label, colNumber, fmtNum(c.files))
			w.WriteString(fmt.Sprintf("  %*s", colPct, ""))
			w.WriteString("  " + padL(fmtBytes(c.bytes), colBytes))
			if hasNew {
				n := c.files - baseline[baselineKey(sk.style, sk.size)]
				if n > 0 {
					w.WriteString("  " + colorPadL(green, "+"+fmtNum(n), colNumber))
				} else {
					w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
				}
			}
			w.WriteString("\n")
		}
	}
	return totalNew
}

// renderTableTotal writes the separator and bold total row.
func renderTableTotal(w *strings.Builder, td tableData, hasNew bool, totalNew int, sep string) {
	w.WriteString(sep + "\n")

	grandFiles := 0
	var grandBytes int64
	for _, pc := range td.perStyle {
		grandFiles += pc.files
		grandBytes += pc.bytes
	}

	line := fmt.Sprintf("  %-*s %*s  %*s  %*s",
		colStyle, "Total", colNumber, fmtNum(grandFiles), colPct, "", colBytes, fmtBytes(grandBytes))
	w.WriteString(bold(line))
	if hasNew {
		if totalNew > 0 {
			w.WriteString("  " + colorPadL(green, "+"+fmtNum(totalNew), colNumber))
		} else {
			w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
		}
	}
	w.WriteString("\n")
}

// renderSummaryTable writes a formatted table of render stats.
// When baseline is non-nil (watch mode), a "New" column shows deltas.
func renderSummaryTable(w *strings.Builder, groups []renderlog.DayGroup, baseline map[string]int) {
	td := aggregateGroups(groups)
	hasNew := baseline != nil

	grandFiles := 0
	for _, pc := range td.perStyle {
		grandFiles += pc.files
	}

	sep := dim("  " + strings.Repeat("─", sepBase+sepPerCol*btoi(hasNew)))

	renderTableHeader(w, groups, hasNew, sep)
	totalNew := renderTableRows(w, td, baseline, hasNew, grandFiles)
	renderTableTotal(w, td, hasNew, totalNew, sep)
}

// renderHourlyTable writes a per-hour breakdown of today's renders.
// Columns: one per style + a Total column, rows: one per hour from the
// first render to the current hour.
func renderHourlyTable(w *strings.Builder, entries []renderlog.Entry) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type hs struct {
		hour  int
		style string
	}
	perCell := map[hs]int{}
	perHour := map[int]int{}
	styleSet := map[string]bool{}
	minHour, maxHour := 24, -1

	for _, e := range entries {
		local := e.Time.In(now.Location())
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
		if !day.Equal(today) {
			continue
		}
		h := local.Hour()
		perCell[hs{h, e.Style}]++
		perHour[h]++
		styleSet[e.Style] = true
		if h < minHour {
			minHour = h
		}
		if h > maxHour {
			maxHour = h
		}
	}

	if len(perCell) == 0 {
		return
	}

	styles := make([]string, 0, len(styleSet))
	for s := range styleSet {
		styles = append(styles, s)
	}
	sort.Strings(styles)

	// Extend to the current hour so quiet periods are visible.
	if curH := now.Hour(); curH > maxHour {
		maxHour = curH
	}

	// Column widths: at least colNumber, or the style name length.
	colWidths := make([]int, len(styles))
	for i, s := range styles {
		sw := len(s)
		if sw < colNumber {
			sw = colNumber
		}
		colWidths[i] = sw
	}

	const colHr = 7  // "HH:00" + padding
	const colTot = 7 // "Total"

	grandTotal := 0
	for _, c := range perHour {
		grandTotal += c
	}

	// Separator width.
	sepW := colHr
	for _, cw := range colWidths {
		sepW += colGap + cw
	}
	sepW += colGap + colTot + colGap + colPct

	w.WriteString("\n")

	// Header.
	hdr := bold(fmt.Sprintf("  %-*s", colHr, "Hour"))
	for i, s := range styles {
		hdr += "  " + colorPadL(cyan, s, colWidths[i])
	}
	hdr += bold(fmt.Sprintf("  %*s  %*s", colTot, "Total", colPct, "%"))
	w.WriteString(hdr + "\n")

	sep := dim("  " + strings.Repeat("─", sepW))
	w.WriteString(sep + "\n")

	// Data rows.
	grandPerStyle := make([]int, len(styles))

	for h := minHour; h <= maxHour; h++ {
		row := fmt.Sprintf("  %-*s", colHr, fmt.Sprintf("%02d:00", h))
		for i, s := range styles {
			c := perCell[hs{h, s}]
			grandPerStyle[i] += c
			if c > 0 {
				row += "  " + padL(fmtNum(c), colWidths[i])
			} else {
				row += "  " + colorPadL(dim, "-", colWidths[i])
			}
		}
		ht := perHour[h]
		if ht > 0 {
			row += "  " + padL(fmtNum(ht), colTot)
			row += "  " + padL(fmtPct(ht, grandTotal), colPct)
		} else {
			row += "  " + colorPadL(dim, "-", colTot)
			row += fmt.Sprintf("  %*s", colPct, "")
		}
		w.WriteString(row + "\n")
	}

	// Total row.
	w.WriteString(sep + "\n")
	totRow := fmt.Sprintf("  %-*s", colHr, "Total")
	for i := range styles {
		totRow += "  " + padL(fmtNum(grandPerStyle[i]), colWidths[i])
	}
	totRow += fmt.Sprintf("  %*s  %*s", colTot, fmtNum(grandTotal), colPct, "")
	w.WriteString(bold(totRow) + "\n")
}

// buildBaseline snapshots current per-size totals for watch delta tracking.
func buildBaseline(groups []renderlog.DayGroup) map[string]int {
	b := map[string]int{}
	for _, dg := range groups {
		for _, e := range dg.Entries {
			b[baselineKey(e.Style, e.Size)]++
		}
	}
	return b
}

func historyClear() {
	store := mustOpenStore()
	defer store.Close()

	if err := store.Clear(); err != nil {
		fatal("%v", err)
	}
	fmt.Println("Render history cleared.")
}

func historyClean(args []string) {
	if len(args) == 0 {
		// No days argument, clear everything.
		historyClear()
		return
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fatal("days must be a positive integer")
	}

	store := mustOpenStore()
	defer store.Close()

	removed, err := store.Clean(days)
	if err != nil {
		fatal("%v", err)
	}
	remaining, err := store.Entries(0)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Removed %d entries, kept %d (last %d days).\n", removed, len(remaining), days)
}

func historyWatch() {
	store := mustOpenStore()
	defer store.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fatal("cannot enter raw mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	keys := make(chan byte, 1)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()

	var baseline map[string]int
	started := time.Now()
	for {
		elapsed := time.Since(started).Truncate(time.Second)
		var out strings.Builder
		out.WriteString("\033[2J\033[H")
		fmt.Fprintf(&out, "iconforge history watch  —  started %s (%s)  —  press x to exit\n\n",
			started.Format("15:04:05"), dim(elapsed.String()))

		entries, err := store.Entries(1)
		if err != nil {
			fmt.Fprintf(&out, "Error: %v\n", err)
		} else if len(entries) == 0 {
			out.WriteString("No renders today.\n")
		} else {
			groups := renderlog.GroupByDay(entries, time.Local)
			// Capture baseline on first render.
			if baseline == nil {
				baseline = buildBaseline(groups)
			}
			renderSummaryTable(&out, groups, baseline)
			renderHourlyTable(&out, entries)
		}

		// In raw mode \n doesn't include \r, so convert.
		os.Stdout.WriteString(strings.ReplaceAll(out.String(), "\n", "\r\n"))

		timer := time.NewTimer(watchInterval)
		select {
		case key := <-keys:
			timer.Stop()
			if key == 'x' || key == 'X' || key == 3 { // x, X, or Ctrl+C
				os.Stdout.WriteString("\033[2J\033[H")
				return
			}
		case <-timer.C:
		}
	}
}

func historyExport(args []string) {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("days must be a positive integer")
		}
		days = n
	}

	store := mustOpenStore()
	defer store.Close()

	entries, err := store.Entries(days)
	if err != nil {
		fatal("%v", err)
	}

	type exportEntry struct {
		Time  string `json:"time"`
		RunID string `json:"run_id,omitempty"`
		Style string `json:"style"`
		Size  int    `json:"size"`
		File  string `json:"file"`
		Bytes int    `json:"bytes"`
	}
	out := make([]exportEntry, len(entries))
	for i, e := range entries {
		out[i] = exportEntry{
			Time:  e.Time.Format(time.RFC3339),
			RunID: e.RunID,
			Style: e.Style,
			Size:  e.Size,
			File:  e.File,
			Bytes: e.Bytes,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
