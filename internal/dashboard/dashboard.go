package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MS8080/iconforge/internal/config"
	"github.com/MS8080/iconforge/internal/export"
	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/palette"
	"github.com/MS8080/iconforge/internal/renderlog"
)

//go:embed static/index.html
var staticFS embed.FS

// JSON response types used by API handlers.

type jsonStyle struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Sizes         []int  `json:"sizes"`
	FileName      string `json:"file_name"`
	Dir           string `json:"dir"`
	Opaque        bool   `json:"opaque"`
	GradientStart string `json:"gradient_start"`
	GradientEnd   string `json:"gradient_end"`
}

type jsonEntry struct {
	Time       string  `json:"time"`
	RunID      string  `json:"run_id,omitempty"`
	Style      string  `json:"style"`
	Size       int     `json:"size"`
	File       string  `json:"file"`
	Bytes      int     `json:"bytes"`
	DurationMS float64 `json:"duration_ms"`
}

func entryToJSON(e renderlog.Entry) jsonEntry {
	return jsonEntry{
		Time:       e.Time.Format(time.RFC3339),
		RunID:      e.RunID,
		Style:      e.Style,
		Size:       e.Size,
		File:       e.File,
		Bytes:      e.Bytes,
		DurationMS: float64(e.Duration) / float64(time.Millisecond),
	}
}

type jsonRun struct {
	RunID      string  `json:"run_id"`
	Style      string  `json:"style"`
	Start      string  `json:"start"`
	Files      int     `json:"files"`
	Bytes      int64   `json:"bytes"`
	DurationMS float64 `json:"duration_ms"`
}

type jsonStyleCount struct {
	Style string `json:"style"`
	Files int    `json:"files"`
	Bytes int64  `json:"bytes"`
}

type jsonDay struct {
	Date  string `json:"date"`
	Files int    `json:"files"`
	Bytes int64  `json:"bytes"`
}

type summaryResponse struct {
	Styles     []jsonStyleCount `json:"styles"`
	PerSize    map[int]int      `json:"per_size"`
	Runs       int              `json:"runs"`
	TotalFiles int              `json:"total_files"`
	TotalBytes int64            `json:"total_bytes"`
	Days       []jsonDay        `json:"days"`
}

type renderRequest struct {
	Style  string `json:"style"`
	Sizes  []int  `json:"sizes"`
	OutDir string `json:"out_dir"`
}

type renderResult struct {
	RunID string `json:"run_id"`
	Style string `json:"style"`
	Files int    `json:"files"`
	Bytes int64  `json:"bytes"`
	Dir   string `json:"dir"`
}

type renderResponse struct {
	OK    bool           `json:"ok"`
	Runs  []renderResult `json:"runs,omitempty"`
	Error string         `json:"error,omitempty"`
}

type storeStats struct {
	Path        string `json:"path"`
	FileSize    int64  `json:"file_size"`
	Entries     int    `json:"entries"`
	OldestEntry string `json:"oldest_entry"`
	NewestEntry string `json:"newest_entry"`
}

// Messages pushed over /ws while renders run.

type wsRender struct {
	Type       string  `json:"type"`
	Style      string  `json:"style"`
	Size       int     `json:"size"`
	File       string  `json:"file"`
	Bytes      int     `json:"bytes"`
	DurationMS float64 `json:"duration_ms"`
}

type wsRun struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`
	Style string `json:"style"`
	Files int    `json:"files"`
}

// Serve starts the gallery HTTP server on 127.0.0.1:port and blocks
// until interrupted. If open is true, a browser window is launched in
// app mode (chromeless) pointing at the gallery URL.
func Serve(cfg config.Config, store renderlog.Store, port int, open bool) error {
	mux := http.NewServeMux()
	h := newHub()

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/api/styles", handleStyles(cfg))
	mux.HandleFunc("/api/history", handleHistory(store))
	mux.HandleFunc("/api/runs", handleRuns(store))
	mux.HandleFunc("/api/summary", handleSummary(store))
	mux.HandleFunc("/api/render", handleRender(cfg, store, h))
	mux.HandleFunc("/api/image", handleImage(cfg))
	mux.HandleFunc("/api/thumb", handleThumb(cfg))
	mux.HandleFunc("/api/stats", handleStats(store))
	mux.HandleFunc("/ws", handleWS(h))

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()

	url := fmt.Sprintf("http://%s", addr)
	fmt.Printf("Gallery: %s\n", url)
	fmt.Println("Press Ctrl+C to stop")

	if open {
		go openBrowser(url)
	}

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// openBrowser tries to open the URL in a chromeless browser window (app mode).
// It tries Edge, then Chrome, then falls back to the OS default browser.
func openBrowser(url string) {
	// Browsers that support --app mode (chromeless window).
	appBrowsers := [][]string{
		{"msedge", "--app=" + url},
		{"chrome", "--app=" + url},
		{"google-chrome", "--app=" + url},
		{"chromium", "--app=" + url},
		{"chromium-browser", "--app=" + url},
	}

	for _, b := range appBrowsers {
		if path, err := exec.LookPath(b[0]); err == nil {
			cmd := exec.Command(path, b[1:]...)
			cmd.Stdout = nil
			cmd.Stderr = nil
			if cmd.Start() == nil {
				return
			}
		}
	}

	// Fallback: open in default browser (with address bar).
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func handleStyles(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := icon.Names()
		out := make([]jsonStyle, 0, len(names))
		for _, name := range names {
			s, err := config.Resolve(cfg, name)
			if err != nil {
				continue
			}
			out = append(out, jsonStyle{
				Name:          s.Name,
				Description:   s.Description,
				Sizes:         s.Sizes,
				FileName:      s.FileName,
				Dir:           s.Dir,
				Opaque:        s.Opaque,
				GradientStart: palette.Hex(s.Palette.GradientStart),
				GradientEnd:   palette.Hex(s.Palette.GradientEnd),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func handleHistory(store renderlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []renderlog.Entry
		if h := r.URL.Query().Get("hours"); h != "" {
			if v, err := strconv.Atoi(h); err == nil && v > 0 {
				cutoff := time.Now().Add(-time.Duration(v) * time.Hour)
				entries, _ = store.EntriesSince(cutoff)
			} else {
				entries, _ = store.Entries(7)
			}
		} else {
			days := 7
			if d := r.URL.Query().Get("days"); d != "" {
				if v, err := strconv.Atoi(d); err == nil && v >= 0 {
					days = v
				}
			}
			entries, _ = store.Entries(days)
		}

		out := make([]jsonEntry, len(entries))
		for i, e := range entries {
			out[i] = entryToJSON(e)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func handleRuns(store renderlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if d := r.URL.Query().Get("days"); d != "" {
			if v, err := strconv.Atoi(d); err == nil && v >= 0 {
				days = v
			}
		}

		runs, _ := store.Runs(days)
		out := make([]jsonRun, len(runs))
		for i, run := range runs {
			out[i] = jsonRun{
				RunID:      run.RunID,
				Style:      run.Style,
				Start:      run.Start.Format(time.RFC3339),
				Files:      run.Files,
				Bytes:      run.Bytes,
				DurationMS: float64(run.Duration) / float64(time.Millisecond),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func handleSummary(store renderlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if d := r.URL.Query().Get("days"); d != "" {
			if v, err := strconv.Atoi(d); err == nil && v >= 0 {
				days = v
			}
		}

		entries, _ := store.Entries(days)
		sd := renderlog.Summarize(entries)

		resp := summaryResponse{
			Styles:     []jsonStyleCount{},
			PerSize:    sd.PerSize,
			Runs:       sd.Runs,
			TotalFiles: sd.TotalFiles,
			TotalBytes: sd.TotalBytes,
			Days:       []jsonDay{},
		}
		for _, sc := range sd.PerStyle {
			resp.Styles = append(resp.Styles, jsonStyleCount{
				Style: sc.Style,
				Files: sc.Files,
				Bytes: sc.Bytes,
			})
		}
		for _, g := range renderlog.GroupByDay(entries, time.Local) {
			day := jsonDay{Date: g.Date.Format("2006-01-02")}
			for _, e := range g.Entries {
				day.Files++
				day.Bytes += int64(e.Bytes)
			}
			resp.Days = append(resp.Days, day)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleRender(cfg config.Config, store renderlog.Store, h *hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(renderResponse{Error: "method not allowed"})
			return
		}

		var req renderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(renderResponse{Error: "invalid JSON"})
			return
		}

		reqCfg := cfg
		if req.OutDir != "" {
			reqCfg.Options.OutDir = req.OutDir
		}

		names := icon.Names()
		if req.Style != "" {
			names = []string{req.Style}
		}

		var results []renderResult
		for _, name := range names {
			s, err := config.Resolve(reqCfg, name)
			if err != nil {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(renderResponse{Error: err.Error()})
				return
			}
			if len(req.Sizes) > 0 {
				s.Sizes = req.Sizes
			}
			dir := config.OutDirFor(reqCfg, s)

			progress := func(res export.Result) {
				h.broadcast(wsRender{
					Type:       "render",
					Style:      res.Style,
					Size:       res.Size,
					File:       filepath.Base(res.Path),
					Bytes:      res.Bytes,
					DurationMS: float64(res.Duration) / float64(time.Millisecond),
				})
			}

			run, err := export.RenderAll(s, dir, progress)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(renderResponse{Error: err.Error()})
				return
			}
			store.LogRun(run)
			h.broadcast(wsRun{Type: "run", RunID: run.ID, Style: run.Style, Files: len(run.Results)})

			var total int64
			for _, res := range run.Results {
				total += int64(res.Bytes)
			}
			results = append(results, renderResult{
				RunID: run.ID,
				Style: run.Style,
				Files: len(run.Results),
				Bytes: total,
				Dir:   dir,
			})
		}

		json.NewEncoder(w).Encode(renderResponse{OK: true, Runs: results})
	}
}

func handleImage(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("style")
		if name == "" {
			http.Error(w, "style is required", http.StatusBadRequest)
			return
		}
		s, err := config.Resolve(cfg, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		size := 512
		if v := r.URL.Query().Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 2048 {
				http.Error(w, "size must be between 1 and 2048", http.StatusBadRequest)
				return
			}
			size = n
		}

		data, err := export.EncodePNG(s.Render(size, s.Palette))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	}
}

func handleThumb(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("style")
		if name == "" {
			http.Error(w, "style is required", http.StatusBadRequest)
			return
		}
		s, err := config.Resolve(cfg, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		data, err := export.EncodePNG(export.Thumbnail(s, 512, 128))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	}
}

func handleStats(store renderlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats storeStats
		stats.Path = store.Path()

		if info, err := os.Stat(store.Path()); err == nil {
			stats.FileSize = info.Size()
		}

		entries, _ := store.Entries(0)
		stats.Entries = len(entries)
		if len(entries) > 0 {
			stats.OldestEntry = entries[0].Time.Format(time.RFC3339)
			stats.NewestEntry = entries[len(entries)-1].Time.Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// hub fans render progress out to connected websocket clients.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{conns: map[*websocket.Conn]bool{}}
}

func (h *hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.Close()
}

func (h *hub) broadcast(v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(v); err != nil {
			delete(h.conns, c)
			c.Close()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func handleWS(h *hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.add(conn)

		// The read loop only notices when the peer goes away.
		go func() {
			defer h.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
