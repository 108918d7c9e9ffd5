package main

import (
	"strings"
	"testing"
	"time"

	"github.com/MS8080/iconforge/internal/renderlog"
)

func init() {
	// Disable ANSI colors so test output is deterministic.
	noColor = true
}

// --- fmtNum ---

func TestFmtNum(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1.000"},
		{12345, "12.345"},
		{1234567, "1.234.567"},
		{-42, "-42"},
		{-1500, "-1.500"},
	}
	for _, tt := range tests {
		if got := fmtNum(tt.n); got != tt.want {
			t.Errorf("fmtNum(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// --- fmtPct ---

func TestFmtPct(t *testing.T) {
	tests := []struct {
		n, total int
		want     string
	}{
		{50, 100, "50%"},
		{1, 3, "33%"},
		{2, 3, "66%"},
		{100, 100, "100%"},
		{0, 100, "0%"},
		{0, 0, ""},
		{5, 0, ""},
	}
	for _, tt := range tests {
		if got := fmtPct(tt.n, tt.total); got != tt.want {
			t.Errorf("fmtPct(%d, %d) = %q, want %q", tt.n, tt.total, got, tt.want)
		}
	}
}

// --- fmtBytes ---

func TestFmtBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := fmtBytes(tt.n); got != tt.want {
			t.Errorf("fmtBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// --- aggregateGroups ---

func TestAggregateGroupsSingle(t *testing.T) {
	groups := []renderlog.DayGroup{{
		Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Entries: []renderlog.Entry{
			{Style: "patterns", Size: 1024, Bytes: 100},
			{Style: "patterns", Size: 1024, Bytes: 100},
			{Style: "patterns", Size: 512, Bytes: 50},
			{Style: "infinity", Size: 1024, Bytes: 300},
		},
	}}

	td := aggregateGroups(groups)

	// Style order is sorted alphabetically.
	if len(td.styleOrder) != 2 || td.styleOrder[0] != "infinity" || td.styleOrder[1] != "patterns" {
		t.Errorf("styleOrder = %v, want [infinity patterns]", td.styleOrder)
	}

	// Per-style totals.
	pat := td.perStyle["patterns"]
	if pat.files != 3 || pat.bytes != 250 {
		t.Errorf("patterns = files:%d bytes:%d, want files:3 bytes:250", pat.files, pat.bytes)
	}
	inf := td.perStyle["infinity"]
	if inf.files != 1 || inf.bytes != 300 {
		t.Errorf("infinity = files:%d bytes:%d, want files:1 bytes:300", inf.files, inf.bytes)
	}

	// Per-size counts.
	if c := td.perSize[sizeKey{"patterns", 1024}]; c.files != 2 || c.bytes != 200 {
		t.Errorf("patterns/1024 = files:%d bytes:%d, want files:2 bytes:200", c.files, c.bytes)
	}

	// Sizes within a style are sorted largest first.
	sks := td.sizesByStyle["patterns"]
	if len(sks) != 2 || sks[0].size != 1024 || sks[1].size != 512 {
		t.Errorf("patterns sizes = %v, want [1024 512]", sks)
	}
}

func TestAggregateGroupsMultipleDays(t *testing.T) {
	groups := []renderlog.DayGroup{
		{
			Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
			Entries: []renderlog.Entry{
				{Style: "patterns", Size: 64, Bytes: 10},
			},
		},
		{
			Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			Entries: []renderlog.Entry{
				{Style: "patterns", Size: 64, Bytes: 30},
			},
		},
	}

	td := aggregateGroups(groups)

	pat := td.perStyle["patterns"]
	if pat.files != 2 || pat.bytes != 40 {
		t.Errorf("patterns = files:%d bytes:%d, want files:2 bytes:40", pat.files, pat.bytes)
	}

	if c := td.perSize[sizeKey{"patterns", 64}]; c.files != 2 || c.bytes != 40 {
		t.Errorf("patterns/64 = files:%d bytes:%d, want files:2 bytes:40", c.files, c.bytes)
	}
}

// --- buildBaseline ---

func TestBuildBaseline(t *testing.T) {
	groups := []renderlog.DayGroup{{
		Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Entries: []renderlog.Entry{
			{Style: "patterns", Size: 1024},
			{Style: "patterns", Size: 1024},
			{Style: "infinity", Size: 1024},
		},
	}}

	b := buildBaseline(groups)

	if got := b["patterns/1024"]; got != 2 {
		t.Errorf("patterns/1024 = %d, want 2", got)
	}
	if got := b["infinity/1024"]; got != 1 {
		t.Errorf("infinity/1024 = %d, want 1", got)
	}
	if got := b["missing/64"]; got != 0 {
		t.Errorf("missing/64 = %d, want 0", got)
	}
}

func TestBuildBaselineEmpty(t *testing.T) {
	b := buildBaseline(nil)
	if len(b) != 0 {
		t.Errorf("len = %d, want 0", len(b))
	}
}

// --- renderSummaryTable ---

func TestRenderSummaryTableBasic(t *testing.T) {
	groups := []renderlog.DayGroup{{
		Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Entries: []renderlog.Entry{
			{Style: "patterns", Size: 1024, Bytes: 2048},
			{Style: "infinity", Size: 1024, Bytes: 1024},
		},
	}}

	var out strings.Builder
	renderSummaryTable(&out, groups, nil)
	s := out.String()

	// Date header.
	if !strings.Contains(s, "2026-08-21") {
		t.Error("missing date header")
	}
	// Column headers.
	if !strings.Contains(s, "Files") {
		t.Error("missing Files header")
	}
	if !strings.Contains(s, "Bytes") {
		t.Error("missing Bytes header")
	}
	// No New column without a baseline.
	if strings.Contains(s, "New") {
		t.Error("unexpected New column without baseline")
	}
	// Style names.
	if !strings.Contains(s, "patterns") {
		t.Error("missing patterns style")
	}
	if !strings.Contains(s, "infinity") {
		t.Error("missing infinity style")
	}
	// Each style holds one of two files: 50%.
	if !strings.Contains(s, "50%") {
		t.Errorf("missing expected 50%% in output:\n%s", s)
	}
	// Byte totals.
	if !strings.Contains(s, "2.0 KB") {
		t.Errorf("missing 2.0 KB in output:\n%s", s)
	}
	if !strings.Contains(s, "3.0 KB") {
		t.Errorf("missing grand total 3.0 KB in output:\n%s", s)
	}
}

func TestRenderSummaryTableWithBaseline(t *testing.T) {
	groups := []renderlog.DayGroup{{
		Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Entries: []renderlog.Entry{
			{Style: "patterns", Size: 64, Bytes: 10},
			{Style: "patterns", Size: 64, Bytes: 10},
			{Style: "patterns", Size: 64, Bytes: 10},
		},
	}}
	baseline := map[string]int{"patterns/64": 1}

	var out strings.Builder
	renderSummaryTable(&out, groups, baseline)
	s := out.String()

	if !strings.Contains(s, "New") {
		t.Error("missing New column header")
	}
	// New delta: 3 - 1 = +2.
	if !strings.Contains(s, "+2") {
		t.Errorf("missing +2 delta in output:\n%s", s)
	}
}

func TestRenderSummaryTableMultiDay(t *testing.T) {
	groups := []renderlog.DayGroup{
		{
			Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
			Entries: []renderlog.Entry{
				{Style: "patterns", Size: 64, Bytes: 10},
			},
		},
		{
			Date: time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC),
			Entries: []renderlog.Entry{
				{Style: "patterns", Size: 64, Bytes: 10},
			},
		},
	}

	var out strings.Builder
	renderSummaryTable(&out, groups, nil)
	s := out.String()

	// Multi-day header shows the date range, oldest first.
	if !strings.Contains(s, "2026-08-19") || !strings.Contains(s, "2026-08-21") {
		t.Errorf("missing date range in header:\n%s", s)
	}
}

func TestRenderSummaryTableSingleStyle(t *testing.T) {
	groups := []renderlog.DayGroup{{
		Date: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Entries: []renderlog.Entry{
			{Style: "patterns", Size: 64, Bytes: 10},
			{Style: "patterns", Size: 32, Bytes: 5},
		},
	}}

	var out strings.Builder
	renderSummaryTable(&out, groups, nil)
	s := out.String()

	// A single style owns every file: 100%.
	if !strings.Contains(s, "100%") {
		t.Errorf("missing 100%% for single style:\n%s", s)
	}
	// Size rows.
	if !strings.Contains(s, "64 px") || !strings.Contains(s, "32 px") {
		t.Errorf("missing size rows in output:\n%s", s)
	}
}

// --- renderHourlyTable ---

func TestRenderHourlyTableToday(t *testing.T) {
	entries := []renderlog.Entry{
		{Time: time.Now(), Style: "patterns", Size: 64, Bytes: 10},
	}

	var out strings.Builder
	renderHourlyTable(&out, entries)
	s := out.String()

	if !strings.Contains(s, "Hour") {
		t.Error("missing Hour header")
	}
	if !strings.Contains(s, "patterns") {
		t.Error("missing patterns column")
	}
	if !strings.Contains(s, "Total") {
		t.Error("missing Total column")
	}
	// The single render is 100% of today's activity.
	if !strings.Contains(s, "100%") {
		t.Errorf("missing 100%% in output:\n%s", s)
	}
}

func TestRenderHourlyTableIgnoresOtherDays(t *testing.T) {
	entries := []renderlog.Entry{
		{Time: time.Now().AddDate(0, 0, -3), Style: "patterns", Size: 64, Bytes: 10},
	}

	var out strings.Builder
	renderHourlyTable(&out, entries)

	if out.Len() != 0 {
		t.Errorf("expected no output for old entries, got:\n%s", out.String())
	}
}
