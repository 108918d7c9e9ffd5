package renderlog

import (
	"sort"
	"time"
)

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// StyleCounts holds per-style totals.
type StyleCounts struct {
	Style string
	Files int
	Bytes int64
}

// SummaryData aggregates history entries per style and pixel size.
type SummaryData struct {
	PerStyle   []StyleCounts // sorted by style name
	PerSize    map[int]int   // files written per pixel size
	Runs       int           // distinct run IDs
	TotalFiles int
	TotalBytes int64
}

// Summarize aggregates entries into per-style and per-size totals.
func Summarize(entries []Entry) SummaryData {
	sd := SummaryData{PerSize: map[int]int{}}
	perStyle := map[string]*StyleCounts{}
	runSeen := map[string]bool{}

	for _, e := range entries {
		sc, ok := perStyle[e.Style]
		if !ok {
			sc = &StyleCounts{Style: e.Style}
			perStyle[e.Style] = sc
		}
		sc.Files++
		sc.Bytes += int64(e.Bytes)

		sd.PerSize[e.Size]++
		sd.TotalFiles++
		sd.TotalBytes += int64(e.Bytes)
		if e.RunID != "" && !runSeen[e.RunID] {
			runSeen[e.RunID] = true
			sd.Runs++
		}
	}

	names := make([]string, 0, len(perStyle))
	for name := range perStyle {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sd.PerStyle = append(sd.PerStyle, *perStyle[name])
	}
	return sd
}

// DayGroup holds the entries of one calendar day.
type DayGroup struct {
	Date    time.Time
	Entries []Entry
}

// GroupByDay buckets entries by calendar day in the given location,
// newest day first. Entries within a day keep their order.
func GroupByDay(entries []Entry, loc *time.Location) []DayGroup {
	byDay := map[time.Time][]Entry{}
	for _, e := range entries {
		local := e.Time.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		byDay[day] = append(byDay[day], e)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, DayGroup{Date: day, Entries: byDay[day]})
	}
	return groups
}
