package tmpl

import (
	"strconv"
	"strings"
)

// Vars holds the values file name templates can reference.
type Vars struct {
	Style string // style name as registered
	Size  int    // pixel size of the export
}

// Expand replaces template placeholders in s with runtime values.
// {style} → style name as-is, {Style} → title-cased, {size} → pixel size.
func Expand(s string, v Vars) string {
	s = strings.ReplaceAll(s, "{Style}", TitleCase(v.Style))
	s = strings.ReplaceAll(s, "{style}", v.Style)
	s = strings.ReplaceAll(s, "{size}", strconv.Itoa(v.Size))
	return s
}

// TitleCase uppercases the first byte of s.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
