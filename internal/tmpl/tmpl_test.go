package tmpl

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"patterns", "Patterns"},
		{"Patterns", "Patterns"},
		{"infinity", "Infinity"},
		{"a", "A"},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		s    string
		vars Vars
		want string
	}{
		{"no placeholders", "icon.png", Vars{Style: "patterns"}, "icon.png"},
		{"style lower", "{style}-icon", Vars{Style: "patterns"}, "patterns-icon"},
		{"style title", "{Style} Icon", Vars{Style: "patterns"}, "Patterns Icon"},
		{"both styles", "{Style}: {style}", Vars{Style: "infinity"}, "Infinity: infinity"},
		{"empty style", "{style}", Vars{}, ""},
		{"size", "icon-{size}.png", Vars{Size: 1024}, "icon-1024.png"},
		{"zero size", "icon-{size}.png", Vars{}, "icon-0.png"},
		{"default patterns name", "patterns-{size}.png", Vars{Style: "patterns", Size: 120}, "patterns-120.png"},
		{"default infinity name", "asd-icon-{size}.png", Vars{Style: "infinity", Size: 1024}, "asd-icon-1024.png"},
		{"all vars", "{style}-{size}-{Style}.png", Vars{Style: "patterns", Size: 29}, "patterns-29-Patterns.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.s, tt.vars); got != tt.want {
				t.Errorf("Expand(%q, %+v) = %q, want %q", tt.s, tt.vars, got, tt.want)
			}
		})
	}
}
