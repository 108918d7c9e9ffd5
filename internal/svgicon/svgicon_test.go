package svgicon

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MS8080/iconforge/internal/icon"
)

func wellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("svg not well formed: %v", err)
		}
	}
}

func TestWritePatterns(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, icon.Styles["patterns"], 1024); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buf.Bytes()
	wellFormed(t, data)

	for _, want := range []string{
		`width="1024"`,
		`<linearGradient id="bg"`,
		`<radialGradient id="glow"`,
		`clip-path="url(#corners)"`,
		"#3a7bd5",
		"#5856d6",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := bytes.Count(data, []byte("<line ")); got != 12 {
		t.Errorf("line count = %d, want 12", got)
	}
	// 13 motif circles plus the glow disc.
	if got := bytes.Count(data, []byte("<circle ")); got != 14 {
		t.Errorf("circle count = %d, want 14", got)
	}
}

func TestWriteInfinity(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, icon.Styles["infinity"], 1024); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buf.Bytes()
	wellFormed(t, data)

	for _, want := range []string{
		`<radialGradient id="bg"`,
		`fill:#ffffff`,
		`stroke-linecap:round`,
		"#9370db",
		"#4b0082",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := bytes.Count(data, []byte("<line ")); got != 399 {
		t.Errorf("line count = %d, want 399", got)
	}
}

func TestWriteUnknownStyle(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, icon.Style{Name: "mystery"}, 64); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masters", "patterns.svg")
	if err := WriteFile(path, icon.Styles["patterns"], 1024); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	wellFormed(t, data)
}
