package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/idelchi/fstat/internal/fstat"
)

func testStats() *fstat.FileStats {
	mod := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	perm := uint32(0o644)

	return &fstat.FileStats{
		TotalFiles:       2,
		TotalDirs:        1,
		TotalSize:        3072,
		AvgFileSize:      1536,
		LargestFileSize:  2048,
		SmallestFileSize: 1024,
		FileTypes: map[string]fstat.TypeStats{
			"txt":             {Count: 1, TotalSize: 1024, AvgSize: 1024},
			fstat.NoExtension: {Count: 1, TotalSize: 2048, AvgSize: 2048},
		},
		SizeDistribution: fstat.SizeDistribution{Small: 2},
		Entries: []fstat.FileEntry{
			{Path: "docs", IsDir: true, ModTime: &mod, Permissions: &perm},
			{Path: "docs/readme.txt", Size: 1024, Extension: "txt", ModTime: &mod, Permissions: &perm},
			{Path: "Makefile", Size: 2048, ModTime: &mod, Permissions: &perm},
		},
		Warnings: []fstat.Warning{{Path: "locked", Reason: "permission denied"}},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(testStats(), "json", &buf, FormatterOptions{}); err != nil {
		t.Fatalf("Render(json) error: %v", err)
	}

	var decoded fstat.FileStats
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.TotalFiles != 2 || decoded.TotalSize != 3072 {
		t.Errorf("round-trip gave files=%d size=%d, want 2/3072", decoded.TotalFiles, decoded.TotalSize)
	}

	if len(decoded.Warnings) != 1 {
		t.Errorf("warnings lost in JSON output: %v", decoded.Warnings)
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer

	options := FormatterOptions{ShowPermissions: true, ShowTimes: true}
	if err := Render(testStats(), "csv", &buf, options); err != nil {
		t.Fatalf("Render(csv) error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3 rows", len(records))
	}

	header := strings.Join(records[0], ",")
	want := "path,size_bytes,size_human,is_directory,file_type,permissions,modified"
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}

	if records[1][0] != "docs" || records[1][3] != "true" {
		t.Errorf("first row = %v, want the docs directory", records[1])
	}

	if records[2][1] != "1024" || records[2][4] != "txt" {
		t.Errorf("second row = %v, want 1024-byte txt file", records[2])
	}

	if records[1][5] != "644" {
		t.Errorf("permissions column = %q, want 644", records[1][5])
	}
}

func TestRenderCSVLimit(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(testStats(), "csv", &buf, FormatterOptions{Limit: 1}); err != nil {
		t.Fatalf("Render(csv) error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 2 {
		t.Errorf("got %d records, want header + 1 row", len(records))
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(testStats(), "summary", &buf, FormatterOptions{}); err != nil {
		t.Fatalf("Render(summary) error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Files: 2", "Dirs: 1", "Size:", "Avg:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer

	options := FormatterOptions{ShowPermissions: true, ShowTimes: true}
	if err := Render(testStats(), "table", &buf, options); err != nil {
		t.Fatalf("Render(table) error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"File Statistics Summary",
		"Size distribution:",
		"readme.txt",
		"Makefile",
		"DIR",
		"File types",
		fstat.NoExtension,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}

	if strings.Contains(out, "\033[") {
		t.Error("colors emitted although UseColors is false")
	}
}

func TestRenderTableSummaryOnly(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(testStats(), "table", &buf, FormatterOptions{SummaryOnly: true}); err != nil {
		t.Fatalf("Render(table) error: %v", err)
	}

	if strings.Contains(buf.String(), "readme.txt") {
		t.Error("summary-only output still lists entries")
	}
}

func TestRenderTableEmptyStats(t *testing.T) {
	var buf bytes.Buffer

	empty := &fstat.FileStats{FileTypes: map[string]fstat.TypeStats{}}
	if err := Render(empty, "table", &buf, FormatterOptions{}); err != nil {
		t.Fatalf("Render(table) error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "Average file size") {
		t.Error("averages shown although no files were scanned")
	}
}
