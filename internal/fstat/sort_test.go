package fstat

import (
	"testing"
	"time"
)

func TestSortEntries(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	older := base.Add(-time.Hour)
	newer := base.Add(time.Hour)

	entries := func() []FileEntry {
		return []FileEntry{
			{Path: "b.log", Size: 300, Extension: "log", ModTime: &base},
			{Path: "a.txt", Size: 100, Extension: "txt", ModTime: &newer},
			{Path: "Makefile", Size: 200, ModTime: &older},
		}
	}

	tests := []struct {
		name  string
		by    SortBy
		order []string
	}{
		{"by name", SortByName, []string{"Makefile", "a.txt", "b.log"}},
		{"by size largest first", SortBySize, []string{"b.log", "Makefile", "a.txt"}},
		{"by modified newest first", SortByModified, []string{"a.txt", "b.log", "Makefile"}},
		{"by type no-extension last", SortByType, []string{"b.log", "a.txt", "Makefile"}},
		{"unknown falls back to name", SortBy("bogus"), []string{"Makefile", "a.txt", "b.log"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := entries()
			SortEntries(list, tt.by)

			for i, want := range tt.order {
				if list[i].Path != want {
					t.Errorf("position %d = %q, want %q", i, list[i].Path, want)
				}
			}
		})
	}
}

func TestSortEntriesMissingTimesLast(t *testing.T) {
	now := time.Now()

	list := []FileEntry{
		{Path: "untimed.bin"},
		{Path: "timed.bin", ModTime: &now},
	}

	SortEntries(list, SortByModified)

	if list[0].Path != "timed.bin" {
		t.Errorf("first entry = %q, want timed.bin", list[0].Path)
	}
}
