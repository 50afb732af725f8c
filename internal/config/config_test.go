package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if d.Format != "table" {
		t.Errorf("Format = %q, want table", d.Format)
	}

	if d.Sort != "name" {
		t.Errorf("Sort = %q, want name", d.Sort)
	}

	if d.All {
		t.Error("All = true, want false")
	}

	if d.Limit != 0 {
		t.Errorf("Limit = %d, want 0", d.Limit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FSTAT_FORMAT", "json")
	t.Setenv("FSTAT_SORT", "size")
	t.Setenv("FSTAT_ALL", "true")
	t.Setenv("FSTAT_LIMIT", "25")

	d, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if d.Format != "json" {
		t.Errorf("Format = %q, want json", d.Format)
	}

	if d.Sort != "size" {
		t.Errorf("Sort = %q, want size", d.Sort)
	}

	if !d.All {
		t.Error("All = false, want true")
	}

	if d.Limit != 25 {
		t.Errorf("Limit = %d, want 25", d.Limit)
	}
}
