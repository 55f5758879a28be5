package reports

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
}

func TestCountByPrefix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "order_tg1_100.json")
	touch(t, dir, "order_tg2_101.json")
	touch(t, dir, "checkin_tg1_102.json")
	touch(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	counts, err := countByPrefix(dir)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["order"] != 2 || counts["checkin"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	if len(counts) != 2 {
		t.Fatalf("unexpected extra prefixes: %v", counts)
	}
}

func TestReportOnEmptyDir(t *testing.T) {
	r := New(t.TempDir())
	if err := r.Report(); err != nil {
		t.Fatalf("report: %v", err)
	}
}

func TestReportMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope"))
	if err := r.Report(); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
