package store

import (
	"path/filepath"
	"testing"
)

func TestDatabaseRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "claimcheck.db"), true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	out := map[string]int{}
	found, err := db.Read("usage_log", &out)
	if err != nil {
		t.Fatalf("read missing: %v", err)
	}
	if found {
		t.Fatal("missing key should report not found")
	}

	if err := db.Write("usage_log", map[string]int{"2026-08-31": 4}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := db.Write("usage_log", map[string]int{"2026-08-31": 5}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	found, err = db.Read("usage_log", &out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !found {
		t.Fatal("expected document to exist")
	}
	if out["2026-08-31"] != 5 {
		t.Fatalf("expected latest value, got %v", out)
	}
}
