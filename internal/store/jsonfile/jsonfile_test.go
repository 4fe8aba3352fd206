package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s, dir
}

func TestNewRejectsEmptyDir(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error for empty data directory")
	}
}

func TestLoadMissingFilesYieldEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	cs, err := s.LoadCustomers(ctx)
	if err != nil || len(cs) != 0 {
		t.Fatalf("missing customers file: got %v, %v", cs, err)
	}
	js, err := s.LoadJobs(ctx)
	if err != nil || len(js) != 0 {
		t.Fatalf("missing jobs file: got %v, %v", js, err)
	}
}

func TestLoadCorruptFileYieldsEmpty(t *testing.T) {
	s, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, "customers.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cs, err := s.LoadCustomers(context.Background())
	if err != nil || len(cs) != 0 {
		t.Fatalf("corrupt file must load empty: got %v, %v", cs, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	crecs := map[string]customer.Record{
		"c1": {ID: "c1", Name: "John Smith", Email: "smith@example.com", BoatMake: "Catalina", BoatLength: 32},
	}
	jrecs := map[string]job.Record{
		"j1": {
			ID: "j1", CustomerID: "c1", ServiceType: "Haul Out",
			ScheduledAt: "2025-09-15 14:30", Origin: "Town Marina", Destination: "Boatyard",
			QuotedPrice: 450, Status: "Scheduled", CreatedAt: "2025-08-01 09:30", UpdatedAt: "2025-08-01 09:30",
		},
	}
	if err := s.SaveCustomers(ctx, crecs); err != nil {
		t.Fatalf("save customers: %v", err)
	}
	if err := s.SaveJobs(ctx, jrecs); err != nil {
		t.Fatalf("save jobs: %v", err)
	}

	gotC, err := s.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if gotC["c1"] != crecs["c1"] {
		t.Fatalf("customer record mismatch: %+v vs %+v", gotC["c1"], crecs["c1"])
	}
	gotJ, err := s.LoadJobs(ctx)
	if err != nil {
		t.Fatalf("load jobs: %v", err)
	}
	if gotJ["j1"] != jrecs["j1"] {
		t.Fatalf("job record mismatch: %+v vs %+v", gotJ["j1"], jrecs["j1"])
	}
}

func TestSaveReplacesWholeFile(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	first := map[string]customer.Record{
		"c1": {ID: "c1", Name: "A"},
		"c2": {ID: "c2", Name: "B"},
	}
	if err := s.SaveCustomers(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := map[string]customer.Record{"c1": {ID: "c1", Name: "A"}}
	if err := s.SaveCustomers(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("save must be a whole-file replacement, got %d records", len(got))
	}
}

func TestSaveUnwritableDirReportsWriteFailure(t *testing.T) {
	// the data "directory" is a plain file, so the temp file cannot be created
	blocked := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(blocked, []byte("in the way"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := New(blocked)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = s.SaveCustomers(context.Background(), map[string]customer.Record{"c1": {ID: "c1", Name: "A"}})
	if !errors.Is(err, store.ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
}
