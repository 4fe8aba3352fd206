package sqlite

import (
	"context"
	"testing"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	crecs := map[string]customer.Record{
		"c1": {ID: "c1", Name: "John Smith", Phone: "555-0101", Email: "smith@example.com",
			Address: "12 Harbor Rd", BoatMake: "Catalina", BoatModel: "320", BoatLength: 32, BoatName: "Wind Dancer"},
	}
	if err := db.SaveCustomers(ctx, crecs); err != nil {
		t.Fatalf("save customers: %v", err)
	}
	gotC, err := db.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if gotC["c1"] != crecs["c1"] {
		t.Fatalf("customer record mismatch: %+v vs %+v", gotC["c1"], crecs["c1"])
	}

	jrecs := map[string]job.Record{
		"j1": {
			ID: "j1", CustomerID: "c1", ServiceType: "Haul Out",
			ScheduledAt: "2025-09-15 14:30", Origin: "Town Marina", Destination: "Boatyard",
			QuotedPrice: 450, Status: "Scheduled", Notes: "mast down",
			CreatedAt: "2025-08-01 09:30", UpdatedAt: "2025-08-01 09:30",
		},
	}
	if err := db.SaveJobs(ctx, jrecs); err != nil {
		t.Fatalf("save jobs: %v", err)
	}
	gotJ, err := db.LoadJobs(ctx)
	if err != nil {
		t.Fatalf("load jobs: %v", err)
	}
	if gotJ["j1"] != jrecs["j1"] {
		t.Fatalf("job record mismatch: %+v vs %+v", gotJ["j1"], jrecs["j1"])
	}
}

func TestSaveReplacesTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.SaveCustomers(ctx, map[string]customer.Record{
		"c1": {ID: "c1", Name: "A"},
		"c2": {ID: "c2", Name: "B"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.SaveCustomers(ctx, map[string]customer.Record{
		"c2": {ID: "c2", Name: "B"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.LoadCustomers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("save must replace the table, got %d rows", len(got))
	}
	if _, ok := got["c1"]; ok {
		t.Fatalf("c1 must be gone after replacement")
	}
}

func TestLoadMissingSchemaYieldsEmpty(t *testing.T) {
	// no EnsureSchema: the tables do not exist, loads start empty like the
	// jsonfile backend with missing files
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	cs, err := db.LoadCustomers(ctx)
	if err != nil || cs == nil || len(cs) != 0 {
		t.Fatalf("missing customers table: got %v, %v", cs, err)
	}
	js, err := db.LoadJobs(ctx)
	if err != nil || js == nil || len(js) != 0 {
		t.Fatalf("missing jobs table: got %v, %v", js, err)
	}
}

func TestLoadEmptyTables(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cs, err := db.LoadCustomers(ctx)
	if err != nil || len(cs) != 0 {
		t.Fatalf("empty customers table: got %v, %v", cs, err)
	}
	js, err := db.LoadJobs(ctx)
	if err != nil || len(js) != 0 {
		t.Fatalf("empty jobs table: got %v, %v", js, err)
	}
}
