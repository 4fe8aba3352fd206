package haulkeep

import (
	"context"
	"errors"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	st, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := New(st, Options{})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestFacadeRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	cid, err := m.AddCustomer(Customer{Name: "John Smith", Email: "smith@example.com"})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	jid, err := m.AddJob(JobSpec{
		CustomerID:  cid,
		ServiceType: "Haul Out",
		ScheduledAt: "2025-09-15 14:30",
		Origin:      "Town Marina",
		QuotedPrice: 450,
	})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}

	results, err := m.SearchCustomers("smith")
	if err != nil || len(results) != 1 {
		t.Fatalf("search: %v, %d results", err, len(results))
	}
	if ok, err := m.UpdateJobStatus(jid, "Completed"); err != nil || !ok {
		t.Fatalf("update status: %v %v", ok, err)
	}
	if err := m.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFacadeErrors(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.AddJob(JobSpec{CustomerID: "nobody", ScheduledAt: "2025-09-15 14:30"}); !errors.Is(err, ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
	if _, err := m.UpdateJobStatus("nope", "Completed"); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("expected ErrUnknownJob, got %v", err)
	}
	if _, err := ParsePrice("free"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestOpenWithConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.DSN = t.TempDir()
	m, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = m.Close() }()
	if got := len(m.Statuses()); got != 6 {
		t.Fatalf("default statuses: %d", got)
	}
}
