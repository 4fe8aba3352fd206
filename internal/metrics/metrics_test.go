package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterIdempotent(t *testing.T) {
	r := prometheus.NewRegistry()
	if err := Register(r); err != nil {
		t.Fatalf("register: %v", err)
	}
	// second call is a no-op, not a duplicate registration error
	if err := Register(r); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestCountersIncrement(t *testing.T) {
	IncCustomersCreated()
	IncJobsCreated()
	IncStatusTransition("Scheduled", "Completed")
	IncSaves()
	IncSaveFailures()
}
