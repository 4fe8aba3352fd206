package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ecmhaul/haulkeep"
)

func newMenuManager(t *testing.T) *haulkeep.Manager {
	t.Helper()
	st, err := haulkeep.OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := haulkeep.New(st, haulkeep.Options{})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// script joins menu input lines into a single reader.
func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestMenuAddAndListCustomer(t *testing.T) {
	mgr := newMenuManager(t)
	in := script(
		"1",             // add customer
		"John Smith",    // name
		"555-0101",      // phone
		"smith@example.com",
		"12 Harbor Rd",
		"Catalina",
		"320",
		"32",
		"Wind Dancer",
		"2", // list customers
		"8", // save and exit
	)
	var out bytes.Buffer
	if err := runMenu(context.Background(), mgr, in, &out); err != nil {
		t.Fatalf("menu: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "added successfully with ID:") {
		t.Fatalf("customer add not confirmed:\n%s", got)
	}
	if !strings.Contains(got, "John Smith") {
		t.Fatalf("customer list missing name:\n%s", got)
	}
	if !strings.Contains(got, "Data saved successfully.") || !strings.Contains(got, "Goodbye!") {
		t.Fatalf("exit path not reported:\n%s", got)
	}
}

func TestMenuAddJobViaSearch(t *testing.T) {
	mgr := newMenuManager(t)
	if _, err := mgr.AddCustomer(haulkeep.Customer{Name: "John Smith", Email: "smith@example.com"}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	in := script(
		"4",      // add job
		"search", // locate customer by search
		"smith",
		"Haul Out",
		"2025-09-15 14:30",
		"Town Marina",
		"", // destination defaults to origin
		"450",
		"",
		"5", // list jobs
		"",  // no status filter
		"8",
	)
	var out bytes.Buffer
	if err := runMenu(context.Background(), mgr, in, &out); err != nil {
		t.Fatalf("menu: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Selected customer: John Smith") {
		t.Fatalf("search selection not reported:\n%s", got)
	}
	if !strings.Contains(got, "Job for customer \"John Smith\" added successfully") {
		t.Fatalf("job add not confirmed:\n%s", got)
	}
	if !strings.Contains(got, "Service: Haul Out") || !strings.Contains(got, "Destination: Town Marina") {
		t.Fatalf("job list incomplete:\n%s", got)
	}
}

func TestMenuAddJobWithNoCustomersOffersAdd(t *testing.T) {
	mgr := newMenuManager(t)
	in := script(
		"4", // add job with empty customer list
		"n", // decline adding one
		"8",
	)
	var out bytes.Buffer
	if err := runMenu(context.Background(), mgr, in, &out); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if !strings.Contains(out.String(), "No customers available.") {
		t.Fatalf("empty-customer path not reported:\n%s", out.String())
	}
}

func TestMenuUpdateJobStatus(t *testing.T) {
	mgr := newMenuManager(t)
	cid, err := mgr.AddCustomer(haulkeep.Customer{Name: "John Smith"})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	jid, err := mgr.AddJob(haulkeep.JobSpec{
		CustomerID:  cid,
		ServiceType: "Haul Out",
		ScheduledAt: "2025-09-15 14:30",
		Origin:      "Town Marina",
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	in := script(
		"6",
		jid,
		"In Progress",
		"6",
		jid,
		"Teleported", // outside the accepted set
		"8",
	)
	var out bytes.Buffer
	if err := runMenu(context.Background(), mgr, in, &out); err != nil {
		t.Fatalf("menu: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `status updated to "In Progress"`) {
		t.Fatalf("accepted transition not reported:\n%s", got)
	}
	if !strings.Contains(got, `Invalid status "Teleported"`) {
		t.Fatalf("rejected transition not reported:\n%s", got)
	}
}

func TestMenuInvalidChoiceAndEOF(t *testing.T) {
	mgr := newMenuManager(t)
	var out bytes.Buffer
	// input ends without an explicit exit; the loop returns cleanly
	if err := runMenu(context.Background(), mgr, script("42"), &out); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid choice.") {
		t.Fatalf("invalid choice not reported:\n%s", out.String())
	}
}
