// Package manager owns the in-memory record store: the customer and job
// collections for the running session, plus their coordination with the
// persistence layer. All mutation goes through its methods; lookups return
// value copies so callers cannot alias the collections.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/metrics"
	"github.com/ecmhaul/haulkeep/internal/store"
)

var (
	// ErrUnknownCustomer indicates a customer_id that does not resolve.
	ErrUnknownCustomer = errors.New("unknown customer")
	// ErrUnknownJob indicates a job_id that does not resolve.
	ErrUnknownJob = errors.New("unknown job")
	// ErrEmptySearchTerm indicates a blank customer search; an empty term is
	// a caller error, not a match-all.
	ErrEmptySearchTerm = errors.New("empty search term")
)

// UnknownCustomerName is rendered when a job's customer_id dangles.
const UnknownCustomerName = "unknown"

// Options configures the manager's status handling.
type Options struct {
	// Statuses is the accepted status enumeration; nil means the canonical
	// 6-value set.
	Statuses job.StatusSet
	// StrictTransitions enforces the job.Transitions graph on status
	// updates. Off by default: any accepted status may follow any other.
	StrictTransitions bool
}

// Manager holds both collections and the backing store.
type Manager struct {
	mu        sync.RWMutex
	st        store.Store
	opts      Options
	customers map[string]*customer.Customer
	custOrder []string
	jobs      map[string]*job.Job
	jobOrder  []string
}

// New creates an empty manager over st.
func New(st store.Store, opts Options) *Manager {
	if opts.Statuses == nil {
		opts.Statuses = job.DefaultStatuses()
	}
	return &Manager{
		st:        st,
		opts:      opts,
		customers: make(map[string]*customer.Customer),
		jobs:      make(map[string]*job.Job),
	}
}

// Statuses returns the accepted status enumeration.
func (m *Manager) Statuses() job.StatusSet {
	return append(job.StatusSet(nil), m.opts.Statuses...)
}

// Load reads both collections wholesale, replacing current contents.
// Individual malformed records are skipped with a warning; a record keeper
// should not refuse to start over one bad row. Load order is by sorted id so
// a session sees a stable ordering.
func (m *Manager) Load(ctx context.Context) error {
	if err := m.st.EnsureSchema(ctx); err != nil {
		return err
	}
	crecs, err := m.st.LoadCustomers(ctx)
	if err != nil {
		return err
	}
	jrecs, err := m.st.LoadJobs(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = make(map[string]*customer.Customer, len(crecs))
	m.custOrder = m.custOrder[:0]
	for _, id := range sortedKeys(crecs) {
		c, err := customer.FromRecord(crecs[id])
		if err != nil {
			slog.Warn("skipping customer record", "id", id, "err", err)
			continue
		}
		m.customers[c.ID] = c
		m.custOrder = append(m.custOrder, c.ID)
	}
	m.jobs = make(map[string]*job.Job, len(jrecs))
	m.jobOrder = m.jobOrder[:0]
	for _, id := range sortedKeys(jrecs) {
		j, err := job.FromRecord(jrecs[id])
		if err != nil {
			slog.Warn("skipping job record", "id", id, "err", err)
			continue
		}
		m.jobs[j.ID] = j
		m.jobOrder = append(m.jobOrder, j.ID)
	}
	slog.Info("records loaded", "customers", len(m.customers), "jobs", len(m.jobs))
	return nil
}

// AddCustomer constructs and inserts a Customer, returning its id.
func (m *Manager) AddCustomer(c customer.Customer) (string, error) {
	nc := customer.New(c)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.customers[nc.ID]; exists {
		return "", fmt.Errorf("customer id %s already exists", nc.ID)
	}
	m.customers[nc.ID] = nc
	m.custOrder = append(m.custOrder, nc.ID)
	metrics.IncCustomersCreated()
	slog.Info("customer added", "id", nc.ID, "name", nc.Name)
	return nc.ID, nil
}

// AddJob constructs and inserts a Job. The customer must resolve; entity
// construction errors pass through unchanged and nothing is inserted.
func (m *Manager) AddJob(s job.Spec) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[s.CustomerID]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCustomer, s.CustomerID)
	}
	j, err := job.New(s, time.Now())
	if err != nil {
		return "", err
	}
	if _, exists := m.jobs[j.ID]; exists {
		return "", fmt.Errorf("job id %s already exists", j.ID)
	}
	m.jobs[j.ID] = j
	m.jobOrder = append(m.jobOrder, j.ID)
	metrics.IncJobsCreated()
	slog.Info("job added", "id", j.ID, "customer", j.CustomerID, "service", j.ServiceType)
	return j.ID, nil
}

// FindCustomer looks up a customer by id.
func (m *Manager) FindCustomer(id string) (customer.Customer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return customer.Customer{}, false
	}
	return *c, true
}

// Customers returns all customers in insertion order.
func (m *Manager) Customers() []customer.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]customer.Customer, 0, len(m.custOrder))
	for _, id := range m.custOrder {
		out = append(out, *m.customers[id])
	}
	return out
}

// SearchCustomers matches term case-insensitively against name, phone and
// email, in that precedence. Results keep insertion order.
func (m *Manager) SearchCustomers(term string) ([]customer.Customer, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptySearchTerm
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []customer.Customer
	for _, id := range m.custOrder {
		if m.customers[id].Matches(term) {
			out = append(out, *m.customers[id])
		}
	}
	return out, nil
}

// CustomerName resolves a job's customer reference for display, yielding
// "unknown" for a dangling id.
func (m *Manager) CustomerName(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c.Name
	}
	return UnknownCustomerName
}

// FindJob looks up a job by id.
func (m *Manager) FindJob(id string) (job.Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, false
	}
	return *j, true
}

// ListJobs returns jobs ascending by scheduled time. A non-empty filter
// outside the accepted enumeration is dropped, not treated as empty-set.
func (m *Manager) ListJobs(statusFilter string) []job.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	filter := job.Status(statusFilter)
	filtered := statusFilter != "" && m.opts.Statuses.Contains(filter)
	out := make([]job.Job, 0, len(m.jobs))
	for _, id := range m.jobOrder {
		j := m.jobs[id]
		if filtered && j.Status != filter {
			continue
		}
		out = append(out, *j)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ScheduledAt.Before(out[b].ScheduledAt)
	})
	return out
}

// JobsForCustomer returns the customer's jobs in insertion order.
func (m *Manager) JobsForCustomer(customerID string) []job.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []job.Job
	for _, id := range m.jobOrder {
		if m.jobs[id].CustomerID == customerID {
			out = append(out, *m.jobs[id])
		}
	}
	return out
}

// UpdateJobStatus delegates to the job's state machine and reports whether
// the transition was accepted. An unresolvable id is an error, a rejected
// transition is not.
func (m *Manager) UpdateJobStatus(jobID string, to job.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownJob, jobID)
	}
	from := j.Status
	var accepted bool
	if m.opts.StrictTransitions {
		accepted = j.UpdateStatusStrict(to, m.opts.Statuses, time.Now())
	} else {
		accepted = j.UpdateStatus(to, m.opts.Statuses, time.Now())
	}
	if accepted {
		metrics.IncStatusTransition(string(from), string(to))
		slog.Info("job status updated", "id", jobID, "from", from, "to", to)
	}
	return accepted, nil
}

// Save serializes both collections and writes each as one complete
// replacement of its backing store. A failed write leaves memory untouched.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.RLock()
	crecs := make(map[string]customer.Record, len(m.customers))
	for id, c := range m.customers {
		crecs[id] = c.Record()
	}
	jrecs := make(map[string]job.Record, len(m.jobs))
	for id, j := range m.jobs {
		jrecs[id] = j.Record()
	}
	m.mu.RUnlock()

	if err := m.st.SaveCustomers(ctx, crecs); err != nil {
		metrics.IncSaveFailures()
		return err
	}
	if err := m.st.SaveJobs(ctx, jrecs); err != nil {
		metrics.IncSaveFailures()
		return err
	}
	metrics.IncSaves()
	slog.Info("records saved", "customers", len(crecs), "jobs", len(jrecs))
	return nil
}

// Close releases the backing store.
func (m *Manager) Close() error { return m.st.Close() }

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
