// Package haulkeep is a record keeper for a boat-hauling business: customers
// and their boats, scheduled jobs with a status lifecycle, persisted
// wholesale to a local store. This package is the stable facade for
// embedding; the CLI under cmd/haulkeep is one consumer of it.
package haulkeep

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/ecmhaul/haulkeep/internal/config"
	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/manager"
	"github.com/ecmhaul/haulkeep/internal/metrics"
	"github.com/ecmhaul/haulkeep/internal/store"
	"github.com/ecmhaul/haulkeep/internal/store/factory"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Customer = customer.Customer

type CustomerRecord = customer.Record

type Job = job.Job

type JobSpec = job.Spec

type JobRecord = job.Record

type Status = job.Status

type StatusSet = job.StatusSet

type Options = manager.Options

type Store = store.Store

type Config = cfg.Config

// DateTimeLayout is the textual timestamp format for scheduled datetimes.
const DateTimeLayout = job.DateTimeLayout

// Error sentinels, re-exported for errors.Is at the facade.
var (
	ErrInvalidDateTime = job.ErrInvalidDateTime
	ErrInvalidPrice    = job.ErrInvalidPrice
	ErrUnknownCustomer = manager.ErrUnknownCustomer
	ErrUnknownJob      = manager.ErrUnknownJob
	ErrEmptySearchTerm = manager.ErrEmptySearchTerm
	ErrWriteFailure    = store.ErrWriteFailure
)

// DefaultStatuses is the canonical 6-value status enumeration.
func DefaultStatuses() StatusSet { return job.DefaultStatuses() }

// BasicStatuses is the reduced 4-value variant.
func BasicStatuses() StatusSet { return job.BasicStatuses() }

// ParsePrice converts raw price input, rejecting negative or non-numeric text.
func ParsePrice(s string) (float64, error) { return job.ParsePrice(s) }

// Manager is a thin facade over internal/manager.Manager.
// It provides a stable public API for embedding.

type Manager struct{ inner *manager.Manager }

// New creates a Manager over st.
func New(st Store, opts Options) *Manager {
	return &Manager{inner: manager.New(st, opts)}
}

// Open builds a store from the config DSN and returns a loaded Manager.
func Open(ctx context.Context, c *Config) (*Manager, error) {
	st, err := factory.NewFromDSN(c.DSN)
	if err != nil {
		return nil, err
	}
	m := New(st, c.Manager)
	if err := m.Load(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return m, nil
}

// OpenStore selects a store backend from a DSN (see internal/store/factory).
func OpenStore(dsn string) (Store, error) { return factory.NewFromDSN(dsn) }

// LoadConfig reads the TOML configuration at path; a missing file yields defaults.
func LoadConfig(path string) (*Config, error) { return cfg.LoadConfig(path) }

func (m *Manager) Load(ctx context.Context) error { return m.inner.Load(ctx) }
func (m *Manager) Save(ctx context.Context) error { return m.inner.Save(ctx) }
func (m *Manager) Close() error                   { return m.inner.Close() }

func (m *Manager) AddCustomer(c Customer) (string, error) { return m.inner.AddCustomer(c) }
func (m *Manager) AddJob(s JobSpec) (string, error)       { return m.inner.AddJob(s) }
func (m *Manager) FindCustomer(id string) (Customer, bool) {
	return m.inner.FindCustomer(id)
}
func (m *Manager) Customers() []Customer { return m.inner.Customers() }
func (m *Manager) SearchCustomers(term string) ([]Customer, error) {
	return m.inner.SearchCustomers(term)
}
func (m *Manager) CustomerName(id string) string { return m.inner.CustomerName(id) }
func (m *Manager) FindJob(id string) (Job, bool) { return m.inner.FindJob(id) }
func (m *Manager) ListJobs(statusFilter string) []Job {
	return m.inner.ListJobs(statusFilter)
}
func (m *Manager) JobsForCustomer(customerID string) []Job {
	return m.inner.JobsForCustomer(customerID)
}
func (m *Manager) UpdateJobStatus(jobID string, to Status) (bool, error) {
	return m.inner.UpdateJobStatus(jobID, to)
}
func (m *Manager) Statuses() StatusSet { return m.inner.Statuses() }

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }
