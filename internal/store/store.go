package store

import (
	"context"
	"errors"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
)

// ErrWriteFailure wraps any error raised while replacing a backing
// collection. In-memory state stays authoritative after a failed save.
var ErrWriteFailure = errors.New("store write failure")

// Store persists the two record collections wholesale. Loads are tolerant:
// a missing or unreadable backing store yields empty maps, never an error.
// Saves replace the whole collection.
type Store interface {
	EnsureSchema(ctx context.Context) error
	LoadCustomers(ctx context.Context) (map[string]customer.Record, error)
	SaveCustomers(ctx context.Context, recs map[string]customer.Record) error
	LoadJobs(ctx context.Context) (map[string]job.Record, error)
	SaveJobs(ctx context.Context, recs map[string]job.Record) error
	Close() error
}
