// Package sqlite persists the record collections in a local SQLite database
// (modernc.org/sqlite driver, CGO-free). Each save is a full replacement of
// the table inside one transaction, matching the wholesale-save model.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/store"
)

// DB implements store.Store over a SQLite file. Use ":memory:" for tests.
type DB struct {
	db *sql.DB
}

// New opens (or creates) the database at path.
func New(path string) (*DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty sqlite path")
	}
	d, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// busy timeout helps with short concurrent locks
	_, _ = d.Exec("PRAGMA busy_timeout=3000;")
	return &DB{db: d}, nil
}

func (s *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers(
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			boat_make TEXT NOT NULL DEFAULT '',
			boat_model TEXT NOT NULL DEFAULT '',
			boat_length REAL NOT NULL DEFAULT 0,
			boat_name TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS jobs(
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			service_type TEXT NOT NULL DEFAULT '',
			scheduled_datetime TEXT NOT NULL,
			origin_location TEXT NOT NULL DEFAULT '',
			destination_location TEXT NOT NULL DEFAULT '',
			quoted_price REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_customer ON jobs(customer_id);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error { return s.db.Close() }

func (s *DB) LoadCustomers(ctx context.Context) (map[string]customer.Record, error) {
	out := make(map[string]customer.Record)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, boat_make, boat_model, boat_length, boat_name
		FROM customers;`)
	if err != nil {
		// tolerate a missing schema the same way jsonfile tolerates a missing file
		slog.Warn("unreadable customers table, starting empty", "err", err)
		return out, nil
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var r customer.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Phone, &r.Email, &r.Address,
			&r.BoatMake, &r.BoatModel, &r.BoatLength, &r.BoatName); err != nil {
			return nil, err
		}
		out[r.ID] = r
	}
	return out, rows.Err()
}

func (s *DB) SaveCustomers(ctx context.Context, recs map[string]customer.Record) error {
	err := s.replace(ctx, `DELETE FROM customers;`, func(tx *sql.Tx) error {
		for _, r := range recs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO customers(id, name, phone, email, address, boat_make, boat_model, boat_length, boat_name)
				VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);`,
				r.ID, r.Name, r.Phone, r.Email, r.Address,
				r.BoatMake, r.BoatModel, r.BoatLength, r.BoatName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: customers: %v", store.ErrWriteFailure, err)
	}
	return nil
}

func (s *DB) LoadJobs(ctx context.Context) (map[string]job.Record, error) {
	out := make(map[string]job.Record)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, service_type, scheduled_datetime, origin_location,
		       destination_location, quoted_price, status, notes, created_at, updated_at
		FROM jobs;`)
	if err != nil {
		slog.Warn("unreadable jobs table, starting empty", "err", err)
		return out, nil
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var r job.Record
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.ServiceType, &r.ScheduledAt, &r.Origin,
			&r.Destination, &r.QuotedPrice, &r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out[r.ID] = r
	}
	return out, rows.Err()
}

func (s *DB) SaveJobs(ctx context.Context, recs map[string]job.Record) error {
	err := s.replace(ctx, `DELETE FROM jobs;`, func(tx *sql.Tx) error {
		for _, r := range recs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO jobs(id, customer_id, service_type, scheduled_datetime, origin_location,
					destination_location, quoted_price, status, notes, created_at, updated_at)
				VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
				r.ID, r.CustomerID, r.ServiceType, r.ScheduledAt, r.Origin,
				r.Destination, r.QuotedPrice, r.Status, r.Notes, r.CreatedAt, r.UpdatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: jobs: %v", store.ErrWriteFailure, err)
	}
	return nil
}

// replace runs clear + insert inside one transaction so a failed save leaves
// the previous contents intact.
func (s *DB) replace(ctx context.Context, del string, insert func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, del); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insert(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
