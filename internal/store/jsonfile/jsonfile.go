// Package jsonfile persists each collection as one JSON file mapping an id
// to a flat record object. This is the layout existing data files use, so
// field names and the datetime text format must stay stable.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecmhaul/haulkeep/internal/customer"
	"github.com/ecmhaul/haulkeep/internal/job"
	"github.com/ecmhaul/haulkeep/internal/store"
)

const (
	customersFile = "customers.json"
	jobsFile      = "jobs.json"
)

// Store keeps customers.json and jobs.json under a data directory.
type Store struct {
	dir string
}

// New returns a jsonfile store rooted at dir.
func New(dir string) (*Store, error) {
	d := strings.TrimSpace(dir)
	if d == "" {
		return nil, errors.New("empty data directory")
	}
	return &Store{dir: d}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// EnsureSchema creates the data directory.
func (s *Store) EnsureSchema(_ context.Context) error {
	return os.MkdirAll(s.dir, 0o750)
}

func (s *Store) Close() error { return nil }

func (s *Store) LoadCustomers(_ context.Context) (map[string]customer.Record, error) {
	return loadMap[customer.Record](filepath.Join(s.dir, customersFile))
}

func (s *Store) SaveCustomers(_ context.Context, recs map[string]customer.Record) error {
	return saveMap(filepath.Join(s.dir, customersFile), recs)
}

func (s *Store) LoadJobs(_ context.Context) (map[string]job.Record, error) {
	return loadMap[job.Record](filepath.Join(s.dir, jobsFile))
}

func (s *Store) SaveJobs(_ context.Context, recs map[string]job.Record) error {
	return saveMap(filepath.Join(s.dir, jobsFile), recs)
}

// loadMap reads an id -> record object. Missing and corrupt files both yield
// an empty map: this is unattended small-business data, and refusing to
// start over a bad file helps nobody.
func loadMap[T any](path string) (map[string]T, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- path is under the configured data dir
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("unreadable data file, starting empty", "path", path, "err", err)
		}
		return map[string]T{}, nil
	}
	out := make(map[string]T)
	if err := json.Unmarshal(b, &out); err != nil {
		slog.Warn("corrupt data file, starting empty", "path", path, "err", err)
		return map[string]T{}, nil
	}
	return out, nil
}

// saveMap replaces the file in one shot: marshal, write to a temp file in
// the same directory, rename over the target.
func saveMap[T any](path string, recs map[string]T) error {
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", store.ErrWriteFailure, path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", store.ErrWriteFailure, path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", store.ErrWriteFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", store.ErrWriteFailure, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", store.ErrWriteFailure, path, err)
	}
	return nil
}
