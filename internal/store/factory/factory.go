package factory

import (
	"strings"

	"github.com/ecmhaul/haulkeep/internal/store"
	"github.com/ecmhaul/haulkeep/internal/store/jsonfile"
	sq "github.com/ecmhaul/haulkeep/internal/store/sqlite"
)

// DefaultDataDir is used when no DSN is configured.
const DefaultDataDir = "data"

// NewFromDSN selects a store implementation based on DSN.
// Supported:
//   - sqlite: "sqlite://<path>", ":memory:", or a path ending in .db/.sqlite
//   - jsonfile: anything else, treated as a data directory (empty -> "data")
func NewFromDSN(dsn string) (store.Store, error) {
	d := strings.TrimSpace(dsn)
	ld := strings.ToLower(d)
	if strings.HasPrefix(ld, "sqlite://") {
		return sq.New(d[len("sqlite://"):])
	}
	if ld == ":memory:" || strings.HasSuffix(ld, ".db") || strings.HasSuffix(ld, ".sqlite") {
		return sq.New(d)
	}
	if d == "" {
		d = DefaultDataDir
	}
	return jsonfile.New(d)
}
