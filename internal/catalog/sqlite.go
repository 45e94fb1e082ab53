package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/naija-prop/intel-cli/internal/model"
)

// SQLiteSource loads and stores the zone dataset in a SQLite database via
// modernc.org/sqlite. Zones are kept as one row each, with the full record
// as a JSON document plus the columns queries need; rowid order preserves
// catalog insertion order.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dsn and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteSource{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS zones (
	name       TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	lga        TEXT NOT NULL,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	record     TEXT NOT NULL,
	loaded_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_zones_state ON zones(state);
`

// Migrate creates the zones table if needed.
func (s *SQLiteSource) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error { return s.db.Close() }

// Import replaces the stored dataset with the given zones inside a single
// transaction, so a failed import leaves the previous dataset intact.
func (s *SQLiteSource) Import(ctx context.Context, zones []model.Zone) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM zones`); err != nil {
		return eris.Wrap(err, "sqlite: clear zones")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO zones (name, state, lga, lat, lng, record) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for _, z := range zones {
		record, err := json.Marshal(z)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal zone %s", z.Name)
		}
		if _, err := stmt.ExecContext(ctx,
			z.Name, z.State, z.LGA, z.Coordinate.Lat, z.Coordinate.Lng, string(record),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert zone %s", z.Name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit import")
}

// Load implements Source by reading all zone records in insertion order.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.Zone, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM zones ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query zones")
	}
	defer rows.Close()

	var zones []model.Zone
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan zone row")
		}
		var z model.Zone
		if err := json.Unmarshal([]byte(record), &z); err != nil {
			return nil, eris.Wrap(model.ErrData, "sqlite: corrupt zone record: "+err.Error())
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate zone rows")
	}
	return zones, nil
}
