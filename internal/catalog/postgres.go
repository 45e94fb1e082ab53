package catalog

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/db"
	"github.com/naija-prop/intel-cli/internal/model"
)

// PostgresSource loads and stores the zone dataset in Postgres. The schema
// mirrors the SQLite source; an explicit position column preserves catalog
// insertion order.
type PostgresSource struct {
	pool db.Pool
}

// NewPostgres creates a PostgresSource over an existing pool. The source
// does not own the pool.
func NewPostgres(pool db.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS zones (
	position   INT NOT NULL,
	name       TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	lga        TEXT NOT NULL,
	lat        DOUBLE PRECISION NOT NULL,
	lng        DOUBLE PRECISION NOT NULL,
	record     JSONB NOT NULL,
	loaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the zones table if needed.
func (p *PostgresSource) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Import replaces the stored dataset using the COPY protocol.
func (p *PostgresSource) Import(ctx context.Context, zones []model.Zone) error {
	if _, err := p.pool.Exec(ctx, `TRUNCATE zones`); err != nil {
		return eris.Wrap(err, "postgres: truncate zones")
	}

	rows := make([][]any, 0, len(zones))
	for i, z := range zones {
		record, err := json.Marshal(z)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal zone %s", z.Name)
		}
		rows = append(rows, []any{
			i, z.Name, z.State, z.LGA, z.Coordinate.Lat, z.Coordinate.Lng, string(record),
		})
	}

	_, err := db.CopyFromRows(ctx, p.pool, "zones",
		[]string{"position", "name", "state", "lga", "lat", "lng", "record"}, rows)
	return err
}

// Load implements Source by reading all zone records in insertion order.
func (p *PostgresSource) Load(ctx context.Context) ([]model.Zone, error) {
	rows, err := p.pool.Query(ctx, `SELECT record FROM zones ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query zones")
	}
	defer rows.Close()

	var zones []model.Zone
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrap(err, "postgres: scan zone row")
		}
		var z model.Zone
		if err := json.Unmarshal(record, &z); err != nil {
			return nil, eris.Wrap(model.ErrData, "postgres: corrupt zone record: "+err.Error())
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate zone rows")
	}
	return zones, nil
}
