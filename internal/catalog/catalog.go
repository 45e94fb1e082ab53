// Package catalog holds the in-memory zone catalog: an immutable snapshot
// of all known zones, published through an atomically swappable handle so a
// reload never exposes a partially populated catalog to in-flight queries.
package catalog

import (
	"context"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/model"
)

// Source loads zone records from a backing dataset. Implementations exist
// for JSON/YAML files, SQLite, and Postgres.
type Source interface {
	Load(ctx context.Context) ([]model.Zone, error)
}

// Snapshot is an immutable, fully validated view of the catalog. All query
// paths operate on a snapshot; once built it is never mutated, so concurrent
// reads need no locking.
type Snapshot struct {
	zones  []model.Zone
	byName map[string]int
}

// NewSnapshot validates every record and builds the name index. Any invalid
// or duplicate record aborts the build: no partial snapshot is ever
// produced.
func NewSnapshot(zones []model.Zone) (*Snapshot, error) {
	s := &Snapshot{
		zones:  make([]model.Zone, 0, len(zones)),
		byName: make(map[string]int, len(zones)),
	}
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byName[z.Name]; dup {
			return nil, eris.Wrapf(model.ErrData, "zone %q: duplicate canonical name", z.Name)
		}
		s.byName[z.Name] = len(s.zones)
		s.zones = append(s.zones, z)
	}
	return s, nil
}

// Get returns the zone with the given canonical name, or ErrNotFound.
func (s *Snapshot) Get(name string) (*model.Zone, error) {
	i, ok := s.byName[name]
	if !ok {
		return nil, eris.Wrapf(model.ErrNotFound, "zone %q", name)
	}
	return &s.zones[i], nil
}

// All returns every zone in catalog insertion order. The resolver's
// deterministic tie-break depends on this ordering, so it must be stable.
func (s *Snapshot) All() []model.Zone {
	return s.zones
}

// Len returns the number of zones in the snapshot.
func (s *Snapshot) Len() int { return len(s.zones) }

// Handle publishes catalog snapshots. Reload builds a complete new snapshot
// and swaps the pointer, so readers always observe a consistent view.
type Handle struct {
	current atomic.Pointer[Snapshot]
	source  Source
}

// NewHandle performs the initial load from source. A load failure here is
// fatal to process startup by contract: the caller must not serve queries.
func NewHandle(ctx context.Context, source Source) (*Handle, error) {
	h := &Handle{source: source}
	if err := h.Reload(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Snapshot returns the currently published snapshot.
func (h *Handle) Snapshot() *Snapshot {
	return h.current.Load()
}

// Reload loads and validates a fresh snapshot, then publishes it. On error
// the previously published snapshot (if any) remains in effect.
func (h *Handle) Reload(ctx context.Context) error {
	zones, err := h.source.Load(ctx)
	if err != nil {
		return eris.Wrap(err, "catalog: load")
	}
	snap, err := NewSnapshot(zones)
	if err != nil {
		return eris.Wrap(err, "catalog: build snapshot")
	}
	h.current.Store(snap)
	zap.L().Info("catalog: snapshot published", zap.Int("zones", snap.Len()))
	return nil
}
