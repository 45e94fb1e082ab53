package catalog

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/model"
)

func testZone(name string, flood, security, infra float64) model.Zone {
	return model.Zone{
		Name:           name,
		State:          "Lagos",
		LGA:            "Eti-Osa",
		Coordinate:     model.Coordinate{Lat: 6.45, Lng: 3.47},
		FloodRisk:      model.FloodRisk{Score: flood, Level: "moderate"},
		Security:       model.Security{Score: security, Level: "good"},
		Infrastructure: model.Infrastructure{Score: infra},
		Market:         model.Market{PricePerSqm: 250_000, AppreciationRate: 0.1, RentalYield: 0.05},
	}
}

func TestNewSnapshotIndexesByName(t *testing.T) {
	snap, err := NewSnapshot([]model.Zone{
		testZone("Ikoyi", 20, 95, 98),
		testZone("Ajah", 85, 55, 45),
	})
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())

	z, err := snap.Get("Ajah")
	require.NoError(t, err)
	assert.Equal(t, "Ajah", z.Name)

	_, err = snap.Get("Epe")
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrNotFound))
}

func TestNewSnapshotPreservesInsertionOrder(t *testing.T) {
	snap, err := NewSnapshot([]model.Zone{
		testZone("Yaba", 40, 70, 75),
		testZone("Ajah", 85, 55, 45),
		testZone("Ikoyi", 20, 95, 98),
	})
	require.NoError(t, err)

	var names []string
	for _, z := range snap.All() {
		names = append(names, z.Name)
	}
	assert.Equal(t, []string{"Yaba", "Ajah", "Ikoyi"}, names)
}

func TestNewSnapshotRejectsInvalidRecord(t *testing.T) {
	bad := testZone("Surulere", 120, 60, 60) // flood out of range
	_, err := NewSnapshot([]model.Zone{testZone("Ikoyi", 20, 95, 98), bad})
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrData))
	assert.Contains(t, err.Error(), "Surulere")
}

func TestNewSnapshotRejectsDuplicateName(t *testing.T) {
	_, err := NewSnapshot([]model.Zone{
		testZone("Ikoyi", 20, 95, 98),
		testZone("Ikoyi", 30, 90, 90),
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrData))
	assert.Contains(t, err.Error(), "duplicate")
}

// stubSource returns a fixed zone slice, or an error, per call.
type stubSource struct {
	zones []model.Zone
	err   error
}

func (s *stubSource) Load(context.Context) ([]model.Zone, error) { return s.zones, s.err }

func TestHandleInitialLoadFailureIsFatal(t *testing.T) {
	src := &stubSource{zones: []model.Zone{testZone("Bad", 300, 0, 0)}}
	_, err := NewHandle(context.Background(), src)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrData))
}

func TestHandleReloadKeepsOldSnapshotOnFailure(t *testing.T) {
	src := &stubSource{zones: []model.Zone{testZone("Ikoyi", 20, 95, 98)}}
	h, err := NewHandle(context.Background(), src)
	require.NoError(t, err)

	before := h.Snapshot()
	require.Equal(t, 1, before.Len())

	// A reload that fails validation must not replace the published snapshot.
	src.zones = []model.Zone{testZone("Broken", -5, 0, 0)}
	err = h.Reload(context.Background())
	require.Error(t, err)
	assert.Same(t, before, h.Snapshot())

	// A good reload swaps in the new snapshot.
	src.zones = []model.Zone{testZone("Ikoyi", 20, 95, 98), testZone("Ajah", 85, 55, 45)}
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, 2, h.Snapshot().Len())
}
