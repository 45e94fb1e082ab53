package query

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/score"
)

type stubSource struct {
	zones []model.Zone
}

func (s *stubSource) Load(context.Context) ([]model.Zone, error) {
	return s.zones, nil
}

func facadeZone(name string, aliases []string, lat, lng, flood, security, infra, pricePerSqm float64) model.Zone {
	return model.Zone{
		Name:           name,
		Aliases:        aliases,
		State:          "Lagos",
		LGA:            "Eti-Osa",
		Coordinate:     model.Coordinate{Lat: lat, Lng: lng},
		FloodRisk:      model.FloodRisk{Score: flood, Level: "test"},
		Security:       model.Security{Score: security, Level: "test"},
		Infrastructure: model.Infrastructure{Score: infra},
		Market:         model.Market{PricePerSqm: pricePerSqm, AppreciationRate: 0.1, RentalYield: 0.05},
	}
}

func testFacade(t *testing.T) (*Facade, *stubSource, *catalog.Handle) {
	t.Helper()
	source := &stubSource{zones: []model.Zone{
		facadeZone("Alpha", nil, 0, 0, 20, 80, 80, 500_000),
		facadeZone("Midway", []string{"Mid Town"}, 0.005, 0.5, 0, 100, 100, 400_000),
		facadeZone("Omega", nil, 0, 1, 10, 90, 90, 700_000),
		facadeZone("Remote", nil, 3, 3, 10, 90, 90, 250_000),
	}}
	handle, err := catalog.NewHandle(context.Background(), source)
	require.NoError(t, err)
	return New(handle), source, handle
}

func TestResolveRef(t *testing.T) {
	f, _, _ := testFacade(t)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"canonical name", "Midway", "Midway"},
		{"alias", "Mid Town", "Midway"},
		{"fuzzy misspelling", "Midwey", "Midway"},
		{"coordinate near zone", "0.004, 0.5", "Midway"},
		{"coordinate at origin", "0,0", "Alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := f.ResolveRef(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone.Name)
		})
	}
}

func TestResolveRefErrors(t *testing.T) {
	f, _, _ := testFacade(t)

	_, err := f.ResolveRef("10, 10")
	assert.True(t, eris.Is(err, model.ErrNotFound), "coordinate outside coverage")

	_, err = f.ResolveRef("zzqqxxyy")
	assert.True(t, eris.Is(err, model.ErrUnresolved))

	_, err = f.ResolveRef("   ")
	assert.True(t, eris.Is(err, model.ErrInvalidInput))
}

func TestFacadeEvaluate(t *testing.T) {
	f, _, _ := testFacade(t)

	// Midway: habitability (100-0)*0.4 + 100*0.3 + 100*0.3 = 100.
	result, err := f.Evaluate("Mid Town", 50_000_000, score.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Midway", result.ZoneName)
	assert.InDelta(t, 100, result.CompositeScore, 0.001)
	assert.Equal(t, model.VerdictExcellent, result.Verdict)
}

func TestFacadeSearchCorridor(t *testing.T) {
	f, _, _ := testFacade(t)

	result, err := f.SearchCorridor(model.CorridorQuery{
		Origin:      "Alpha",
		Destination: "omega", // case-folded exact match
		HalfWidthKM: 2,
	})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		names = append(names, m.Zone.Name)
	}
	assert.Equal(t, []string{"Midway", "Omega", "Alpha"}, names)
}

func TestFacadeSearchCorridorUnresolvedEndpoint(t *testing.T) {
	f, _, _ := testFacade(t)

	_, err := f.SearchCorridor(model.CorridorQuery{
		Origin:      "Alpha",
		Destination: "nowheresville",
		HalfWidthKM: 2,
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrUnresolved))

	var unresolved *model.UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "nowheresville", unresolved.Query)
}

func TestCompareRoutes(t *testing.T) {
	f, _, _ := testFacade(t)

	// Alpha->Omega sweeps up Midway; Alpha->Remote runs diagonally away
	// from it, so the Omega corridor wins on match count.
	options, err := f.CompareRoutes("Alpha", []string{"Remote", "Omega"}, model.CorridorQuery{HalfWidthKM: 2})
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, "Omega", options[0].Destination.Name)
	assert.Equal(t, "Remote", options[1].Destination.Name)
	assert.Greater(t, len(options[0].Result.Matches), len(options[1].Result.Matches))
}

func TestCompareRoutesNoDestinations(t *testing.T) {
	f, _, _ := testFacade(t)

	_, err := f.CompareRoutes("Alpha", nil, model.CorridorQuery{HalfWidthKM: 2})
	assert.True(t, eris.Is(err, model.ErrInvalidInput))
}

func TestCorridorBuffer(t *testing.T) {
	f, _, _ := testFacade(t)

	raw, err := f.CorridorBuffer("Alpha", "Omega", 3)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Polygon"`)
}

func TestFacadeTracksCatalogReload(t *testing.T) {
	f, source, handle := testFacade(t)

	_, err := f.ResolveRef("Horizon")
	require.Error(t, err)

	source.zones = append(source.zones, facadeZone("Horizon", nil, 0.01, 0.2, 5, 95, 95, 600_000))
	require.NoError(t, handle.Reload(context.Background()))

	zone, err := f.ResolveRef("Horizon")
	require.NoError(t, err)
	assert.Equal(t, "Horizon", zone.Name)
}
