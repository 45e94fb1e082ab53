package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/query"
)

type stubSource struct {
	zones []model.Zone
}

func (s *stubSource) Load(context.Context) ([]model.Zone, error) {
	return s.zones, nil
}

func serverZone(name string, aliases []string, lat, lng, flood, security, infra, pricePerSqm float64) model.Zone {
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

func testServer(t *testing.T) *Server {
	t.Helper()
	source := &stubSource{zones: []model.Zone{
		serverZone("Ajah", nil, 6.4698, 3.5852, 70, 55, 50, 250_000),
		serverZone("Lekki Phase 1", []string{"Lekki"}, 6.4478, 3.4723, 45, 72, 78, 450_000),
		serverZone("Victoria Island", []string{"VI"}, 6.4281, 3.4216, 40, 85, 90, 800_000),
	}}
	handle, err := catalog.NewHandle(context.Background(), source)
	require.NoError(t, err)
	return New(query.New(handle), handle, Options{})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["zones"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestZonesList(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/zones", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var zones []zoneSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &zones))
	require.Len(t, zones, 3)
	assert.Equal(t, "Ajah", zones[0].Name)
}

func TestZoneByAlias(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/zones/VI", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var zone model.Zone
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &zone))
	assert.Equal(t, "Victoria Island", zone.Name)
}

func TestResolve(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/resolve?q=lekki", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp resolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Resolved)
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, "Lekki Phase 1", resp.Candidates[0].Name)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/v1/resolve?q=zzqqxx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Resolved)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/v1/resolve?q=", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/evaluate", evaluateRequest{
		Location:     "Victoria Island",
		Price:        250_000_000,
		HoldingYears: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Victoria Island", result.ZoneName)
	// (100-40)*0.4 + 85*0.3 + 90*0.3 = 76.5
	assert.InDelta(t, 76.5, result.CompositeScore, 0.001)
	require.NotNil(t, result.ROI)
}

func TestEvaluateErrors(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/evaluate", evaluateRequest{
		Location: "Victoria Island", Price: 1_000_000, Strategy: "nonsense",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/evaluate", evaluateRequest{
		Location: "zzqqxx", Price: 1_000_000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/evaluate", evaluateRequest{
		Location: "Victoria Island", Price: 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorridor(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/corridor", model.CorridorQuery{
		Origin: "Ajah", Destination: "VI", HalfWidthKM: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.CorridorResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Ajah", result.Origin.Name)
	assert.NotEmpty(t, result.Matches)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/corridor", model.CorridorQuery{
		Origin: "Ajah", Destination: "VI", HalfWidthKM: -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorridorBuffer(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/corridor/buffer?origin=Ajah&destination=VI&half_width_km=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"Polygon"`)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/v1/corridor/buffer?origin=Ajah&destination=VI", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompare(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/compare", compareRequest{
		Origin:       "Ajah",
		Destinations: []string{"VI", "Lekki"},
		HalfWidthKM:  5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var options []query.RouteOption
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	require.Len(t, options, 2)
}

func TestAsk(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/ask", askRequest{
		Text: "3 bedroom from Ajah to VI under ₦80m",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp askResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Parsed.IsRoute())
	require.NotNil(t, resp.Corridor)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/ask", askRequest{Text: "is it safe in Lekki?"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Score)
	assert.Equal(t, "Lekki Phase 1", resp.Score.ZoneName)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/ask", askRequest{Text: "how much is it"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReload(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["zones"])
}

func TestRateLimit(t *testing.T) {
	source := &stubSource{zones: []model.Zone{
		serverZone("Ajah", nil, 6.4698, 3.5852, 70, 55, 50, 250_000),
	}}
	handle, err := catalog.NewHandle(context.Background(), source)
	require.NoError(t, err)
	s := New(query.New(handle), handle, Options{RatePerClient: 1, Burst: 1})

	first := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
