package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/naija-prop/intel-cli/internal/catalog"
)

func TestZonesValidateOK(t *testing.T) {
	err := runZonesValidate(zonesValidateCmd, []string{writeTestDataset(t)})
	assert.NoError(t, err)
}

func TestZonesValidateBadRecord(t *testing.T) {
	bad := `{"zones": {"Nowhere": {"coordinates": {"lat": 200, "lng": 0}}}}`
	path := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	err := runZonesValidate(zonesValidateCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestImportZonesSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "zones.db")
	withTestConfig(t, "sqlite", dbPath)

	zones, err := catalog.NewFileSource(writeTestDataset(t)).Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, importZones(context.Background(), zones))

	source, err := catalog.NewSQLite(dbPath)
	require.NoError(t, err)
	defer source.Close() //nolint:errcheck

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Ajah", loaded[0].Name)
}

// importDataset has one zone with coordinates and one without, so a
// shapefile backfill has something to fill and something to miss.
const importDataset = `{
  "zones": {
    "Ajah": {
      "state": "Lagos",
      "lga": "Eti-Osa",
      "coordinates": {"lat": 6.4698, "lng": 3.5852},
      "flood_risk": {"score": 70, "level": "high"},
      "security": {"score": 55, "level": "fair"},
      "infrastructure": {"score": 50},
      "market": {"price_per_sqm": 250000, "appreciation_rate": 0.12, "rental_yield": 0.06}
    },
    "Epe": {
      "state": "Lagos",
      "lga": "Epe",
      "flood_risk": {"score": 30, "level": "low"},
      "security": {"score": 60, "level": "fair"},
      "infrastructure": {"score": 40},
      "market": {"price_per_sqm": 90000, "appreciation_rate": 0.15, "rental_yield": 0.07}
    },
    "Badagry": {
      "state": "Lagos",
      "lga": "Badagry",
      "flood_risk": {"score": 45, "level": "moderate"},
      "security": {"score": 50, "level": "fair"},
      "infrastructure": {"score": 35},
      "market": {"price_per_sqm": 60000, "appreciation_rate": 0.1, "rental_yield": 0.06}
    }
  }
}`

func writeImportShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 64)}))
	row := w.Write(&shp.Point{X: 3.9841, Y: 6.5841})
	require.NoError(t, w.WriteAttribute(int(row), 0, "Epe"))
	w.Close()
	return path
}

func TestZonesImportWarnsOnUnmatchedShapefileZones(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "zones.db")
	withTestConfig(t, "sqlite", dbPath)

	datasetPath := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte(importDataset), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, zonesImportCmd.Flags().Set("shapefile", writeImportShapefile(t)))
	t.Cleanup(func() { _ = zonesImportCmd.Flags().Set("shapefile", "") })

	zonesImportCmd.SetContext(context.Background())
	require.NoError(t, runZonesImport(zonesImportCmd, []string{datasetPath}))

	// Badagry has no shapefile point and no inline coordinate; the import
	// warns about it rather than reporting it as backfilled.
	entries := logs.FilterMessage("zones still lack coordinates after shapefile backfill").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"Badagry"}, entries[0].ContextMap()["zones"])

	source, err := catalog.NewSQLite(dbPath)
	require.NoError(t, err)
	defer source.Close() //nolint:errcheck

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	byName := make(map[string]float64, len(loaded))
	for _, z := range loaded {
		byName[z.Name] = z.Coordinate.Lat
	}
	assert.InDelta(t, 6.5841, byName["Epe"], 1e-6)
	assert.InDelta(t, 6.4698, byName["Ajah"], 1e-6)
}

func TestImportZonesFileDriverRejected(t *testing.T) {
	withTestConfig(t, "file", "zones.json")

	err := importZones(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be imported into")
}
