package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/config"
)

const testDataset = `{
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
    "Victoria Island": {
      "aliases": ["VI"],
      "state": "Lagos",
      "lga": "Eti-Osa",
      "coordinates": {"lat": 6.4281, "lng": 3.4216},
      "flood_risk": {"score": 40, "level": "moderate"},
      "security": {"score": 85, "level": "good"},
      "infrastructure": {"score": 90},
      "market": {"price_per_sqm": 800000, "appreciation_rate": 0.08, "rental_yield": 0.05}
    }
  }
}`

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))
	return path
}

func withTestConfig(t *testing.T, driver, path string) {
	t.Helper()
	orig := cfg
	cfg = &config.Config{}
	cfg.Catalog.Driver = driver
	cfg.Catalog.Path = path
	cfg.Import.TempDir = t.TempDir()
	cfg.Search.HalfWidthKM = 5.0
	t.Cleanup(func() { cfg = orig })
}

func TestOpenSourceFile(t *testing.T) {
	withTestConfig(t, "file", writeTestDataset(t))

	source, closer, err := openSource(context.Background())
	require.NoError(t, err)
	defer closer()

	assert.IsType(t, &catalog.FileSource{}, source)
}

func TestOpenSourceSQLite(t *testing.T) {
	withTestConfig(t, "sqlite", filepath.Join(t.TempDir(), "zones.db"))

	source, closer, err := openSource(context.Background())
	require.NoError(t, err)
	defer closer()

	assert.IsType(t, &catalog.SQLiteSource{}, source)
}

func TestOpenSourceUnknownDriver(t *testing.T) {
	withTestConfig(t, "oracle", "zones.json")

	_, _, err := openSource(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalog driver")
}

func TestOpenFacade(t *testing.T) {
	withTestConfig(t, "file", writeTestDataset(t))

	facade, handle, closer, err := openFacade(context.Background())
	require.NoError(t, err)
	defer closer()

	assert.Equal(t, 2, handle.Snapshot().Len())

	zone, err := facade.ResolveRef("VI")
	require.NoError(t, err)
	assert.Equal(t, "Victoria Island", zone.Name)
}
