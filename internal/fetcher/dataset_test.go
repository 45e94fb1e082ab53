package fetcher

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/model"
)

func TestForURL(t *testing.T) {
	dl, err := ForURL("https://example.com/zones.json")
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, dl)

	dl, err = ForURL("ftp://ftp.example.com/zones.json")
	require.NoError(t, err)
	assert.IsType(t, &FTPFetcher{}, dl)

	_, err = ForURL("gopher://example.com/zones")
	assert.True(t, eris.Is(err, model.ErrInvalidInput))
}

func TestFetchDataset_Plain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"zones":{}}`))
	}))
	defer srv.Close()

	destDir := t.TempDir()
	path, err := FetchDataset(context.Background(), srv.URL+"/zones.json", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "zones.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"zones":{}}`, string(data))
}

func TestFetchDataset_ZIP(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("zones.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"zones":{}}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write(buf.Bytes())
	}))
	defer srv.Close()

	destDir := t.TempDir()
	path, err := FetchDataset(context.Background(), srv.URL+"/zones.zip", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "zones.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"zones":{}}`, string(data))
}

func TestFetchDataset_BadScheme(t *testing.T) {
	_, err := FetchDataset(context.Background(), "gopher://example.com/zones", t.TempDir())
	assert.True(t, eris.Is(err, model.ErrInvalidInput))
}
