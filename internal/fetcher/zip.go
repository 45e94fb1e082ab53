package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/model"
)

// datasetExts are the archive entries the catalog can load as a zone dataset.
var datasetExts = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// ExtractDatasetZIP unpacks a downloaded archive into destDir and returns the
// path of the zone dataset inside it. GIS portal exports usually bundle the
// dataset with shapefile sidecars (.shp, .dbf, .shx), so every entry is
// extracted; exactly one entry must carry a dataset extension.
func ExtractDatasetZIP(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: open archive %s", zipPath)
	}
	defer r.Close() //nolint:errcheck

	var dataset string
	var datasets int
	for _, f := range r.File {
		path, err := extractZIPEntry(f, destDir)
		if err != nil {
			return "", err
		}
		if path == "" {
			continue
		}
		if datasetExts[strings.ToLower(filepath.Ext(path))] {
			dataset = path
			datasets++
		}
	}

	switch {
	case datasets == 0:
		return "", eris.Wrapf(model.ErrData, "archive %s contains no zone dataset", zipPath)
	case datasets > 1:
		return "", eris.Wrapf(model.ErrData, "archive %s contains %d zone datasets, expected one", zipPath, datasets)
	}
	return dataset, nil
}

// extractZIPEntry writes one archive entry under destDir, rejecting paths
// that escape it. Directory entries return an empty path.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("fetcher: archive entry %q escapes destination", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return "", eris.Wrap(err, "fetcher: create directory")
		}
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "fetcher: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "fetcher: open archive entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "fetcher: write file")
	}

	return destPath, nil
}
