package fetcher

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FetchDataset downloads the zone dataset at rawURL into destDir and returns
// the local file path. A ".zip" payload is extracted in place; the archive
// must contain exactly one dataset file, shapefile sidecars may ride along.
func FetchDataset(ctx context.Context, rawURL, destDir string) (string, error) {
	dl, err := ForURL(rawURL)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "parse url %q", rawURL)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = "dataset"
	}

	local := filepath.Join(destDir, name)
	n, err := dl.DownloadToFile(ctx, rawURL, local)
	if err != nil {
		return "", eris.Wrapf(err, "fetch dataset %s", rawURL)
	}
	zap.L().Info("dataset downloaded",
		zap.String("url", rawURL),
		zap.String("path", local),
		zap.Int64("bytes", n),
	)

	if strings.EqualFold(filepath.Ext(name), ".zip") {
		extracted, err := ExtractDatasetZIP(local, destDir)
		if err != nil {
			return "", eris.Wrap(err, "extract dataset archive")
		}
		return extracted, nil
	}
	return local, nil
}
