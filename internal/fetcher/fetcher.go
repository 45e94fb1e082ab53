// Package fetcher downloads remote zone datasets over HTTP or FTP, with
// retry, per-host rate limiting, and ZIP extraction for archived payloads.
package fetcher

import (
	"context"
	"io"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/model"
)

// Downloader is the transport-agnostic download surface. Both the HTTP and
// FTP fetchers implement it.
type Downloader interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Fetcher extends Downloader with conditional-fetch support. Only the HTTP
// fetcher implements it; FTP has no ETag equivalent.
type Fetcher interface {
	Downloader

	// HeadETag performs a HEAD request and returns the ETag header value.
	HeadETag(ctx context.Context, url string) (string, error)

	// DownloadIfChanged fetches the URL only if the ETag has changed.
	// Returns (body, newETag, changed, error). If not changed, body is nil and changed is false.
	DownloadIfChanged(ctx context.Context, url string, etag string) (io.ReadCloser, string, bool, error)
}

// ForURL returns the downloader matching the URL scheme.
func ForURL(rawURL string) (Downloader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(model.ErrInvalidInput, "parse url %q", rawURL)
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPFetcher(HTTPOptions{}), nil
	case "ftp":
		return NewFTPFetcher(FTPOptions{}), nil
	default:
		return nil, eris.Wrapf(model.ErrInvalidInput, "unsupported url scheme %q", u.Scheme)
	}
}
