package fetcher

import (
	"context"
	"io"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/model"
)

// Anonymous credentials accepted by public dataset mirrors.
const (
	ftpUser     = "anonymous"
	ftpPassword = "anonymous@"
	ftpPort     = "21"
)

// FTPOptions configures the FTP fetcher.
type FTPOptions struct {
	Timeout time.Duration
}

// FTPFetcher downloads zone datasets over anonymous FTP. A few state GIS
// portals still publish their exports on FTP mirrors only.
type FTPFetcher struct {
	opts FTPOptions
}

// NewFTPFetcher creates an FTPFetcher with the given options.
func NewFTPFetcher(opts FTPOptions) *FTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &FTPFetcher{opts: opts}
}

// splitFTPURL returns the dial address and remote path of a dataset URL.
// A URL without a port dials the standard FTP port.
func splitFTPURL(rawURL string) (addr, remotePath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrapf(model.ErrInvalidInput, "bad ftp url %q", rawURL)
	}
	if u.Scheme != "ftp" {
		return "", "", eris.Wrapf(model.ErrInvalidInput, "expected ftp scheme, got %q", u.Scheme)
	}

	addr = u.Host
	if _, _, splitErr := net.SplitHostPort(addr); splitErr != nil {
		addr = net.JoinHostPort(addr, ftpPort)
	}

	if u.Path == "" {
		return "", "", eris.Wrapf(model.ErrInvalidInput, "ftp url %q names no file", rawURL)
	}

	return addr, u.Path, nil
}

// ftpReader ties the control connection's lifetime to the data stream so the
// session stays open until the caller finishes reading.
type ftpReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpReader) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "fetcher: close ftp transfer")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "fetcher: quit ftp session")
	}
	return nil
}

// Download opens an anonymous session and streams the remote dataset file.
// The caller must close the reader to release the session.
func (f *FTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	addr, remotePath, err := splitFTPURL(rawURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("fetcher: ftp download",
		zap.String("addr", addr),
		zap.String("path", remotePath),
	)

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: dial %s", addr)
	}

	if err := conn.Login(ftpUser, ftpPassword); err != nil {
		conn.Quit() //nolint:errcheck
		return nil, eris.Wrap(err, "fetcher: ftp login")
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		conn.Quit() //nolint:errcheck
		return nil, eris.Wrapf(err, "fetcher: retrieve %s", remotePath)
	}

	return &ftpReader{resp: resp, conn: conn}, nil
}

// DownloadToFile streams the remote dataset into path. Returns bytes written.
func (f *FTPFetcher) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	rc, err := f.Download(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, eris.Wrap(err, "fetcher: create dataset directory")
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "fetcher: create %s", path)
	}
	defer out.Close() //nolint:errcheck

	n, err := io.Copy(out, rc)
	if err != nil {
		return n, eris.Wrapf(err, "fetcher: write %s", path)
	}

	return n, nil
}
