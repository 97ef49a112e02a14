package fetcher

import (
	"context"
	"io"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FTPOptions configures the vendor-drop FTP fetcher. User and Password
// default to anonymous. RatePerMinute throttles multi-file mirrors so the
// vendor's connection cap is respected.
type FTPOptions struct {
	Timeout       time.Duration
	User          string
	Password      string
	RatePerMinute int
	Retry         RetryConfig
}

// FTPFetcher downloads vendor data drops over FTP.
type FTPFetcher struct {
	opts    FTPOptions
	limiter *rate.Limiter
}

// NewFTPFetcher creates an FTPFetcher with the given options.
func NewFTPFetcher(opts FTPOptions) *FTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.User == "" {
		opts.User = "anonymous"
		opts.Password = "anonymous@"
	}
	if opts.RatePerMinute <= 0 {
		opts.RatePerMinute = 10
	}
	opts.Retry = retryDefaults(opts.Retry)
	return &FTPFetcher{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), 1),
	}
}

// parseFTPURL extracts host (with port) and path from an FTP URL.
func parseFTPURL(rawURL string) (host string, path string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrap(err, "fetcher: parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", eris.Errorf("fetcher: expected ftp scheme, got %q", u.Scheme)
	}

	host = u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}

	path = u.Path
	if path == "" {
		return "", "", eris.New("fetcher: empty path in ftp url")
	}

	return host, path, nil
}

func (f *FTPFetcher) dial(ctx context.Context, host string) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(host, ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp dial")
	}
	if err := conn.Login(f.opts.User, f.opts.Password); err != nil {
		conn.Quit()
		return nil, eris.Wrap(err, "fetcher: ftp login")
	}
	return conn, nil
}

// ftpConnReader wraps an FTP response and connection so that closing the
// reader also closes the response and disconnects from the server.
type ftpConnReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpConnReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpConnReader) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "fetcher: close ftp response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "fetcher: quit ftp connection")
	}
	return nil
}

// Download retrieves one file and returns a reader. The caller must close
// the returned ReadCloser to release the FTP connection.
func (f *FTPFetcher) Download(ctx context.Context, ftpURL string) (io.ReadCloser, error) {
	host, path, err := parseFTPURL(ftpURL)
	if err != nil {
		return nil, err
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetcher: rate limit wait")
	}

	zap.L().Debug("ftp: connecting", zap.String("host", host), zap.String("path", path))

	conn, err := f.dial(ctx, host)
	if err != nil {
		return nil, err
	}

	resp, err := conn.Retr(path)
	if err != nil {
		conn.Quit()
		return nil, eris.Wrap(err, "fetcher: ftp retrieve")
	}

	return &ftpConnReader{resp: resp, conn: conn}, nil
}

// DownloadToFile downloads the FTP URL to a local file, retrying transient
// server failures. Returns bytes written.
func (f *FTPFetcher) DownloadToFile(ctx context.Context, ftpURL string, path string) (int64, error) {
	var n int64
	err := retryDo(ctx, f.opts.Retry, ftpURL, func() error {
		var err error
		n, err = f.downloadToFile(ctx, ftpURL, path)
		return err
	})
	return n, err
}

func (f *FTPFetcher) downloadToFile(ctx context.Context, ftpURL string, path string) (int64, error) {
	rc, err := f.Download(ctx, ftpURL)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "fetcher: create file")
	}
	defer file.Close()

	n, err := io.Copy(file, rc)
	if err != nil {
		return n, eris.Wrap(err, "fetcher: write file")
	}

	return n, nil
}

// Mirror downloads every spreadsheet in a remote directory into destDir,
// skipping names that already exist locally. Returns the local paths of the
// files it downloaded.
func (f *FTPFetcher) Mirror(ctx context.Context, dirURL, destDir string) ([]string, error) {
	host, dir, err := parseFTPURL(dirURL)
	if err != nil {
		return nil, err
	}

	conn, err := f.dial(ctx, host)
	if err != nil {
		return nil, err
	}
	entries, err := conn.List(dir)
	conn.Quit()
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: ftp list %s", dir)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "fetcher: create dir %s", destDir)
	}

	var fetched []string
	for _, e := range entries {
		if e.Type != ftp.EntryTypeFile || !IsSpreadsheet(e.Name) {
			continue
		}
		local := filepath.Join(destDir, e.Name)
		if _, statErr := os.Stat(local); statErr == nil {
			zap.L().Debug("ftp: already present, skipping", zap.String("file", e.Name))
			continue
		}
		remote := "ftp://" + host + strings.TrimSuffix(dir, "/") + "/" + e.Name
		n, err := f.DownloadToFile(ctx, remote, local)
		if err != nil {
			return fetched, eris.Wrapf(err, "fetcher: mirror %s", e.Name)
		}
		zap.L().Info("ftp: downloaded",
			zap.String("file", e.Name),
			zap.Int64("bytes", n))
		fetched = append(fetched, local)
	}
	return fetched, nil
}
