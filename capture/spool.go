package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"

	"github.com/hupe1980/sonarscan/internal/resource"
)

// Spooler copies captures from a Store into a local spool directory.
// A Spooler is safe for concurrent use.
type Spooler struct {
	dir    string
	rc     *resource.Controller
	logger *slog.Logger
}

// SpoolerOption configures a Spooler.
type SpoolerOption func(*spoolerConfig)

type spoolerConfig struct {
	fetches int64
	ioLimit int64
	logger  *slog.Logger
}

// WithConcurrentFetches limits the number of fetches running at once.
// Defaults to 1.
func WithConcurrentFetches(n int) SpoolerOption {
	return func(c *spoolerConfig) {
		c.fetches = int64(n)
	}
}

// WithIOLimit caps streamed spool reads at bytesPerSec. 0 means unlimited.
func WithIOLimit(bytesPerSec int64) SpoolerOption {
	return func(c *spoolerConfig) {
		c.ioLimit = bytesPerSec
	}
}

// WithLogger sets the logger for fetch events. Defaults to a discarding
// logger.
func WithLogger(l *slog.Logger) SpoolerOption {
	return func(c *spoolerConfig) {
		c.logger = l
	}
}

// NewSpooler creates a spooler writing into dir.
func NewSpooler(dir string, opts ...SpoolerOption) *Spooler {
	cfg := spoolerConfig{fetches: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	return &Spooler{
		dir: dir,
		rc: resource.NewController(resource.Config{
			MaxConcurrentFetches: cfg.fetches,
			IOLimitBytesPerSec:   cfg.ioLimit,
		}),
		logger: cfg.logger,
	}
}

// Dir returns the spool directory.
func (s *Spooler) Dir() string {
	return s.dir
}

// SpoolPath returns the local path a capture fetched from store is written
// to. The file name keeps a readable form of name and adds a hash of the
// store location and the full name, so distinct objects never share a file.
func (s *Spooler) SpoolPath(store Store, name string) string {
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	sum := xxhash.Sum64String(location(store) + "\x00" + clean)

	base := strings.ReplaceAll(TrimExt(clean), "/", "_")
	ext := path.Ext(base)
	return filepath.Join(s.dir, fmt.Sprintf("%s-%016x%s", strings.TrimSuffix(base, ext), sum, ext))
}

func location(store Store) string {
	if l, ok := store.(Locator); ok {
		return l.Location()
	}
	return fmt.Sprintf("%T", store)
}

// Fetch makes the named capture available as an uncompressed local file and
// returns its path. Uncompressed objects that already live on the local file
// system are returned in place. A capture that is already spooled is reused.
func (s *Spooler) Fetch(ctx context.Context, store Store, name string) (string, error) {
	if err := s.rc.AcquireFetch(ctx); err != nil {
		return "", err
	}
	defer s.rc.ReleaseFetch()

	obj, err := store.Open(ctx, name)
	if err != nil {
		return "", fmt.Errorf("capture: open %s: %w", name, err)
	}
	defer func() { _ = obj.Close() }()

	codec := CodecFor(name)
	if p, ok := obj.(Pather); ok && codec == CodecNone {
		return p.Path(), nil
	}

	dst := s.SpoolPath(store, name)
	if _, err := os.Stat(dst); err == nil {
		s.logger.Debug("capture already spooled", "name", name, "path", dst)
		return dst, nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	start := time.Now()
	var n int64
	if d, ok := obj.(Downloader); ok && codec == CodecNone {
		n, err = s.download(ctx, d, dst)
	} else {
		n, err = s.stream(ctx, obj, codec, dst)
	}
	if err != nil {
		s.logger.Error("capture fetch failed", "name", name, "error", err)
		return "", fmt.Errorf("capture: fetch %s: %w", name, err)
	}

	s.logger.Info("capture spooled",
		"name", name,
		"path", dst,
		"codec", codec.String(),
		"bytes", n,
		"duration", time.Since(start),
	)
	return dst, nil
}

func (s *Spooler) stream(ctx context.Context, obj Object, codec Codec, dst string) (int64, error) {
	body, err := obj.ReadRange(ctx, 0, obj.Size())
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	dec, err := NewReader(codec, s.rc.Reader(ctx, body))
	if err != nil {
		return 0, err
	}
	defer func() { _ = dec.Close() }()

	cr := &countingReader{r: dec}
	if err := atomic.WriteFile(dst, cr); err != nil {
		return 0, err
	}
	return cr.n, nil
}

func (s *Spooler) download(ctx context.Context, d Downloader, dst string) (int64, error) {
	tmp, err := os.CreateTemp(s.dir, ".fetch-*")
	if err != nil {
		return 0, err
	}

	n, err := d.DownloadTo(ctx, tmp)
	err = errors.Join(err, tmp.Close())
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}

	if err := atomic.ReplaceFile(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
