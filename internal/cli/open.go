package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/sonarscan"
	"github.com/hupe1980/sonarscan/capture"
	minios "github.com/hupe1980/sonarscan/capture/minio"
	s3s "github.com/hupe1980/sonarscan/capture/s3"
)

func (a *app) scannerOptions() []sonarscan.Option {
	return []sonarscan.Option{
		sonarscan.WithWorkers(a.cfg.Workers),
		sonarscan.WithAlignment(a.cfg.Alignment),
		sonarscan.WithSearchStrategy(a.cfg.Strategy),
		sonarscan.WithCacheCapacity(a.cfg.CacheCapacity),
		sonarscan.WithDecoderPolicy(a.cfg.Policy()),
		sonarscan.WithLogger(a.logger),
		sonarscan.WithMetricsCollector(a.metrics),
	}
}

func (a *app) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.workDir, p)
}

func (a *app) spooler() *capture.Spooler {
	return capture.NewSpooler(a.abs(a.cfg.SpoolDir),
		capture.WithConcurrentFetches(a.cfg.MaxFetches),
		capture.WithIOLimit(a.cfg.IOLimit),
		capture.WithLogger(a.logger.Logger),
	)
}

// store resolves the configured capture store. For the local store, name
// is split into the directory serving as the store root and the object
// name inside it.
func (a *app) store(ctx context.Context, name string) (capture.Store, string, error) {
	switch a.cfg.Store {
	case "s3":
		st, err := s3s.New(ctx, a.cfg.S3.Bucket,
			s3s.WithPrefix(a.cfg.S3.Prefix),
			s3s.WithRegion(a.cfg.S3.Region),
		)
		if err != nil {
			return nil, "", err
		}
		return st, name, nil
	case "minio":
		mc := a.cfg.MinIO
		if v := a.env["SONARSCAN_MINIO_ACCESS_KEY"]; v != "" {
			mc.AccessKey = v
		}
		if v := a.env["SONARSCAN_MINIO_SECRET_KEY"]; v != "" {
			mc.SecretKey = v
		}
		client, err := minios.Connect(mc.Endpoint, mc.AccessKey, mc.SecretKey, mc.Secure)
		if err != nil {
			return nil, "", fmt.Errorf("minio: %w", err)
		}
		return minios.NewStore(client, mc.Bucket, mc.Prefix), name, nil
	default:
		p := a.abs(name)
		return capture.NewLocalStore(filepath.Dir(p)), filepath.Base(p), nil
	}
}

// open maps a capture. Plain local files are mapped in place; everything
// else goes through the spool directory first.
func (a *app) open(ctx context.Context, name string) (*sonarscan.Scanner, error) {
	if a.cfg.Store == "local" && capture.CodecFor(name) == capture.CodecNone {
		return sonarscan.Open(a.abs(name), a.scannerOptions()...)
	}

	st, objName, err := a.store(ctx, name)
	if err != nil {
		return nil, err
	}
	return sonarscan.OpenCapture(ctx, a.spooler(), st, objName, a.scannerOptions()...)
}
