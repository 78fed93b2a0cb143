package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hupe1980/sonarscan/record"
	"github.com/tailscale/hujson"
)

// ConfigFileName is the project config file looked up in the work directory.
const ConfigFileName = ".sonarscan.json"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config")
	errUnknownStore       = errors.New("unknown store")
	errMissingBucket      = errors.New("bucket is required")
	errMissingEndpoint    = errors.New("minio endpoint is required")
)

// S3Config selects the bucket captures are read from when store is "s3".
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// MinIOConfig selects the server and bucket when store is "minio".
// The secret key may also come from SONARSCAN_MINIO_SECRET_KEY.
type MinIOConfig struct {
	Endpoint  string `json:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	Secure    bool   `json:"secure,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
}

// Config holds all configuration options.
type Config struct {
	Workers        int     `json:"workers,omitempty"`
	Alignment      int     `json:"alignment,omitempty"`
	Strategy       string  `json:"strategy,omitempty"`
	ChunkSize      int     `json:"chunk_size,omitempty"`
	CacheCapacity  int     `json:"cache_capacity,omitempty"`
	MaxChannelID   *uint32 `json:"max_channel_id,omitempty"`
	MaxSampleCount *uint32 `json:"max_sample_count,omitempty"`

	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"`
	MetricsAddr string `json:"metrics_addr,omitempty"`

	Store      string      `json:"store,omitempty"`
	SpoolDir   string      `json:"spool_dir,omitempty"`
	IOLimit    int64       `json:"io_limit_bytes_per_sec,omitempty"`
	MaxFetches int         `json:"max_concurrent_fetches,omitempty"`
	S3         S3Config    `json:"s3"`
	MinIO      MinIOConfig `json:"minio"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1 << 20,
		LogLevel:  "warn",
		LogFormat: "text",
		Store:     "local",
		SpoolDir:  ".sonarscan-spool",
	}
}

// Policy returns the decoder gate described by the config.
func (c Config) Policy() record.Policy {
	p := record.DefaultPolicy
	if c.MaxChannelID != nil {
		p.MaxChannelID = *c.MaxChannelID
	}
	if c.MaxSampleCount != nil {
		p.MaxSampleCount = *c.MaxSampleCount
	}
	return p
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Project config file (.sonarscan.json in workDir, if it exists)
// 3. Explicit config file via configPath (replaces 2, must exist)
// 4. CLI overrides.
//
// The returned string is the path of the loaded file, or empty.
func LoadConfig(workDir, configPath string, overrides Config) (Config, string, error) {
	cfg := DefaultConfig()

	fileCfg, source, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, "", err
	}

	cfg = mergeConfig(cfg, fileCfg)
	cfg = mergeConfig(cfg, overrides)

	if err := validateConfig(cfg); err != nil {
		return Config{}, "", fmt.Errorf("%w: %w", errConfigInvalid, err)
	}

	return cfg, source, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	cfgFile := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}
		mustExist = true
	}

	data, err := os.ReadFile(cfgFile) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
			}
			return Config{}, "", nil
		}
		return Config{}, "", err
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, err)
	}

	return cfg, cfgFile, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Workers != 0 {
		base.Workers = overlay.Workers
	}
	if overlay.Alignment != 0 {
		base.Alignment = overlay.Alignment
	}
	if overlay.Strategy != "" {
		base.Strategy = overlay.Strategy
	}
	if overlay.ChunkSize != 0 {
		base.ChunkSize = overlay.ChunkSize
	}
	if overlay.CacheCapacity != 0 {
		base.CacheCapacity = overlay.CacheCapacity
	}
	if overlay.MaxChannelID != nil {
		base.MaxChannelID = overlay.MaxChannelID
	}
	if overlay.MaxSampleCount != nil {
		base.MaxSampleCount = overlay.MaxSampleCount
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != "" {
		base.LogFormat = overlay.LogFormat
	}
	if overlay.MetricsAddr != "" {
		base.MetricsAddr = overlay.MetricsAddr
	}
	if overlay.Store != "" {
		base.Store = overlay.Store
	}
	if overlay.SpoolDir != "" {
		base.SpoolDir = overlay.SpoolDir
	}
	if overlay.IOLimit != 0 {
		base.IOLimit = overlay.IOLimit
	}
	if overlay.MaxFetches != 0 {
		base.MaxFetches = overlay.MaxFetches
	}
	if overlay.S3 != (S3Config{}) {
		base.S3 = overlay.S3
	}
	if overlay.MinIO != (MinIOConfig{}) {
		base.MinIO = overlay.MinIO
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", cfg.Workers)
	}
	if cfg.Alignment < 0 {
		return fmt.Errorf("alignment must not be negative: %d", cfg.Alignment)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive: %d", cfg.ChunkSize)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json: %q", cfg.LogFormat)
	}

	switch cfg.Store {
	case "local":
	case "s3":
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3: %w", errMissingBucket)
		}
	case "minio":
		if cfg.MinIO.Endpoint == "" {
			return errMissingEndpoint
		}
		if cfg.MinIO.Bucket == "" {
			return fmt.Errorf("minio: %w", errMissingBucket)
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}

	return nil
}

// FormatConfig returns the config as formatted JSON. Secrets are masked.
func FormatConfig(cfg Config) (string, error) {
	if cfg.MinIO.SecretKey != "" {
		cfg.MinIO.SecretKey = "***"
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
