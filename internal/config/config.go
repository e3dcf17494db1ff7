// Package config provides configuration types and defaults for gymlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"github.com/maragym/gymlog/internal/log"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds all configuration options for gymlog.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Locale  string        `mapstructure:"locale"` // BCP 47 tag used to sort exercise names
	UI      UIConfig      `mapstructure:"ui"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver string      `mapstructure:"driver"` // "sqlite" (default), "redis" or "memory"
	Path   string      `mapstructure:"path"`   // sqlite database file
	Prefix string      `mapstructure:"prefix"` // key namespace, default "mara-gym/"
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the in-process read-through cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LogConfig controls debug logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
	Level string `mapstructure:"level"`
}

// UIConfig holds terminal rendering options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// BackupConfig holds remote backup destinations.
type BackupConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

// S3Config holds the S3 bucket backups are uploaded to.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
	Prefix    string `mapstructure:"prefix"`
}

// Enabled reports whether a bucket is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// TracingConfig controls OpenTelemetry spans for commands and storage calls.
type TracingConfig struct {
	// Enabled turns tracing on. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter is "none", "file" (default), "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output of the file exporter.
	// Default: ~/.config/gymlog/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector of the otlp exporter. Default: localhost:4317
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept (0.0 to 1.0). Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDataDir returns ~/.config/gymlog, or .gymlog when the home
// directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gymlog"
	}
	return filepath.Join(home, ".config", "gymlog")
}

// DefaultDatabasePath returns the default sqlite file location.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDataDir(), "gymlog.db")
}

// DefaultTracePath returns the default file exporter output.
func DefaultTracePath() string {
	return filepath.Join(DefaultDataDir(), "traces", "traces.jsonl")
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   DefaultDatabasePath(),
			Prefix: "mara-gym/",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     10 * time.Minute,
		},
		Log: LogConfig{
			Level: "debug",
		},
		Locale: "es",
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Backup: BackupConfig{
			S3: S3Config{
				Region: "us-east-1",
				Prefix: "gymlog",
			},
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateStorage(cfg.Storage); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			return fmt.Errorf("locale %q: %w", cfg.Locale, err)
		}
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be dark or light, got %q", cfg.UI.MarkdownStyle)
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	return nil
}

// ValidateTracing checks the exporter selection. Paths are only required
// when tracing is enabled.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// ValidateStorage checks the backend selection.
func ValidateStorage(s StorageConfig) error {
	switch s.Driver {
	case DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("path is required for the sqlite driver")
		}
	case DriverRedis:
		if s.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis driver")
		}
		if s.Redis.DB < 0 {
			return fmt.Errorf("redis.db must not be negative")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q (valid: sqlite, redis, memory)", s.Driver)
	}
	return nil
}

// ValidateCache checks the cache TTL when caching is on.
func ValidateCache(c CacheConfig) error {
	if c.Enabled && c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", c.TTL)
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# gymlog configuration

# Where exercises and logged sets are stored
storage:
  driver: sqlite            # sqlite (default), redis or memory
  # path: ~/.config/gymlog/gymlog.db
  prefix: mara-gym/         # key namespace
  # redis:
  #   addr: localhost:6379
  #   password: ""
  #   db: 0

# In-process read cache in front of the storage driver
cache:
  enabled: false
  ttl: 10m

# Debug logging (also enabled with --debug or GYMLOG_DEBUG=1)
log:
  # path: ~/.config/gymlog/debug.log
  debug: false

# Locale used to sort exercise names in the history view
locale: es

ui:
  markdown_style: dark      # dark or light

# Remote backups (gymlog export --s3 / gymlog import --s3 <key>)
# backup:
#   s3:
#     bucket: my-gym-backups
#     region: us-east-1
#     endpoint: http://localhost:9000   # MinIO or another S3-compatible store
#     path_style: true
#     prefix: gymlog

# OpenTelemetry spans for each command and storage call
tracing:
  enabled: false
  exporter: file            # none, file, stdout or otlp
  # file_path: ~/.config/gymlog/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
