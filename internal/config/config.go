package config

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/loadboard/internal/errors"
)

const (
	// FileName is the name of the configuration file.
	FileName = "loadboard.json"

	DefaultAddress        = ":8080"
	DefaultMaxMessageSize = 64 * 1024
	DefaultTracerName     = "loadboard"
)

// Environment overrides.
const (
	EnvAddress  = "LOADBOARD_ADDR"
	EnvDataDir  = "LOADBOARD_DATA"
	EnvLogLevel = "LOADBOARD_LOG_LEVEL"
)

// Config is the complete loadboard.json configuration.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Data      DataConfig      `json:"data"`
	Log       LogConfig       `json:"log"`
	Telemetry TelemetryConfig `json:"telemetry"`

	path string
}

// ServerConfig configures the HTTP and live server. Durations use
// time.ParseDuration syntax.
type ServerConfig struct {
	Address         string `json:"address,omitempty"`
	ReadTimeout     string `json:"readTimeout,omitempty"`
	WriteTimeout    string `json:"writeTimeout,omitempty"`
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`

	// PingInterval is the live heartbeat period.
	PingInterval string `json:"pingInterval,omitempty"`

	// MaxMessageSize bounds incoming live frames in bytes.
	MaxMessageSize int `json:"maxMessageSize,omitempty"`
}

// DataConfig selects where group fixtures come from. With neither Dir nor
// S3.Bucket set, the bundled fixtures are served.
type DataConfig struct {
	Dir   string   `json:"dir,omitempty"`
	Watch bool     `json:"watch,omitempty"`
	S3    S3Config `json:"s3,omitempty"`
}

// S3Config locates fixtures in a bucket.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `json:"level,omitempty"`  // debug, info, warn, error
	Format string `json:"format,omitempty"` // text or json
}

// TelemetryConfig toggles metrics and tracing.
type TelemetryConfig struct {
	Metrics    *bool  `json:"metrics,omitempty"`
	TracerName string `json:"tracerName,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads loadboard.json from dir. A missing file yields the defaults.
// Environment overrides apply in both cases.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := LoadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			cfg = New()
			cfg.path = path
		} else {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from path without environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("L001").WithLocation(path, 0, 0).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("L001").WithLocation(path, 0, 0).WithDetail("%v", err)
	}
	cfg.path = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("L001").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("L001").WithLocation(path, 0, 0).Wrap(err)
	}
	c.path = path
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv applies LOADBOARD_* overrides read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddress); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.Data.Dir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if _, err := parseLevel(v); err != nil {
			return errors.New("L003").WithDetail("%s=%q", EnvLogLevel, v).Wrap(err)
		}
		c.Log.Level = v
	}
	return nil
}

// Validate checks every value that later parsing relies on.
func (c *Config) Validate() error {
	for name, d := range map[string]string{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"server.pingInterval":    c.Server.PingInterval,
	} {
		if v, err := time.ParseDuration(d); err != nil || v <= 0 {
			return errors.New("L002").WithDetail("%s: %q is not a positive duration", name, d)
		}
	}
	if c.Server.MaxMessageSize <= 0 {
		return errors.New("L002").WithDetail("server.maxMessageSize must be positive")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("L002").WithDetail("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("L002").WithDetail("log.format: %q, want text or json", c.Log.Format)
	}
	if c.Data.Dir != "" && c.Data.S3.Bucket != "" {
		return errors.New("L002").
			WithDetail("data.dir and data.s3.bucket are mutually exclusive").
			WithSuggestion("Keep one fixture source.")
	}
	return nil
}

func (c *Config) applyDefaults() {
	s := &c.Server
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if s.ReadTimeout == "" {
		s.ReadTimeout = "15s"
	}
	if s.WriteTimeout == "" {
		s.WriteTimeout = "15s"
	}
	if s.ShutdownTimeout == "" {
		s.ShutdownTimeout = "10s"
	}
	if s.PingInterval == "" {
		s.PingInterval = "30s"
	}
	if s.MaxMessageSize == 0 {
		s.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = DefaultTracerName
	}
}

// Duration parses a validated duration field.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// MetricsEnabled reports whether /metrics is served. Defaults to true.
func (t TelemetryConfig) MetricsEnabled() bool {
	return t.Metrics == nil || *t.Metrics
}

// SlogLevel returns the configured level.
func (l LogConfig) SlogLevel() slog.Level {
	lvl, _ := parseLevel(l.Level)
	return lvl
}

// NewLogger builds the process logger.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.ToLower(s)))
	return lvl, err
}
