// Package config provides application configuration management with support for command-line flags, environment variables, and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Catalog   CatalogConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Tools     ToolsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	EnvFile     string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // auto, json, pretty, text
}

// CatalogConfig holds catalog source configuration.
type CatalogConfig struct {
	Path    string // Empty selects the built-in reference catalog
	Backend string // memory or bleve
	Watch   bool   // Reload when Path changes
}

// ServerConfig holds transport configuration.
type ServerConfig struct {
	Transport      string
	Addr           string        // HTTP listen address (default: 127.0.0.1:8765)
	ReadTimeout    time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout   time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout    time.Duration // HTTP idle timeout (default: 60s)
	MaxConnections int
	AllowedOrigins []string
	AdvertiseMDNS  bool
}

// RateLimitConfig holds per-client HTTP rate limits.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// ToolsConfig holds tool dispatch configuration.
type ToolsConfig struct {
	// StrictSchema rejects arguments that fail JSON Schema validation.
	StrictSchema bool
}

// Flag names.
const (
	FlagEnv            = "env"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagCatalog        = "catalog"
	FlagCatalogBackend = "catalog-backend"
	FlagWatch          = "watch"
	FlagTransport      = "transport"
	FlagAddr           = "addr"
	FlagMDNS           = "mdns"
	FlagStrictSchema   = "strict-schema"
	FlagEnvFile        = "env-file"
)

// RegisterFlags defines the configuration flags on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagEnv, "", "Environment (development, staging, production)")
	flags.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
	flags.String(FlagLogFormat, "", "Log format (auto, json, pretty, text)")
	flags.String(FlagCatalog, "", "Catalog file, SQLite database, or audio directory (default: built-in catalog)")
	flags.String(FlagCatalogBackend, "", "Search backend (memory, bleve)")
	flags.Bool(FlagWatch, false, "Reload the catalog when it changes on disk")
	flags.String(FlagTransport, "", "Transport (stdio, http)")
	flags.String(FlagAddr, "", "HTTP listen address (default: 127.0.0.1:8765)")
	flags.Bool(FlagMDNS, false, "Advertise the HTTP endpoint via mDNS")
	flags.Bool(FlagStrictSchema, false, "Reject tool arguments that fail JSON Schema validation")
	flags.String(FlagEnvFile, ".env", "Path to .env file")
}

// Load builds the configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// flags may be nil, in which case only the environment and defaults apply.
func Load(flags *pflag.FlagSet) (*Config, error) {
	src := source{flags: flags}

	envFile := src.flag(FlagEnvFile, ".env")
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: src.str(FlagEnv, "ENV", "development"),
			EnvFile:     envFile,
		},
		Logger: LoggerConfig{
			Level:  src.str(FlagLogLevel, "LOG_LEVEL", "info"),
			Format: src.str(FlagLogFormat, "LOG_FORMAT", "auto"),
		},
		Catalog: CatalogConfig{
			Path:    src.str(FlagCatalog, "CATALOG_PATH", ""),
			Backend: src.str(FlagCatalogBackend, "CATALOG_BACKEND", "bleve"),
			Watch:   src.boolean(FlagWatch, "CATALOG_WATCH", false),
		},
		Server: ServerConfig{
			Transport:      src.str(FlagTransport, "TRANSPORT", TransportStdio),
			Addr:           src.str(FlagAddr, "HTTP_ADDR", "127.0.0.1:8765"),
			AllowedOrigins: splitList(src.str("", "CORS_ALLOWED_ORIGINS", "*")),
			AdvertiseMDNS:  src.boolean(FlagMDNS, "ADVERTISE_MDNS", false),
		},
		Tools: ToolsConfig{
			StrictSchema: src.boolean(FlagStrictSchema, "STRICT_SCHEMA", false),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = src.duration("HTTP_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = src.duration("HTTP_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = src.duration("HTTP_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Server.MaxConnections, err = src.integer("HTTP_MAX_CONNECTIONS", 64); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = src.integer("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RPS, err = src.float("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}

	if cfg.Catalog.Path, err = expandPath(cfg.Catalog.Path); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	validFormats := map[string]bool{
		"auto":   true,
		"json":   true,
		"pretty": true,
		"text":   true,
	}
	if !validFormats[c.Logger.Format] {
		return fmt.Errorf("invalid log format: %q (must be auto, json, pretty, or text)", c.Logger.Format)
	}

	switch c.Catalog.Backend {
	case "memory", "bleve":
	default:
		return fmt.Errorf("invalid catalog backend: %q (must be memory or bleve)", c.Catalog.Backend)
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return errors.New("catalog watch requires a catalog path")
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return errors.New("http transport requires an address")
		}
	default:
		return fmt.Errorf("invalid transport: %q (must be stdio or http)", c.Server.Transport)
	}

	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("max connections must be at least 1, got %d", c.Server.MaxConnections)
	}
	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %g", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", c.RateLimit.Burst)
	}

	return nil
}

// source resolves a value from a changed flag, then the environment.
type source struct {
	flags *pflag.FlagSet
}

// flag returns the flag's value, including its default, or def when the
// flag is not defined.
func (s source) flag(name, def string) string {
	if s.flags == nil {
		return def
	}
	if f := s.flags.Lookup(name); f != nil {
		return f.Value.String()
	}
	return def
}

// str returns the first non-empty value from flag, env var, or default.
func (s source) str(name, envKey, def string) string {
	// Priority 1: Command-line flag, only when set explicitly.
	if s.flags != nil && name != "" {
		if f := s.flags.Lookup(name); f != nil && f.Changed {
			return f.Value.String()
		}
	}

	// Priority 2: Environment variable.
	if v := os.Getenv(envKey); v != "" {
		return v
	}

	// Priority 3: Default value.
	return def
}

// boolean accepts "true", "1", "yes" (case-insensitive) as true; anything
// else is false.
func (s source) boolean(name, envKey string, def bool) bool {
	v := s.str(name, envKey, "")
	if v == "" {
		return def
	}
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}

func (s source) integer(envKey string, def int) (int, error) {
	v := s.str("", envKey, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return n, nil
}

func (s source) float(envKey string, def float64) (float64, error) {
	v := s.str("", envKey, "")
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return f, nil
}

func (s source) duration(envKey, def string) (time.Duration, error) {
	v := s.str("", envKey, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return d, nil
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// loadEnvFile loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
