package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/launchgate/secret"
)

//go:embed sample_config.toml
var sampleConfig string

// Check types understood by the probe builder.
const (
	TypeHTTP      = "http"
	TypeTCP       = "tcp"
	TypeCommand   = "command"
	TypeDirectory = "directory"
	TypeSQLite    = "sqlite"
	TypeMemory    = "memory"
	TypeEnv       = "env"
)

// Gate configures validation runs.
type Gate struct {
	ReportPath     string   `toml:"report_path" yaml:"report_path"`
	MaxConcurrent  int      `toml:"max_concurrent" yaml:"max_concurrent"`
	DefaultTimeout Duration `toml:"default_timeout" yaml:"default_timeout"`
}

// Logging configures log output.
type Logging struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Level   string `toml:"level" yaml:"level"`
}

// Observe configures tracing and metrics export.
type Observe struct {
	ServiceName       string  `toml:"service_name" yaml:"service_name"`
	Environment       string  `toml:"environment" yaml:"environment"`
	TracingExporter   string  `toml:"tracing_exporter" yaml:"tracing_exporter"`
	SamplePct         float64 `toml:"sample_pct" yaml:"sample_pct"`
	MetricsExporter   string  `toml:"metrics_exporter" yaml:"metrics_exporter"`
	CollectorEndpoint string  `toml:"collector_endpoint" yaml:"collector_endpoint"`
	CollectorInsecure bool    `toml:"collector_insecure" yaml:"collector_insecure"`
}

// Server configures the health endpoint server.
type Server struct {
	Addr        string   `toml:"addr" yaml:"addr"`
	CacheTTL    Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	JWTSecret   string   `toml:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string   `toml:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string   `toml:"jwt_audience" yaml:"jwt_audience"`
	JWTScope    string   `toml:"jwt_scope" yaml:"jwt_scope"`
}

// Check declares one registered check. Which target fields apply depends
// on Type.
type Check struct {
	ID       string   `toml:"id" yaml:"id"`
	Severity string   `toml:"severity" yaml:"severity"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
	Type     string   `toml:"type" yaml:"type"`

	// http
	URL          string `toml:"url" yaml:"url"`
	ExpectStatus int    `toml:"expect_status" yaml:"expect_status"`

	// tcp
	Address string `toml:"address" yaml:"address"`

	// command
	Command           string   `toml:"command" yaml:"command"`
	VersionConstraint string   `toml:"version_constraint" yaml:"version_constraint"`
	VersionArgs       []string `toml:"version_args" yaml:"version_args"`

	// directory
	Path     string `toml:"path" yaml:"path"`
	Writable bool   `toml:"writable" yaml:"writable"`

	// sqlite
	DSN        string `toml:"dsn" yaml:"dsn"`
	QuickCheck bool   `toml:"quick_check" yaml:"quick_check"`

	// memory
	MaxHeapRatio float64 `toml:"max_heap_ratio" yaml:"max_heap_ratio"`
	MaxHeapBytes uint64  `toml:"max_heap_bytes" yaml:"max_heap_bytes"`

	// env
	Vars []string `toml:"vars" yaml:"vars"`

	// Attempts and Backoff configure retries inside network probes.
	Attempts int      `toml:"attempts" yaml:"attempts"`
	Backoff  Duration `toml:"backoff" yaml:"backoff"`
}

// Config encapsulates all configuration values for launchgate.
//
// Sections:
//   - Gate: run settings and the report file
//   - Logging: structured log level
//   - Observe: OpenTelemetry exporters
//   - Server: endpoint address, report cache and JWT guard
//   - Checks: the checks to register, in order
type Config struct {
	Gate    Gate    `toml:"gate" yaml:"gate"`
	Logging Logging `toml:"logging" yaml:"logging"`
	Observe Observe `toml:"observe" yaml:"observe"`
	Server  Server  `toml:"server" yaml:"server"`
	Checks  []Check `toml:"checks" yaml:"checks"`
}

// Load reads, decodes, and validates the configuration file at path.
// Files ending in .yaml or .yml are YAML; everything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, formatFor(path))
}

// Parse decodes data in the given format ("toml" or "yaml") and validates it.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SampleConfig returns an annotated example configuration.
func SampleConfig() string {
	return sampleConfig
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// normalize fills per-check defaults and expands environment references.
func (c *Config) normalize() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	expand := func(key string, value *string) error {
		expanded, err := secret.ExpandEnvStrict(*value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*value = expanded
		return nil
	}

	for key, value := range map[string]*string{
		"server.addr":                &c.Server.Addr,
		"server.jwt_secret":          &c.Server.JWTSecret,
		"gate.report_path":           &c.Gate.ReportPath,
		"observe.environment":        &c.Observe.Environment,
		"observe.collector_endpoint": &c.Observe.CollectorEndpoint,
	} {
		if err := expand(key, value); err != nil {
			return err
		}
	}

	for i := range c.Checks {
		check := &c.Checks[i]
		check.ID = strings.TrimSpace(check.ID)
		check.Type = strings.ToLower(strings.TrimSpace(check.Type))
		if check.Severity == "" {
			check.Severity = defaultSeverity
		}
		if check.Timeout == 0 {
			check.Timeout = c.Gate.DefaultTimeout
		}
		if check.Attempts == 0 {
			check.Attempts = 1
		}

		prefix := fmt.Sprintf("checks[%s]", check.ID)
		for key, value := range map[string]*string{
			"url":     &check.URL,
			"address": &check.Address,
			"path":    &check.Path,
			"dsn":     &check.DSN,
		} {
			if err := expand(prefix+"."+key, value); err != nil {
				return err
			}
		}
	}
	return nil
}
