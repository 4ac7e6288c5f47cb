package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"

	"github.com/hashicorp/go-version"

	"github.com/jonwraymond/launchgate/health"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var checkTypes = []string{TypeHTTP, TypeTCP, TypeCommand, TypeDirectory, TypeSQLite, TypeMemory, TypeEnv}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGate(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateObserve(); err != nil {
		return err
	}
	if err := c.validateChecks(); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) validateGate() error {
	if c.Gate.MaxConcurrent < 0 {
		return invalid("gate.max_concurrent must not be negative")
	}
	if c.Gate.DefaultTimeout <= 0 {
		return invalid("gate.default_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if c.Logging.Enabled && !slices.Contains(validLogLevels, c.Logging.Level) {
		return invalid("logging.level %q is not one of %v", c.Logging.Level, validLogLevels)
	}
	return nil
}

func (c *Config) validateObserve() error {
	if c.Observe.ServiceName == "" {
		return invalid("observe.service_name must be set")
	}
	if c.Observe.SamplePct < 0 || c.Observe.SamplePct > 1 {
		return invalid("observe.sample_pct must be between 0 and 1")
	}
	if ep := c.Observe.CollectorEndpoint; ep != "" {
		if _, _, err := net.SplitHostPort(ep); err != nil {
			return invalid("observe.collector_endpoint %q must be host:port", ep)
		}
	}
	return nil
}

func (c *Config) validateChecks() error {
	seen := make(map[string]bool, len(c.Checks))
	for i, check := range c.Checks {
		if check.ID == "" {
			return invalid("checks[%d].id must be set", i)
		}
		if seen[check.ID] {
			return invalid("checks[%s] is declared more than once", check.ID)
		}
		seen[check.ID] = true

		if err := check.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Check) validate() error {
	key := fmt.Sprintf("checks[%s]", c.ID)

	if _, err := health.ParseSeverity(c.Severity); err != nil {
		return invalid("%s.severity: %v", key, err)
	}
	if c.Timeout < 0 {
		return invalid("%s.timeout must not be negative", key)
	}
	if c.Attempts < 1 {
		return invalid("%s.attempts must be at least 1", key)
	}

	switch c.Type {
	case TypeHTTP:
		u, err := url.Parse(c.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("%s.url must be an absolute http(s) URL", key)
		}
		if c.ExpectStatus != 0 && (c.ExpectStatus < 100 || c.ExpectStatus > 599) {
			return invalid("%s.expect_status %d is not an HTTP status", key, c.ExpectStatus)
		}
	case TypeTCP:
		if _, _, err := net.SplitHostPort(c.Address); err != nil {
			return invalid("%s.address must be host:port", key)
		}
	case TypeCommand:
		if c.Command == "" {
			return invalid("%s.command must be set", key)
		}
		if c.VersionConstraint != "" {
			if _, err := version.NewConstraint(c.VersionConstraint); err != nil {
				return invalid("%s.version_constraint %q: %v", key, c.VersionConstraint, err)
			}
		}
	case TypeDirectory:
		if c.Path == "" {
			return invalid("%s.path must be set", key)
		}
	case TypeSQLite:
		if c.DSN == "" {
			return invalid("%s.dsn must be set", key)
		}
	case TypeMemory:
		if c.MaxHeapRatio < 0 || c.MaxHeapRatio >= 1 {
			return invalid("%s.max_heap_ratio must be in [0, 1)", key)
		}
	case TypeEnv:
		if len(c.Vars) == 0 {
			return invalid("%s.vars must list at least one variable", key)
		}
	default:
		return invalid("%s.type %q is not one of %v", key, c.Type, checkTypes)
	}
	return nil
}
