package config

import "time"

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "launchgate.toml"

const (
	defaultServiceName    = "launchgate"
	defaultLogLevel       = "info"
	defaultSeverity       = "CRITICAL"
	defaultTimeout        = 10 * time.Second
	defaultServerAddr     = "127.0.0.1:8086"
	defaultCacheTTL       = 5 * time.Second
	defaultSamplePct      = 1.0
	defaultMaxHeapRatio   = 0.9
	defaultRetryBackoff   = 200 * time.Millisecond
	defaultExpectedStatus = 200
)

// Default returns a Config populated with defaults and no checks.
func Default() Config {
	return Config{
		Gate: Gate{
			DefaultTimeout: Duration(defaultTimeout),
		},
		Logging: Logging{
			Enabled: true,
			Level:   defaultLogLevel,
		},
		Observe: Observe{
			ServiceName:     defaultServiceName,
			TracingExporter: "none",
			SamplePct:       defaultSamplePct,
			MetricsExporter: "none",
		},
		Server: Server{
			Addr:     defaultServerAddr,
			CacheTTL: Duration(defaultCacheTTL),
		},
	}
}

// ExpectedStatus returns the HTTP status an http check requires.
func (c Check) ExpectedStatus() int {
	if c.ExpectStatus == 0 {
		return defaultExpectedStatus
	}
	return c.ExpectStatus
}

// HeapRatio returns the heap usage ratio a memory check tolerates.
func (c Check) HeapRatio() float64 {
	if c.MaxHeapRatio == 0 {
		return defaultMaxHeapRatio
	}
	return c.MaxHeapRatio
}

// RetryBackoff returns the delay between probe attempts.
func (c Check) RetryBackoff() time.Duration {
	if c.Backoff == 0 {
		return defaultRetryBackoff
	}
	return c.Backoff.Std()
}
