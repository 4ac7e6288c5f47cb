package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/launchgate/config"
	"github.com/jonwraymond/launchgate/health"
	"github.com/jonwraymond/launchgate/observe"
	"github.com/jonwraymond/launchgate/probes"
)

const defaultConfigHint = config.DefaultPath

const shutdownTimeout = 5 * time.Second

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := c.configPath()
		cfg, err := config.Load(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(*c.configFlag) == "" {
				err = fmt.Errorf("no configuration at %s; create one with `launchgate init`", path)
			}
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	return config.DefaultPath
}

// gateRuntime bundles a validator with the observer feeding its hooks.
type gateRuntime struct {
	validator *health.Validator
	observer  observe.Observer
}

// newRuntime builds the validator for reg. Telemetry and logs go to errOut so
// stdout carries only the report.
func newRuntime(ctx context.Context, cfg *config.Config, reg *health.Registry, errOut io.Writer) (*gateRuntime, error) {
	obs, err := observe.NewObserver(ctx, observeConfig(cfg, errOut))
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	hooks, err := observe.HooksFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	v := health.NewValidator(reg,
		health.WithConfig(health.ValidatorConfig{MaxConcurrent: cfg.Gate.MaxConcurrent}),
		health.WithHooks(hooks),
	)
	return &gateRuntime{validator: v, observer: obs}, nil
}

// close flushes telemetry, even when ctx is already cancelled.
func (r *gateRuntime) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return r.observer.Shutdown(ctx)
}

func observeConfig(cfg *config.Config, out io.Writer) observe.Config {
	return observe.Config{
		ServiceName: cfg.Observe.ServiceName,
		Version:     version,
		Environment: cfg.Observe.Environment,
		Tracing: observe.TracingConfig{
			Enabled:   exporterEnabled(cfg.Observe.TracingExporter),
			Exporter:  cfg.Observe.TracingExporter,
			SamplePct: cfg.Observe.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  exporterEnabled(cfg.Observe.MetricsExporter),
			Exporter: cfg.Observe.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: cfg.Logging.Enabled,
			Level:   cfg.Logging.Level,
		},
		Collector: observe.CollectorConfig{
			Endpoint: cfg.Observe.CollectorEndpoint,
			Insecure: cfg.Observe.CollectorInsecure,
		},
		Output: out,
	}
}

func exporterEnabled(name string) bool {
	return name != "" && name != "none"
}

// selectedRegistry builds the configured registry, narrowed to only when set.
func selectedRegistry(cfg *config.Config, only []string) (*health.Registry, error) {
	reg, err := probes.BuildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	if len(only) == 0 {
		return reg, nil
	}
	return reg.Subset(only...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
