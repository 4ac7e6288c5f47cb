package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/launchgate/auth"
	"github.com/jonwraymond/launchgate/cache"
	"github.com/jonwraymond/launchgate/config"
	"github.com/jonwraymond/launchgate/health"
	"github.com/jonwraymond/launchgate/observe"
)

const readHeaderTimeout = 5 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the health endpoints over HTTP",
		Long: `Serve /healthz, /readyz, /health and /health/checks/{id}.

/health returns the full JSON report and requires a bearer token when
server.jwt_secret is set. /metrics is served when the metrics exporter is
prometheus.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			reg, err := selectedRegistry(cfg, nil)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg, reg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.close(cmd.Context()) }()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}
			logger := rt.observer.Logger()
			logger.Info(cmd.Context(), "serving health endpoints",
				observe.Field{Key: "addr", Value: ln.Addr().String()},
				observe.Field{Key: "checks", Value: reg.Len()},
			)
			return serve(cmd.Context(), ln, newServeHandler(cfg, rt.validator))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	return cmd
}

// newServeHandler routes the health endpoints for v.
func newServeHandler(cfg *config.Config, v *health.Validator) http.Handler {
	var opts []health.HandlerOption
	if ttl := cfg.Server.CacheTTL.Std(); ttl > 0 {
		opts = append(opts, health.WithReportCache(cache.NewMemoryCache(cache.MemoryCacheConfig{MaxTTL: ttl, MaxEntries: 1}), ttl))
	}

	guard := func(h http.Handler) http.Handler { return h }
	if cfg.Server.JWTSecret != "" {
		authn := auth.NewJWTAuthenticator(auth.JWTConfig{
			Issuer:        cfg.Server.JWTIssuer,
			Audience:      cfg.Server.JWTAudience,
			RequiredScope: cfg.Server.JWTScope,
		}, auth.NewStaticKeyProvider([]byte(cfg.Server.JWTSecret)))
		guard = func(h http.Handler) http.Handler { return auth.RequireAuth(authn, h) }
		opts = append(opts, health.WithReportGuard(guard))
	}

	mux := http.NewServeMux()
	health.RegisterHandlers(mux, v, opts...)
	mux.Handle("GET /health/checks/{id}", guard(health.CheckPathHandler(v)))
	if cfg.Observe.MetricsExporter == "prometheus" {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// serve runs until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
