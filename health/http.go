package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonwraymond/launchgate/cache"
)

var reportCacheKey = cache.Key("health", "report")

// Source produces reports. *Validator implements Source.
type Source interface {
	ValidateAll(ctx context.Context) Report
}

// HandlerOption configures the HTTP handlers.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	cache cache.Cache
	ttl   time.Duration
	guard func(http.Handler) http.Handler
}

// WithReportCache serves the encoded report from c for ttl before running the
// checks again, so frequent polling does not fan out probes on every request.
func WithReportCache(c cache.Cache, ttl time.Duration) HandlerOption {
	return func(o *handlerOptions) {
		o.cache = c
		o.ttl = ttl
	}
}

// WithReportGuard wraps the detailed report route registered by
// RegisterHandlers, typically with authentication middleware. Liveness and
// readiness stay open for load balancers.
func WithReportGuard(guard func(http.Handler) http.Handler) HandlerOption {
	return func(o *handlerOptions) {
		o.guard = guard
	}
}

func applyHandlerOptions(opts []HandlerOption) handlerOptions {
	var o handlerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LivenessHandler returns an HTTP handler for liveness probes.
// This is a simple check that the service is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler returns an HTTP handler that reports the verdict only.
func ReadinessHandler(src Source, opts ...HandlerOption) http.HandlerFunc {
	o := applyHandlerOptions(opts)

	return func(w http.ResponseWriter, r *http.Request) {
		_, overall, err := o.snapshot(r.Context(), src)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(statusCode(overall))

		switch overall {
		case OverallHealthy:
			_, _ = w.Write([]byte("OK"))
		default:
			_, _ = w.Write([]byte(overall.String()))
		}
	}
}

// ReportHandler returns an HTTP handler that serves the full JSON report.
func ReportHandler(src Source, opts ...HandlerOption) http.HandlerFunc {
	o := applyHandlerOptions(opts)

	return func(w http.ResponseWriter, r *http.Request) {
		body, overall, err := o.snapshot(r.Context(), src)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode(overall))
		_, _ = w.Write(body)
	}
}

// CheckHandler returns an HTTP handler for running a single check.
func CheckHandler(v *Validator, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := v.Check(r.Context(), id)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			})
			return
		}

		if result.Passed() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

// CheckPathHandler serves the check named by the {id} wildcard of patterns
// such as "GET /health/checks/{id}".
func CheckPathHandler(v *Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		CheckHandler(v, r.PathValue("id"))(w, r)
	}
}

// RegisterHandlers registers all health check handlers on the given mux.
func RegisterHandlers(mux *http.ServeMux, src Source, opts ...HandlerOption) {
	mux.HandleFunc("/healthz", LivenessHandler())
	mux.HandleFunc("/readyz", ReadinessHandler(src, opts...))

	var report http.Handler = ReportHandler(src, opts...)
	if o := applyHandlerOptions(opts); o.guard != nil {
		report = o.guard(report)
	}
	mux.Handle("/health", report)
}

// snapshot returns the encoded report and its verdict, from cache when fresh.
func (o handlerOptions) snapshot(ctx context.Context, src Source) ([]byte, Overall, error) {
	if o.cache != nil {
		if body, ok := o.cache.Get(ctx, reportCacheKey); ok {
			var head struct {
				Overall Overall `json:"overall"`
			}
			if err := json.Unmarshal(body, &head); err == nil {
				return body, head.Overall, nil
			}
			// Unreadable entries are dropped and rebuilt
			_ = o.cache.Delete(ctx, reportCacheKey)
		}
	}

	report := src.ValidateAll(ctx)
	body, err := json.Marshal(report)
	if err != nil {
		return nil, OverallFailed, err
	}

	if o.cache != nil {
		_ = o.cache.Set(ctx, reportCacheKey, body, o.ttl)
	}
	return body, report.Overall, nil
}

func statusCode(overall Overall) int {
	if overall == OverallFailed {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
