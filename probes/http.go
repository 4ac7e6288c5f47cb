package probes

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jonwraymond/launchgate/health"
)

// HTTP checks that a GET of URL answers with ExpectStatus.
type HTTP struct {
	URL string

	// ExpectStatus is the required response status.
	// Default: 200
	ExpectStatus int

	// Client performs the request.
	// Default: a client without its own timeout; the check deadline applies.
	Client *http.Client

	Retry Retry
}

// Probe implements health.Probe.
func (p HTTP) Probe(ctx context.Context) (health.Outcome, error) {
	want := p.ExpectStatus
	if want == 0 {
		want = http.StatusOK
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return health.Outcome{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "launchgate")

	var status int
	attempts, err := p.Retry.do(ctx, func(context.Context) error {
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()

		status = resp.StatusCode
		if status != want {
			return fmt.Errorf("status %d, want %d", status, want)
		}
		return nil
	})

	details := map[string]any{"url": req.URL.Redacted(), "attempts": attempts}
	if status != 0 {
		details["status_code"] = status
	}
	if err != nil {
		return health.Fail(err.Error()).WithDetails(details), nil
	}
	return health.Pass(fmt.Sprintf("status %d", status)).WithDetails(details), nil
}
