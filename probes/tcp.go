package probes

import (
	"context"
	"net"

	"github.com/jonwraymond/launchgate/health"
)

// TCP checks that Address accepts connections.
type TCP struct {
	Address string
	Retry   Retry
}

// Probe implements health.Probe.
func (p TCP) Probe(ctx context.Context) (health.Outcome, error) {
	var dialer net.Dialer
	attempts, err := p.Retry.do(ctx, func(ctx context.Context) error {
		conn, err := dialer.DialContext(ctx, "tcp", p.Address)
		if err != nil {
			return err
		}
		return conn.Close()
	})

	details := map[string]any{"address": p.Address, "attempts": attempts}
	if err != nil {
		return health.Fail(err.Error()).WithDetails(details), nil
	}
	return health.Pass("connected").WithDetails(details), nil
}
