package ping

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// Dialer opens stream connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

func (p *Pinger) connect(ctx context.Context, ep Endpoint) (net.Conn, error) {
	dctx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dctx, "tcp", ep.String())
	if err == nil {
		return conn, nil
	}

	// The caller giving up is not the server being slow.
	if ctx.Err() == nil && (errors.Is(dctx.Err(), context.DeadlineExceeded) || isTimeout(err)) {
		return nil, fail(ErrConnectTimeout, Connecting, errors.Errorf("no answer from %s within %v", ep, p.connectTimeout))
	}
	return nil, fail(ErrConnectFailed, Connecting, err)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
