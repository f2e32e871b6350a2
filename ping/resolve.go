package ping

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/constants"
)

// Resolver is the subset of *net.Resolver the pinger needs. Implementations
// must be safe for concurrent use.
type Resolver interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Endpoint is a concrete address to connect to.
type Endpoint struct {
	IP   net.IP
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP.String(), strconv.Itoa(int(e.Port)))
}

func parseIP(host string) net.IP {
	return net.ParseIP(strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"))
}

// Target decides which host and port a ping to hostname should go to. IP
// literals are used as-is. Names are looked up as _minecraft._tcp SRV
// records; when that lookup errors the name and default port are used,
// unless ctx ended while it ran.
func (p *Pinger) Target(ctx context.Context, hostname string, defaultPort uint16) (string, uint16, error) {
	if ip := parseIP(hostname); ip != nil {
		return ip.String(), defaultPort, nil
	}

	_, records, err := p.resolver.LookupSRV(ctx, constants.SRVService, constants.SRVProto, hostname)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", 0, fail(ErrConnectFailed, ResolvingHost, ctxErr)
		}
		p.log.Debug().Err(err).Str("host", hostname).Msg("No SRV record, using host as given")
		return hostname, defaultPort, nil
	}
	if len(records) == 0 {
		return "", 0, fail(ErrSrvResolutionFailed, ResolvingHost, errors.Errorf("no SRV records found for %s", hostname))
	}

	srv := records[0]
	target := strings.TrimSuffix(srv.Target, ".")
	p.log.Debug().Str("host", hostname).Str("target", target).Uint16("port", srv.Port).Msg("Using SRV record")
	return target, srv.Port, nil
}

// Resolve turns hostname into the endpoint a ping would connect to.
func (p *Pinger) Resolve(ctx context.Context, hostname string, defaultPort uint16) (Endpoint, error) {
	host, port, err := p.Target(ctx, hostname, defaultPort)
	if err != nil {
		return Endpoint{}, err
	}
	if ip := parseIP(host); ip != nil {
		return Endpoint{IP: ip, Port: port}, nil
	}

	addrs, err := p.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Endpoint{}, fail(ErrConnectFailed, ResolvingHost, ctxErr)
		}
		return Endpoint{}, fail(ErrHostResolutionFailed, ResolvingHost, err)
	}
	if len(addrs) == 0 {
		return Endpoint{}, fail(ErrHostResolutionFailed, ResolvingHost, errors.Errorf("no addresses found for %s", host))
	}
	return Endpoint{IP: addrs[0].IP, Port: port}, nil
}
