// Package ping queries Minecraft Java servers for their status using the
// server list ping exchange.
package ping

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skyezerfox/moss-ping/constants"
	"github.com/skyezerfox/moss-ping/models"
	"github.com/skyezerfox/moss-ping/protocol"
)

// Pinger performs status pings. It holds no per-call state and may be used
// from many goroutines at once.
type Pinger struct {
	resolver       Resolver
	dialer         Dialer
	connectTimeout time.Duration
	ioTimeout      time.Duration
	log            zerolog.Logger
}

// Option configures a Pinger.
type Option func(*Pinger)

// WithDialer replaces the dialer used to reach servers.
func WithDialer(d Dialer) Option {
	return func(p *Pinger) {
		p.dialer = d
	}
}

// WithConnectTimeout bounds how long connecting may take.
func WithConnectTimeout(d time.Duration) Option {
	return func(p *Pinger) {
		p.connectTimeout = d
	}
}

// WithIOTimeout bounds the handshake and response exchange once connected.
// Zero means no bound.
func WithIOTimeout(d time.Duration) Option {
	return func(p *Pinger) {
		p.ioTimeout = d
	}
}

// WithLogger sets the logger stage transitions are reported to.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pinger) {
		p.log = l
	}
}

// New creates a Pinger that resolves names through resolver.
func New(resolver Resolver, opts ...Option) *Pinger {
	p := &Pinger{
		resolver:       resolver,
		dialer:         &net.Dialer{},
		connectTimeout: constants.ConnectTimeout,
		log:            log.With().Str("component", "ping").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping pings hostname with the default resolver and settings.
func Ping(ctx context.Context, hostname string, defaultPort uint16, protocolVersion int32) (*models.ServerStatus, error) {
	return New(net.DefaultResolver).Ping(ctx, hostname, defaultPort, protocolVersion)
}

// Ping asks the server behind hostname for its status. A failure at any
// step ends the exchange and is returned as an *Error.
func (p *Pinger) Ping(ctx context.Context, hostname string, defaultPort uint16, protocolVersion int32) (*models.ServerStatus, error) {
	logger := p.log.With().Str("host", hostname).Logger()

	logger.Debug().Str("stage", ResolvingHost.String()).Msg("Ping")
	ep, err := p.Resolve(ctx, hostname, defaultPort)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("stage", Connecting.String()).Str("addr", ep.String()).Msg("Ping")
	conn, err := p.connect(ctx, ep)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	if p.ioTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(p.ioTimeout)); err != nil {
			return nil, fail(ErrConnectFailed, Connecting, err)
		}
	}

	payload, stage, err := p.exchange(conn, hostname, ep.Port, protocolVersion, logger)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fail(ErrConnectFailed, stage, ctxErr)
		}
		return nil, err
	}

	logger.Debug().Str("stage", ParsingJSON.String()).Int("bytes", len(payload)).Msg("Ping")
	status, err := models.ParseStatus([]byte(payload))
	if err != nil {
		return nil, fail(ErrJSON, ParsingJSON, err)
	}

	logger.Debug().Str("stage", Done.String()).Str("version", status.Version.Name).Msg("Ping")
	return status, nil
}

func (p *Pinger) exchange(conn net.Conn, hostname string, port uint16, protocolVersion int32, logger zerolog.Logger) (string, Stage, error) {
	logger.Debug().Str("stage", SendingHandshake.String()).Int32("protocol", protocolVersion).Msg("Ping")
	handshake, err := protocol.Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   hostname,
		ServerPort:      port,
		NextState:       constants.NextStateStatus,
	}.Marshal()
	if err != nil {
		return "", SendingHandshake, fail(ErrEncoding, SendingHandshake, err)
	}
	if _, err := conn.Write(handshake); err != nil {
		return "", SendingHandshake, fail(ErrConnectFailed, SendingHandshake, err)
	}

	logger.Debug().Str("stage", SendingStatusRequest.String()).Msg("Ping")
	if _, err := conn.Write(protocol.StatusRequest()); err != nil {
		return "", SendingStatusRequest, fail(ErrConnectFailed, SendingStatusRequest, err)
	}

	logger.Debug().Str("stage", ReadingResponse.String()).Msg("Ping")
	payload, err := protocol.ReadStatusResponse(bufio.NewReader(conn))
	if err != nil {
		return "", ReadingResponse, fail(classify(err), ReadingResponse, err)
	}
	return payload, ReadingResponse, nil
}

// classify maps a response read failure onto an error kind. Framing
// problems win over codec problems so a bad length prefix reads as a
// protocol error.
func classify(err error) error {
	if !protocol.IsFramingError(err) && protocol.IsEncodingError(err) {
		return ErrEncoding
	}
	return ErrProtocol
}
