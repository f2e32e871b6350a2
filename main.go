package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skyezerfox/moss-ping/constants"
	"github.com/skyezerfox/moss-ping/ping"
	"github.com/skyezerfox/moss-ping/protocol"
	"github.com/spf13/pflag"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	cfg, flags, err := loadConfig(os.Args[1:], ".")
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.GetString("log.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.GetBool("write-config") {
		path, err := writeConfig(cfg, ".")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to write config")
		}
		log.Info().Str("file", path).Msg("Wrote config")
		return
	}

	server := cfg.GetString("ping.server")
	if flags.NArg() > 0 {
		server = flags.Arg(0)
	}
	port := uint16(cfg.GetUint("ping.port"))
	version := cfg.GetInt32("ping.protocol")

	if cfg.GetBool("dump-handshake") {
		if err := dumpHandshake(server, port, version); err != nil {
			log.Fatal().Err(err).Msg("Failed to build handshake")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pinger := ping.New(net.DefaultResolver,
		ping.WithConnectTimeout(cfg.GetDuration("ping.connect-timeout")),
		ping.WithIOTimeout(cfg.GetDuration("ping.io-timeout")),
	)

	log.Info().Str("server", server).Uint16("port", port).Int32("protocol", version).Msg("Pinging server...")
	status, err := pinger.Ping(ctx, server, port, version)
	if err != nil {
		var perr *ping.Error
		if errors.As(err, &perr) {
			log.Error().Err(perr.Err).Str("kind", perr.Kind.Error()).Str("stage", perr.Stage.String()).Msg("Failed to ping server")
		} else {
			log.Error().Err(err).Msg("Failed to ping server")
		}
		os.Exit(1)
	}

	if path := cfg.GetString("favicon"); path != "" {
		if err := writeFavicon(status, path); err != nil {
			log.Warn().Err(err).Msg("Failed to save favicon")
		} else {
			log.Info().Str("file", path).Msg("Saved favicon")
		}
	}

	if cfg.GetBool("dump") {
		out, err := status.MarshalIndent()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to serialize ping status")
		}
		fmt.Println(string(out))
		return
	}

	renderStatus(os.Stdout, server, status, cfg.GetBool("ansi"))
}

func dumpHandshake(server string, port uint16, version int32) error {
	frame, err := protocol.Handshake{
		ProtocolVersion: version,
		ServerAddress:   server,
		ServerPort:      port,
		NextState:       constants.NextStateStatus,
	}.Marshal()
	if err != nil {
		return err
	}
	decoded, err := protocol.ParseHandshake(frame)
	if err != nil {
		return errors.Wrap(err, "handshake does not decode")
	}
	fmt.Print(hex.Dump(frame))
	fmt.Printf("protocol=%d address=%q port=%d next_state=%d\n",
		decoded.ProtocolVersion, decoded.ServerAddress, decoded.ServerPort, decoded.NextState)
	return nil
}
