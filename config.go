package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = "moss-ping"

// flagKeys maps flags onto the config keys they override.
var flagKeys = map[string]string{
	"server":          "ping.server",
	"port":            "ping.port",
	"protocol":        "ping.protocol",
	"connect-timeout": "ping.connect-timeout",
	"io-timeout":      "ping.io-timeout",
	"log-level":       "log.level",
}

// loadConfig parses args and layers them over the environment, an optional
// moss-ping.yaml in dir and the defaults. A missing config file is not an
// error and is never created here.
func loadConfig(args []string, dir string) (*viper.Viper, *pflag.FlagSet, error) {
	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.StringP("server", "s", constants.DefaultServer, "server hostname or IP")
	fs.Uint16P("port", "p", constants.DefaultPort, "server port, used when there is no SRV record")
	fs.Int32("protocol", constants.DefaultProtocol, "protocol version sent in the handshake")
	fs.Duration("connect-timeout", constants.ConnectTimeout, "how long to wait for the TCP connection")
	fs.Duration("io-timeout", 0, "bound on the handshake and response exchange (0 waits forever)")
	fs.String("log-level", "info", "log level")
	fs.Bool("dump", false, "print the raw status as JSON")
	fs.Bool("ansi", false, "render the MOTD with colours")
	fs.String("favicon", "", "write the server icon to this file")
	fs.Bool("dump-handshake", false, "print the handshake packet instead of pinging")
	fs.Bool("write-config", false, "write "+configName+".yaml with the current settings and exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("moss")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ping.server", constants.DefaultServer)
	v.SetDefault("ping.port", constants.DefaultPort)
	v.SetDefault("ping.protocol", constants.DefaultProtocol)
	v.SetDefault("ping.connect-timeout", constants.ConnectTimeout)
	v.SetDefault("ping.io-timeout", "10s")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, errors.Wrap(err, "read config")
		}
	}

	// flags win over the config file only when given
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, nil, errors.Wrapf(err, "bind flag %s", flag)
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, nil, errors.Wrap(err, "bind flags")
	}
	return v, fs, nil
}

// writeConfig saves the ping and log settings to moss-ping.yaml in dir.
// An existing file is left alone.
func writeConfig(v *viper.Viper, dir string) (string, error) {
	path := filepath.Join(dir, configName+".yaml")
	out := viper.New()
	for _, key := range flagKeys {
		out.Set(key, v.Get(key))
	}
	if err := out.SafeWriteConfigAs(path); err != nil {
		return "", errors.Wrap(err, "write config")
	}
	return path, nil
}
