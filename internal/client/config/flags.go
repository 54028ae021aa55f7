package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-i", "-d", "-t", "-z", "-l", "-b"}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in knownFlags are parsed; the rest of os.Args is
// left to the command tree.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the data service")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "remote request timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "IANA time zone for calendar days")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

// Flags lists every flag LoadConfig consumes, including the config file flags.
func Flags() []string {
	return append([]string{"-c", "-config", "--config"}, knownFlags...)
}
