package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the vitals CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the remote data service.
//   - RequestTimeout: upper bound for a single remote call.
//   - DBPath: location of the local SQLite database.
//   - AccessToken: bearer token issued by the service operator.
//   - TimeZone: IANA zone calendar days are counted in; empty means the system zone.
//   - LogLevel, LogBackend: see package logging.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	DBPath             string
	AccessToken        string
	TimeZone           string
	LogLevel           string
	LogBackend         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.DBPath = defaultDBPath()
	c.AccessToken = ""
	c.TimeZone = ""
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vitals.db"
	}
	return filepath.Join(dir, "vitalkeeper", "vitals.db")
}

// Location resolves TimeZone. "" and "Local" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
