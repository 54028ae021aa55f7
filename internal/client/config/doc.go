// Package config loads runtime configuration for the vitals CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the remote data service
//	-i int      remote request timeout (seconds)
//	-d string   path to the local SQLite database
//	-t string   access token
//	-z string   IANA time zone for calendar days, e.g. Europe/Riga
//	-l string   log level
//	-b string   log backend: slog or zap
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "db_path": "/home/me/.config/vitalkeeper/vitals.db",
//	  "access_token": "eyJ...",
//	  "time_zone": "Europe/Riga",
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
package config
