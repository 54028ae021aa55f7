package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is read, when present, before the environment is consulted.
// Variables already set in the process environment win over the file.
var envFile = ".env"

// parseEnv overlays Config with VITALKEEPER_* variables.
//
//	VITALKEEPER_GRPC_ADDR, VITALKEEPER_HTTP_ADDR, VITALKEEPER_DATABASE_DSN,
//	VITALKEEPER_SECRET_KEY, VITALKEEPER_TOKEN_TTL (duration),
//	VITALKEEPER_S3_USER, VITALKEEPER_S3_PASSWORD, VITALKEEPER_S3_BUCKET,
//	VITALKEEPER_S3_REGION, VITALKEEPER_S3_ENDPOINT,
//	VITALKEEPER_EXPORT_URL_TTL (duration), VITALKEEPER_ALLOWED_ORIGINS
//	(comma separated), VITALKEEPER_LOG_LEVEL, VITALKEEPER_LOG_BACKEND.
//
// A malformed duration panics, like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("VITALKEEPER_GRPC_ADDR", &cfg.EndpointAddrGRPC)
	str("VITALKEEPER_HTTP_ADDR", &cfg.EndpointAddrHTTP)
	str("VITALKEEPER_DATABASE_DSN", &cfg.DatabaseDSN)
	str("VITALKEEPER_SECRET_KEY", &cfg.SecretKey)
	dur("VITALKEEPER_TOKEN_TTL", &cfg.AccessTokenValidityDuration)
	str("VITALKEEPER_S3_USER", &cfg.S3RootUser)
	str("VITALKEEPER_S3_PASSWORD", &cfg.S3RootPassword)
	str("VITALKEEPER_S3_BUCKET", &cfg.S3Bucket)
	str("VITALKEEPER_S3_REGION", &cfg.S3Region)
	str("VITALKEEPER_S3_ENDPOINT", &cfg.S3BaseEndpoint)
	dur("VITALKEEPER_EXPORT_URL_TTL", &cfg.ExportURLValidity)
	str("VITALKEEPER_LOG_LEVEL", &cfg.LogLevel)
	str("VITALKEEPER_LOG_BACKEND", &cfg.LogBackend)

	if v, ok := os.LookupEnv("VITALKEEPER_ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
