package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

// JsonConfig is the DTO for the JSON config file. Durations accept "1m" or
// integer nanoseconds. Absent fields keep the value of the previous layer.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	ExportURLValidity           *timex.Duration `json:"export_url_validity"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	LogLevel                    *string         `json:"log_level"`
	LogBackend                  *string         `json:"log_backend"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Read and decode errors panic.
func parseJson(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setIf(&config.S3RootUser, c.S3RootUser)
	setIf(&config.S3RootPassword, c.S3RootPassword)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.ExportURLValidity != nil {
		config.ExportURLValidity = c.ExportURLValidity.Duration
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogBackend, c.LogBackend)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
