package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the value from the previous layer.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DBPath             *string         `json:"db_path"`
	AccessToken        *string         `json:"access_token"`
	TimeZone           *string         `json:"time_zone"`
	LogLevel           *string         `json:"log_level"`
	LogBackend         *string         `json:"log_backend"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without such a flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setIf(&cfg.DBPath, jc.DBPath)
	setIf(&cfg.AccessToken, jc.AccessToken)
	setIf(&cfg.TimeZone, jc.TimeZone)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
