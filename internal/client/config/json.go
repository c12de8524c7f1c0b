package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tripcart/internal/flagx"
	"github.com/dmitrijs2005/tripcart/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields distinguish "absent"
// from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	StoreBackend   *string         `json:"store_backend"`
	StoreDSN       *string         `json:"store_dsn"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisDB        *int            `json:"redis_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogPretty      *bool           `json:"log_pretty"`
	MetricsAddr    *string         `json:"metrics_addr"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without that flag nothing happens. Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
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

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StoreBackend != nil {
		cfg.StoreBackend = *jc.StoreBackend
	}
	if jc.StoreDSN != nil {
		cfg.StoreDSN = *jc.StoreDSN
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogPretty != nil {
		cfg.LogPretty = *jc.LogPretty
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
}
