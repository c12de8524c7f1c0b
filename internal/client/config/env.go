package config

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "TRIPCART_"

// parseEnv overlays cfg with TRIPCART_* variables. When env is nil the
// process environment is used, after loading ".env" if one exists; a
// missing ".env" is not an error. Panics on malformed values.
func parseEnv(ctx context.Context, cfg *Config, env map[string]string) {
	var lookuper envconfig.Lookuper
	if env == nil {
		_ = godotenv.Load()
		lookuper = envconfig.OsLookuper()
	} else {
		lookuper = envconfig.MapLookuper(env)
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(envPrefix, lookuper),
	})
	if err != nil {
		panic(err)
	}
}
