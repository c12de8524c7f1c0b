package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed below are looked at; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-t", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "store backend (sqlite, redis, memory)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "SQLite store path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address for the /metrics listener (empty: off)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
