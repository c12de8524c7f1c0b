// Package config loads runtime configuration for the tripcart CLI.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A ".env" file in the working directory, if present, then TRIPCART_*
//     environment variables (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-a string   base URL of the shopping-list API
//	-s string   store backend: sqlite, redis or memory
//	-d string   store DSN (SQLite file path)
//	-t int      per-request timeout in seconds
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://nt-shopping-list.onrender.com/api",
//	  "store_backend": "sqlite",
//	  "store_dsn": "tripcart.db",
//	  "redis_addr": "localhost:6379",
//	  "redis_db": 0,
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_pretty": true
//	}
package config
