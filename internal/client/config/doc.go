// Package config loads runtime configuration for the ledgerbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations may be strings like "5s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "retry_attempts": 3,
//	  "log_format": "zerolog",
//	  "log_level": "info",
//	  "log_file": "ledgerbook.log",
//	  "catalog_file": "catalog.json"
//	}
//
// Environment variables are not read.
package config
