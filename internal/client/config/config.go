package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the ledgerbook CLI.
//
// Fields:
//   - APIBaseURL: base URL every backend path is resolved against.
//   - RequestTimeout: per-request deadline applied by the HTTP client.
//   - RetryAttempts: retries of idempotent reads (list, instruments) on
//     network failures and 5xx answers; mutations are never retried.
//   - LogFormat / LogLevel: diagnostics logger (text, json, zerolog, zap).
//   - LogFile: where diagnostics go; empty means stderr.
//   - CatalogFile: optional JSON lookup catalog replacing the built-in one.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	RetryAttempts  int
	LogFormat      string
	LogLevel       string
	LogFile        string
	CatalogFile    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.RetryAttempts = 3
	c.LogFormat = "text"
	c.LogLevel = "warn"
	c.LogFile = ""
	c.CatalogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
