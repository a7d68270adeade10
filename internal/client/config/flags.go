package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/flagx"
)

var clientFlags = []string{"-a", "-t", "-r", "-l", "-v", "-o", "-k"}

// parseFlags populates Config fields from command-line flags:
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-r int      retry attempts for reads
//	-l string   log format: text, json, zerolog, zap
//	-v string   log level: debug, info, warn, error
//	-o string   log file (stderr when empty)
//	-k string   catalog JSON file
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("ledgerbook", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.RetryAttempts, "r", cfg.RetryAttempts, "retry attempts for reads")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json, zerolog, zap")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "o", cfg.LogFile, "log file")
	fs.StringVar(&cfg.CatalogFile, "k", cfg.CatalogFile, "catalog JSON file")

	if err := fs.Parse(flagx.FilterArgs(args, clientFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must not be negative, got %d", cfg.RetryAttempts)
	}

	return nil
}
