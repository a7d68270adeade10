package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ledgerbook/internal/flagx"
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" apart from zero values so a partial file only overrides what
// it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RetryAttempts  *int            `json:"retry_attempts"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	LogFile        *string         `json:"log_file"`
	CatalogFile    *string         `json:"catalog_file"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.CatalogFile != nil {
		cfg.CatalogFile = *jc.CatalogFile
	}
	return nil
}
