// Package config describes the reference backend settings. Values come from
// command-line flags parsed with kong in cmd/server.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

// Config holds runtime settings for the reference backend.
type Config struct {
	Addr            string        `help:"Address to listen on." default:":8080"`
	Instruments     []string      `name:"instrument" help:"Seed instrument as id=alias (repeatable)." default:"1=Everyday card,2=Travel card"`
	LogFormat       string        `help:"Log format: text, json, zerolog, zap." default:"text" enum:"text,json,zerolog,zap"`
	LogLevel        string        `help:"Log level." default:"info"`
	ShutdownTimeout time.Duration `help:"Graceful shutdown timeout." default:"5s"`
}

// SeedInstruments parses the id=alias pairs.
func (c *Config) SeedInstruments() ([]models.Instrument, error) {
	out := make([]models.Instrument, 0, len(c.Instruments))
	seen := make(map[int64]bool, len(c.Instruments))
	for _, item := range c.Instruments {
		idText, alias, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(alias) == "" {
			return nil, fmt.Errorf("instrument %q must be id=alias", item)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: %w", item, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("instrument id %d given twice", id)
		}
		seen[id] = true
		out = append(out, models.Instrument{ID: id, DisplayAlias: strings.TrimSpace(alias)})
	}
	return out, nil
}
