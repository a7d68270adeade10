// Package records stores ledger records for the reference backend.
package records

import (
	"context"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

// Repository describes the record and instrument operations the HTTP API
// exposes.
type Repository interface {
	// List returns records matching q ordered by date, then id. CARD records
	// carry the alias of their instrument.
	List(ctx context.Context, q models.RecordQuery) ([]models.Record, error)

	// Create stores r under a new id and returns the stored copy.
	Create(ctx context.Context, r models.Record) (models.Record, error)

	// Update replaces the record with r.ID.
	Update(ctx context.Context, r models.Record) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error

	// Instruments lists the known payment instruments.
	Instruments(ctx context.Context) ([]models.Instrument, error)
}
