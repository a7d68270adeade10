package client

import (
	"context"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

// Client is the backend contract the record subsystem depends on.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	ListRecords(ctx context.Context, q models.RecordQuery) ([]models.Record, error)
	CreateRecord(ctx context.Context, r models.Record) error
	UpdateRecord(ctx context.Context, r models.Record) error
	DeleteRecord(ctx context.Context, id int64) error
	ListInstruments(ctx context.Context) ([]models.Instrument, error)
}
