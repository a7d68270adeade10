package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ledgerbook/internal/client/client"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"golang.org/x/sync/singleflight"
)

const instrumentsKey = "instruments"

// InstrumentDirectory fetches the payment instruments once and serves them
// from memory afterwards. Failed fetches are not cached.
type InstrumentDirectory struct {
	client client.Client
	log    logging.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	loaded bool
	cached []models.Instrument
}

func NewInstrumentDirectory(c client.Client, log logging.Logger) *InstrumentDirectory {
	return &InstrumentDirectory{client: c, log: log}
}

// List returns the instruments, fetching them on first use. Concurrent first
// calls share one request.
func (d *InstrumentDirectory) List(ctx context.Context) ([]models.Instrument, error) {
	if list, ok := d.cachedCopy(); ok {
		return list, nil
	}

	v, err, _ := d.group.Do(instrumentsKey, func() (any, error) {
		if list, ok := d.cachedCopy(); ok {
			return list, nil
		}
		list, err := d.client.ListInstruments(ctx)
		if err != nil {
			d.log.Warn(ctx, "instrument fetch failed", "error", err)
			return nil, err
		}
		d.mu.Lock()
		d.cached = append([]models.Instrument(nil), list...)
		d.loaded = true
		d.mu.Unlock()
		d.log.Debug(ctx, "instruments cached", "count", len(list))
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]models.Instrument(nil), v.([]models.Instrument)...), nil
}

// Lookup resolves an alias from the cache without fetching.
func (d *InstrumentDirectory) Lookup(id int64) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, in := range d.cached {
		if in.ID == id {
			return in.DisplayAlias, true
		}
	}
	return "", false
}

// Invalidate drops the cache so the next List fetches again.
func (d *InstrumentDirectory) Invalidate() {
	d.mu.Lock()
	d.loaded = false
	d.cached = nil
	d.mu.Unlock()
	d.group.Forget(instrumentsKey)
}

func (d *InstrumentDirectory) cachedCopy() ([]models.Instrument, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.loaded {
		return nil, false
	}
	return append([]models.Instrument(nil), d.cached...), true
}
