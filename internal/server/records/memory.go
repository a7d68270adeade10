package records

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/common"
)

// MemoryRepository keeps everything in process memory. It is safe for
// concurrent use.
type MemoryRepository struct {
	mu          sync.RWMutex
	nextID      int64
	records     map[int64]models.Record
	instruments []models.Instrument
	aliases     map[int64]string
}

func NewMemoryRepository(instruments []models.Instrument) *MemoryRepository {
	aliases := make(map[int64]string, len(instruments))
	for _, in := range instruments {
		aliases[in.ID] = in.DisplayAlias
	}
	return &MemoryRepository{
		nextID:      1,
		records:     make(map[int64]models.Record),
		instruments: append([]models.Instrument(nil), instruments...),
		aliases:     aliases,
	}
}

func (m *MemoryRepository) List(ctx context.Context, q models.RecordQuery) ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Record, 0, len(m.records))
	for _, r := range m.records {
		if !q.Matches(r) {
			continue
		}
		r = r.Clone()
		if r.InstrumentID != nil {
			r.InstrumentAlias = m.aliases[*r.InstrumentID]
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return *out[i].ID < *out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) Create(ctx context.Context, r models.Record) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(r); err != nil {
		return models.Record{}, err
	}

	r = r.Clone()
	r.ID = models.ID(m.nextID)
	r.InstrumentAlias = ""
	m.nextID++
	m.records[*r.ID] = r
	return r.Clone(), nil
}

func (m *MemoryRepository) Update(ctx context.Context, r models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == nil {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	if _, ok := m.records[*r.ID]; !ok {
		return fmt.Errorf("record %d: %w", *r.ID, common.ErrorNotFound)
	}
	if err := m.validate(r); err != nil {
		return err
	}

	r = r.Clone()
	r.InstrumentAlias = ""
	m.records[*r.ID] = r
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRepository) Instruments(ctx context.Context) ([]models.Instrument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Instrument{}, m.instruments...), nil
}

// validate checks the fields the backend owns; callers hold the lock.
func (m *MemoryRepository) validate(r models.Record) error {
	if r.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrorValidation)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if r.InstrumentID == nil {
		return nil
	}
	if !models.RequiresInstrument(r.PaymentType) {
		return fmt.Errorf("%w: instrument given for payment type %q", common.ErrorValidation, r.PaymentType)
	}
	if _, ok := m.aliases[*r.InstrumentID]; !ok {
		return fmt.Errorf("%w: unknown instrument %d", common.ErrorValidation, *r.InstrumentID)
	}
	return nil
}
