package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/ledgerbook/internal/client/client"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

// fakeClient implements client.Client with overridable funcs; unused methods panic
// through the embedded nil interface.
type fakeClient struct {
	client.Client

	listRecords     func(ctx context.Context, q models.RecordQuery) ([]models.Record, error)
	listInstruments func(ctx context.Context) ([]models.Instrument, error)
	create          func(ctx context.Context, r models.Record) error
	update          func(ctx context.Context, r models.Record) error
	del             func(ctx context.Context, id int64) error

	mu         sync.Mutex
	queries    []models.RecordQuery
	instrCalls atomic.Int32
	mutations  []string
}

func (f *fakeClient) ListRecords(ctx context.Context, q models.RecordQuery) ([]models.Record, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.listRecords == nil {
		return []models.Record{}, nil
	}
	return f.listRecords(ctx, q)
}

func (f *fakeClient) ListInstruments(ctx context.Context) ([]models.Instrument, error) {
	f.instrCalls.Add(1)
	return f.listInstruments(ctx)
}

func (f *fakeClient) CreateRecord(ctx context.Context, r models.Record) error {
	f.record("create")
	if f.create == nil {
		return nil
	}
	return f.create(ctx, r)
}

func (f *fakeClient) UpdateRecord(ctx context.Context, r models.Record) error {
	f.record("update")
	if f.update == nil {
		return nil
	}
	return f.update(ctx, r)
}

func (f *fakeClient) DeleteRecord(ctx context.Context, id int64) error {
	f.record("delete")
	if f.del == nil {
		return nil
	}
	return f.del(ctx, id)
}

func (f *fakeClient) record(op string) {
	f.mu.Lock()
	f.mutations = append(f.mutations, op)
	f.mu.Unlock()
}

func (f *fakeClient) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}
