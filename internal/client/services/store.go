package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/client"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
)

// ErrStaleResponse is returned by Query when a newer filter was applied or a
// newer query was issued while it was in flight. The snapshot is left as is.
var ErrStaleResponse = errors.New("stale response discarded")

// Status describes the last retrieval attempt.
type Status struct {
	// Loaded is false until the first successful retrieval.
	Loaded bool
	// Filter is the filter the snapshot was retrieved for.
	Filter models.Filter
	// Err is the error of the most recent attempt, nil after a success.
	Err       error
	UpdatedAt time.Time
}

// RecordStore mirrors the backend records for the applied filter. Every
// retrieval replaces the snapshot as a whole; mutations are followed by a
// fresh retrieval instead of local edits.
type RecordStore struct {
	client  client.Client
	filters *FilterController
	log     logging.Logger
	now     func() time.Time

	mu        sync.Mutex
	records   []models.Record
	status    Status
	issued    uint64
	committed uint64
	cancel    context.CancelFunc
}

func NewRecordStore(c client.Client, filters *FilterController, log logging.Logger) *RecordStore {
	return &RecordStore{client: c, filters: filters, log: log, now: time.Now}
}

// Query retrieves records for the currently applied filter. A query started
// earlier is cancelled; its response, if any, is discarded.
func (s *RecordStore) Query(ctx context.Context) error {
	s.mu.Lock()
	f, gen := s.filters.Applied()
	if s.cancel != nil {
		s.cancel()
	}
	qctx, cancel := context.WithCancel(ctx)
	s.issued++
	seq := s.issued
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	ctx = logging.ContextWith(ctx, "generation", gen, "seq", seq)
	qctx = logging.ContextWith(qctx, "generation", gen, "seq", seq)
	s.log.Debug(ctx, "querying records", "start", f.Start, "end", f.End)

	records, err := s.client.ListRecords(qctx, f.Query())

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued || seq <= s.committed || gen != s.filters.Generation() {
		s.log.Debug(ctx, "discarding stale response", "error", err)
		return ErrStaleResponse
	}
	s.cancel = nil

	if err != nil {
		s.status.Err = err
		s.log.Warn(ctx, "record query failed", "error", err)
		return err
	}

	s.records = records
	s.committed = seq
	s.status = Status{Loaded: true, Filter: f, UpdatedAt: s.now()}
	s.log.Debug(ctx, "records replaced", "count", len(records))
	return nil
}

// Create stores a new record and refreshes the snapshot.
func (s *RecordStore) Create(ctx context.Context, r models.Record) error {
	if err := s.client.CreateRecord(ctx, r); err != nil {
		return err
	}
	s.refresh(ctx, "create")
	return nil
}

// Update replaces a stored record and refreshes the snapshot.
func (s *RecordStore) Update(ctx context.Context, r models.Record) error {
	if err := s.client.UpdateRecord(ctx, r); err != nil {
		return err
	}
	s.refresh(ctx, "update")
	return nil
}

// Delete removes a stored record and refreshes the snapshot.
func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteRecord(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, "delete")
	return nil
}

// Snapshot returns a copy of the current records.
func (s *RecordStore) Snapshot() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *RecordStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// refresh re-queries after a successful mutation. Its failure is kept in
// Status rather than reported as a failed mutation.
func (s *RecordStore) refresh(ctx context.Context, op string) {
	err := s.Query(ctx)
	if err != nil && !errors.Is(err, ErrStaleResponse) {
		s.log.Warn(ctx, "refresh after mutation failed", "op", op, "error", err)
	}
}
