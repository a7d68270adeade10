package models

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/timex"
)

var ErrInvalidRange = errors.New("range end is before start")

// Filter is the date range records are retrieved for, both ends inclusive.
type Filter struct {
	Start time.Time
	End   time.Time
}

// Validate rejects inverted ranges.
func (f Filter) Validate() error {
	if f.End.Before(f.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether t lies within [Start, End].
func (f Filter) Contains(t time.Time) bool {
	return !t.Before(f.Start) && !t.After(f.End)
}

// Equal compares instants, ignoring monotonic clock and location.
func (f Filter) Equal(o Filter) bool {
	return f.Start.Equal(o.Start) && f.End.Equal(o.End)
}

// Query turns the filter into a list request body.
func (f Filter) Query() RecordQuery {
	start, end := timex.NewLocalDateTime(f.Start), timex.NewLocalDateTime(f.End)
	return RecordQuery{Start: &start, End: &end}
}

// RecordQuery is the body of the list request; nil fields are not filtered on.
type RecordQuery struct {
	Start        *timex.LocalDateTime `json:"start,omitempty"`
	End          *timex.LocalDateTime `json:"end,omitempty"`
	Type         *RecordType          `json:"type,omitempty"`
	Category     *string              `json:"category,omitempty"`
	PaymentType  *PaymentType         `json:"paymentType,omitempty"`
	InstrumentID *int64               `json:"instrumentId,omitempty"`
}

// Matches reports whether r satisfies every non-nil criterion of q.
func (q RecordQuery) Matches(r Record) bool {
	if q.Start != nil && r.Date.Before(q.Start.Time) {
		return false
	}
	if q.End != nil && r.Date.After(q.End.Time) {
		return false
	}
	if q.Type != nil && r.Type != *q.Type {
		return false
	}
	if q.Category != nil && r.Category != *q.Category {
		return false
	}
	if q.PaymentType != nil && r.PaymentType != *q.PaymentType {
		return false
	}
	if q.InstrumentID != nil && (r.InstrumentID == nil || *r.InstrumentID != *q.InstrumentID) {
		return false
	}
	return true
}
