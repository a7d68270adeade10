// Package models defines the ledger records, payment methods and filters
// exchanged between the client and the backend.
package models

import (
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
)

// RecordType classifies a record as money going out or coming in.
type RecordType string

const (
	RecordTypeExpense RecordType = "EXPENSE"
	RecordTypeIncome  RecordType = "INCOME"
)

// Record is one ledger entry. ID is nil until the backend stores it.
//
// InstrumentID is only populated when PaymentType is PaymentTypeCard;
// InstrumentAlias is filled in by the backend for display and never sent as input.
type Record struct {
	ID              *int64              `json:"id,omitempty"`
	Type            RecordType          `json:"type"`
	Category        string              `json:"category"`
	PaymentType     PaymentType         `json:"paymentType"`
	InstrumentID    *int64              `json:"instrumentId"`
	InstrumentAlias string              `json:"instrumentAlias,omitempty"`
	Content         string              `json:"content"`
	Detail          string              `json:"detail"`
	Amount          int64               `json:"amount"`
	Date            timex.LocalDateTime `json:"date"`
}

// Method derives the tagged payment method from the flat wire fields.
func (r Record) Method() PaymentMethod {
	return MethodOf(r.PaymentType, r.InstrumentID)
}

// WithMethod returns a copy of r whose payment fields are taken from m.
// Anything but Card leaves InstrumentID nil.
func (r Record) WithMethod(m PaymentMethod) Record {
	if m == nil {
		r.PaymentType = ""
		r.InstrumentID = nil
		r.InstrumentAlias = ""
		return r
	}
	r.PaymentType = m.PaymentType()
	r.InstrumentID = cloneID(m.instrument())
	if r.InstrumentID == nil {
		r.InstrumentAlias = ""
	}
	return r
}

// Normalize enforces the instrument invariant on a record built elsewhere.
func (r Record) Normalize() Record {
	if r.PaymentType == "" {
		r.InstrumentID = nil
		r.InstrumentAlias = ""
		return r
	}
	return r.WithMethod(r.Method())
}

// HasID reports whether the record was persisted.
func (r Record) HasID() bool {
	return r.ID != nil
}

// IDValue returns the id or 0 for unsaved records.
func (r Record) IDValue() int64 {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// Clone returns a deep copy; pointer fields are not shared.
func (r Record) Clone() Record {
	r.ID = cloneID(r.ID)
	r.InstrumentID = cloneID(r.InstrumentID)
	return r
}

// ID returns a pointer to a copy of v, handy for literals.
func ID(v int64) *int64 {
	return &v
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
