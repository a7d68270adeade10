package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_WithMethod_DropsInstrument(t *testing.T) {
	r := Record{PaymentType: PaymentTypeCard, InstrumentID: ID(7), InstrumentAlias: "Blue"}

	tests := []struct {
		name   string
		method PaymentMethod
		want   PaymentType
		wantID *int64
	}{
		{"cash", Cash{}, PaymentTypeCash, nil},
		{"transfer", Transfer{}, PaymentTypeTransfer, nil},
		{"other", Other{}, PaymentTypeOther, nil},
		{"card keeps chosen", Card{InstrumentID: ID(9)}, PaymentTypeCard, ID(9)},
		{"card without instrument", Card{}, PaymentTypeCard, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.WithMethod(tt.method)
			assert.Equal(t, tt.want, got.PaymentType)
			assert.Equal(t, tt.wantID, got.InstrumentID)
			if tt.wantID == nil {
				assert.Empty(t, got.InstrumentAlias)
			}
		})
	}
}

func TestRecord_Normalize(t *testing.T) {
	r := Record{PaymentType: PaymentTypeCash, InstrumentID: ID(3)}
	assert.Nil(t, r.Normalize().InstrumentID)

	r = Record{PaymentType: PaymentTypeCard, InstrumentID: ID(3)}
	require.NotNil(t, r.Normalize().InstrumentID)
	assert.Equal(t, int64(3), *r.Normalize().InstrumentID)

	r = Record{InstrumentID: ID(3)}
	assert.Nil(t, r.Normalize().InstrumentID)
}

func TestMethodOf_UnknownCodeIsOther(t *testing.T) {
	m := MethodOf("VOUCHER", ID(1))
	assert.Equal(t, Other{Code: "VOUCHER"}, m)
	assert.Equal(t, PaymentType("VOUCHER"), m.PaymentType())
	assert.Nil(t, MethodOf("", nil))
}

func TestRecord_Clone_DoesNotShareIDs(t *testing.T) {
	r := Record{ID: ID(1), InstrumentID: ID(2)}
	c := r.Clone()
	*c.ID = 10
	*c.InstrumentID = 20
	assert.Equal(t, int64(1), *r.ID)
	assert.Equal(t, int64(2), *r.InstrumentID)
}

func TestRecord_JSON(t *testing.T) {
	r := Record{
		Type:        RecordTypeExpense,
		Category:    "MEAL",
		PaymentType: PaymentTypeCash,
		Content:     "lunch",
		Amount:      12000,
		Date:        timex.LocalDateTime{Time: time.Date(2026, time.October, 2, 12, 30, 0, 0, time.Local)},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"EXPENSE","category":"MEAL","paymentType":"CASH","instrumentId":null,
		"content":"lunch","detail":"","amount":12000,"date":"2026-10-02T12:30"}`, string(b))
}

func TestRecordQuery_Matches(t *testing.T) {
	f := Filter{
		Start: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2026, time.October, 31, 23, 59, 0, 0, time.Local),
	}
	q := f.Query()
	at := func(d time.Time) Record { return Record{Date: timex.LocalDateTime{Time: d}} }

	assert.True(t, q.Matches(at(f.Start)))
	assert.True(t, q.Matches(at(f.End)))
	assert.False(t, q.Matches(at(f.Start.Add(-time.Minute))))
	assert.False(t, q.Matches(at(f.End.Add(time.Minute))))

	card := PaymentTypeCard
	q.PaymentType = &card
	q.InstrumentID = ID(4)
	r := at(f.Start)
	r.PaymentType = PaymentTypeCard
	assert.False(t, q.Matches(r))
	r.InstrumentID = ID(4)
	assert.True(t, q.Matches(r))
}

func TestFilter_Validate(t *testing.T) {
	now := time.Now()
	require.NoError(t, Filter{Start: now, End: now}.Validate())
	require.ErrorIs(t, Filter{Start: now, End: now.Add(-time.Second)}.Validate(), ErrInvalidRange)
}
