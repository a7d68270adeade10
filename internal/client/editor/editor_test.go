package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/catalog"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created []models.Record
	updated []models.Record
	deleted []int64
	err     error
}

func (s *fakeStore) Create(ctx context.Context, r models.Record) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, r)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, r models.Record) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, r)
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeInstruments struct {
	list  []models.Instrument
	err   error
	calls int
}

func (f *fakeInstruments) List(ctx context.Context) ([]models.Instrument, error) {
	f.calls++
	return f.list, f.err
}

type recordingNotifier struct {
	warns, notices, errs []string
}

func (n *recordingNotifier) Warn(msg string)   { n.warns = append(n.warns, msg) }
func (n *recordingNotifier) Notice(msg string) { n.notices = append(n.notices, msg) }
func (n *recordingNotifier) Error(msg string)  { n.errs = append(n.errs, msg) }

type answer struct {
	yes   bool
	err   error
	asked []string
}

func (a *answer) Confirm(ctx context.Context, q string) (bool, error) {
	a.asked = append(a.asked, q)
	return a.yes, a.err
}

type fixture struct {
	ed          *Editor
	store       *fakeStore
	instruments *fakeInstruments
	notifier    *recordingNotifier
	confirmer   *answer
}

func newFixture() *fixture {
	f := &fixture{
		store:       &fakeStore{},
		instruments: &fakeInstruments{list: []models.Instrument{{ID: 1, DisplayAlias: "Blue card"}, {ID: 2, DisplayAlias: "Travel card"}}},
		notifier:    &recordingNotifier{},
		confirmer:   &answer{},
	}
	f.ed = New(catalog.Default(), f.store, f.instruments, f.notifier, f.confirmer, logging.Nop(),
		WithClock(func() time.Time { return time.Date(2026, 10, 15, 9, 41, 27, 5, time.Local) }))
	return f
}

func stored() models.Record {
	return models.Record{
		ID:              models.ID(7),
		Type:            models.RecordTypeExpense,
		Category:        "MEAL",
		PaymentType:     models.PaymentTypeCard,
		InstrumentID:    models.ID(1),
		InstrumentAlias: "Blue card",
		Content:         "lunch",
		Detail:          "with team",
		Amount:          12000,
		Date:            timex.NewLocalDateTime(time.Date(2026, 10, 2, 12, 30, 45, 0, time.Local)),
	}
}

func TestOpenForCreate(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()

	assert.Equal(t, ModeCreate, f.ed.Mode())
	d := f.ed.Draft()
	assert.Nil(t, d.Amount)
	assert.Empty(t, d.Content)
	assert.Nil(t, d.Method)
	assert.Equal(t, "2026-10-15T09:41", d.Date.Display())
	assert.Zero(t, d.Date.Second())
}

func TestSetters_RequireOpenEditor(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.ed.SetContent("x"), ErrNotOpen)
	assert.ErrorIs(t, f.ed.SetAmount("1"), ErrNotOpen)
	assert.ErrorIs(t, f.ed.Confirm(context.Background()), ErrNotOpen)
	assert.ErrorIs(t, f.ed.Delete(context.Background()), ErrNotOpen)
}

func TestSetAmount(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()

	require.NoError(t, f.ed.SetAmount("1230"))
	assert.Equal(t, int64(1230), *f.ed.Draft().Amount)

	err := f.ed.SetAmount("12a3")
	require.ErrorIs(t, err, ErrAmountNotDigits)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(1230), *f.ed.Draft().Amount)
	assert.Len(t, f.notifier.warns, 1)

	for _, bad := range []string{"-5", "1.5", " 12", "1,000"} {
		assert.ErrorIs(t, f.ed.SetAmount(bad), ErrAmountNotDigits, bad)
	}
	assert.ErrorIs(t, f.ed.SetAmount("99999999999999999999"), ErrAmountTooLarge)
	assert.Equal(t, int64(1230), *f.ed.Draft().Amount)

	require.NoError(t, f.ed.SetAmount(""))
	assert.Nil(t, f.ed.Draft().Amount)
	require.NoError(t, f.ed.SetContent("coffee"))
	require.NoError(t, f.ed.Confirm(context.Background()))
	require.Len(t, f.store.created, 1)
	assert.Equal(t, int64(0), f.store.created[0].Amount)
}

func TestSetDate(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()

	require.NoError(t, f.ed.SetDate("2026-10-01T07:05"))
	assert.Equal(t, "2026-10-01T07:05", f.ed.Draft().Date.Display())

	err := f.ed.SetDate("2026-10-01")
	require.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, "2026-10-01T07:05", f.ed.Draft().Date.Display())

	assert.ErrorIs(t, f.ed.SetDate("yesterday"), ErrInvalidDate)
}

func TestSetCodes_CheckedAgainstCatalog(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()

	require.NoError(t, f.ed.SetType(models.RecordTypeIncome))
	assert.ErrorIs(t, f.ed.SetType("LOAN"), ErrUnknownCode)
	require.NoError(t, f.ed.SetCategory("MEAL"))
	assert.ErrorIs(t, f.ed.SetCategory("NOPE"), ErrUnknownCode)
	assert.ErrorIs(t, f.ed.SetPaymentType(context.Background(), "BARTER"), ErrUnknownCode)

	d := f.ed.Draft()
	assert.Equal(t, models.RecordTypeIncome, d.Type)
	assert.Equal(t, "MEAL", d.Category)
}

func TestUnchangedUpdateResubmitsOrigin(t *testing.T) {
	f := newFixture()
	origin := stored()
	f.ed.OpenForUpdate(context.Background(), origin)

	assert.Equal(t, "2026-10-02T12:30", f.ed.Draft().Date.Display())
	assert.Len(t, f.ed.Choices(), 2)

	require.NoError(t, f.ed.Confirm(context.Background()))
	require.Len(t, f.store.updated, 1)
	if diff := cmp.Diff(origin, f.store.updated[0]); diff != "" {
		t.Errorf("resubmitted record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ModeClosed, f.ed.Mode())
}

func TestUpdate_ChangedDateReplacesSeconds(t *testing.T) {
	f := newFixture()
	f.ed.OpenForUpdate(context.Background(), stored())

	require.NoError(t, f.ed.SetDate("2026-10-03T12:30"))
	r := f.ed.Record()
	assert.Equal(t, "2026-10-03T12:30", r.Date.String())
}

func TestCardInstrumentSelection(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()
	ctx := context.Background()

	assert.ErrorIs(t, f.ed.SelectInstrument(models.ID(1)), ErrUnknownInstrument)

	require.NoError(t, f.ed.SetPaymentType(ctx, models.PaymentTypeCard))
	assert.Len(t, f.ed.Choices(), 2)
	assert.Nil(t, f.ed.Record().InstrumentID)

	assert.ErrorIs(t, f.ed.SelectInstrument(models.ID(9)), ErrUnknownInstrument)
	require.NoError(t, f.ed.SelectInstrument(models.ID(2)))
	r := f.ed.Record()
	assert.Equal(t, int64(2), *r.InstrumentID)
	assert.Equal(t, "Travel card", r.InstrumentAlias)

	require.NoError(t, f.ed.SelectInstrument(nil))
	assert.Nil(t, f.ed.Record().InstrumentID)
}

func TestCardWithoutInstrumentSubmitsNull(t *testing.T) {
	f := newFixture()
	f.ed.OpenForCreate()
	require.NoError(t, f.ed.SetPaymentType(context.Background(), models.PaymentTypeCard))
	require.NoError(t, f.ed.Confirm(context.Background()))

	require.Len(t, f.store.created, 1)
	assert.Equal(t, models.PaymentTypeCard, f.store.created[0].PaymentType)
	assert.Nil(t, f.store.created[0].InstrumentID)
	assert.Nil(t, f.store.created[0].ID)
}

func TestSwitchingAwayFromCardDropsInstrument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.ed.OpenForUpdate(ctx, stored())

	require.NoError(t, f.ed.SetPaymentType(ctx, models.PaymentTypeCash))
	assert.Empty(t, f.ed.Choices())

	require.NoError(t, f.ed.SetPaymentType(ctx, models.PaymentTypeCard))
	require.NoError(t, f.ed.SetPaymentType(ctx, models.PaymentTypeTransfer))
	require.NoError(t, f.ed.Confirm(ctx))

	require.Len(t, f.store.updated, 1)
	got := f.store.updated[0]
	assert.Equal(t, models.PaymentTypeTransfer, got.PaymentType)
	assert.Nil(t, got.InstrumentID)
	assert.Empty(t, got.InstrumentAlias)
}

func TestCardKeepsInstrumentWhenReselected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.ed.OpenForUpdate(ctx, stored())

	require.NoError(t, f.ed.SetPaymentType(ctx, models.PaymentTypeCard))
	assert.Equal(t, int64(1), *f.ed.Record().InstrumentID)
}

func TestInstrumentsUnavailable(t *testing.T) {
	f := newFixture()
	f.instruments.err = errors.New("offline")
	f.ed.OpenForCreate()

	require.NoError(t, f.ed.SetPaymentType(context.Background(), models.PaymentTypeCard))
	assert.Empty(t, f.ed.Choices())
	assert.Len(t, f.notifier.warns, 1)
}

func TestConfirmFailureKeepsForm(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("server said no")
	f.ed.OpenForCreate()
	require.NoError(t, f.ed.SetContent("rent"))
	require.NoError(t, f.ed.SetAmount("500"))

	require.Error(t, f.ed.Confirm(context.Background()))
	assert.Equal(t, ModeCreate, f.ed.Mode())
	assert.Equal(t, "rent", f.ed.Draft().Content)
	assert.Equal(t, int64(500), *f.ed.Draft().Amount)
	assert.Len(t, f.notifier.errs, 1)

	f.store.err = nil
	require.NoError(t, f.ed.Confirm(context.Background()))
	assert.Equal(t, ModeClosed, f.ed.Mode())
	assert.Len(t, f.store.created, 1)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("create mode", func(t *testing.T) {
		f := newFixture()
		f.ed.OpenForCreate()
		assert.ErrorIs(t, f.ed.Delete(ctx), ErrWrongMode)
		assert.Empty(t, f.confirmer.asked)
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture()
		f.ed.OpenForUpdate(ctx, stored())
		err := f.ed.Delete(ctx)
		require.ErrorIs(t, err, ErrDeleteDeclined)
		require.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, []string{DeleteQuestion}, f.confirmer.asked)
		assert.Empty(t, f.store.deleted)
		assert.Equal(t, ModeUpdate, f.ed.Mode())
		assert.Empty(t, f.notifier.notices)
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture()
		f.confirmer.yes = true
		f.ed.OpenForUpdate(ctx, stored())
		require.NoError(t, f.ed.Delete(ctx))
		assert.Equal(t, []int64{7}, f.store.deleted)
		assert.Equal(t, ModeClosed, f.ed.Mode())
		assert.Equal(t, []string{"Record deleted."}, f.notifier.notices)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture()
		f.confirmer.yes = true
		f.store.err = errors.New("gone")
		f.ed.OpenForUpdate(ctx, stored())
		require.Error(t, f.ed.Delete(ctx))
		assert.Equal(t, ModeUpdate, f.ed.Mode())
		assert.Equal(t, "lunch", f.ed.Draft().Content)
		assert.Len(t, f.notifier.errs, 1)
	})
}

func TestCancel(t *testing.T) {
	f := newFixture()
	f.ed.OpenForUpdate(context.Background(), stored())
	f.ed.Cancel()

	assert.Equal(t, ModeClosed, f.ed.Mode())
	assert.Equal(t, Draft{}, f.ed.Draft())
	_, ok := f.ed.Origin()
	assert.False(t, ok)
	assert.Empty(t, f.store.updated)
}
