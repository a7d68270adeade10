// Package editor implements the record form: a small state machine that is
// closed, open for a new record or open for an existing one, and that talks to
// the record store only when the user confirms or deletes.
package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/catalog"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return "closed"
	}
}

// Notifier shows messages to the user.
type Notifier interface {
	Warn(msg string)
	Notice(msg string)
	Error(msg string)
}

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Store is the part of the record store the editor submits to.
type Store interface {
	Create(ctx context.Context, r models.Record) error
	Update(ctx context.Context, r models.Record) error
	Delete(ctx context.Context, id int64) error
}

// Instruments lists the payment instruments offered for card payments.
type Instruments interface {
	List(ctx context.Context) ([]models.Instrument, error)
}

// DeleteQuestion is what the Confirmer is asked before a delete.
const DeleteQuestion = "Delete this record?"

// Draft is the form state. A nil Amount means the field is empty and is
// submitted as 0.
type Draft struct {
	Type     models.RecordType
	Category string
	Method   models.PaymentMethod
	Content  string
	Detail   string
	Amount   *int64
	Date     timex.LocalDateTime
}

type Editor struct {
	catalog     *catalog.Catalog
	store       Store
	instruments Instruments
	notifier    Notifier
	confirmer   Confirmer
	log         logging.Logger
	now         func() time.Time

	mode    Mode
	origin  models.Record
	draft   Draft
	choices []models.Instrument
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock replaces time.Now as the source of the default date.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

func New(cat *catalog.Catalog, store Store, instruments Instruments, notifier Notifier, confirmer Confirmer,
	log logging.Logger, opts ...Option) *Editor {
	e := &Editor{
		catalog:     cat,
		store:       store,
		instruments: instruments,
		notifier:    notifier,
		confirmer:   confirmer,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Mode() Mode {
	return e.mode
}

// Draft returns a copy of the form state.
func (e *Editor) Draft() Draft {
	d := e.draft
	if d.Amount != nil {
		v := *d.Amount
		d.Amount = &v
	}
	return d
}

// Choices returns the instruments offered for the current card payment.
func (e *Editor) Choices() []models.Instrument {
	return append([]models.Instrument(nil), e.choices...)
}

// Origin returns the record being edited in update mode.
func (e *Editor) Origin() (models.Record, bool) {
	if e.mode != ModeUpdate {
		return models.Record{}, false
	}
	return e.origin.Clone(), true
}

// OpenForCreate starts an empty form dated now.
func (e *Editor) OpenForCreate() {
	e.reset()
	e.mode = ModeCreate
	e.draft.Date = timex.NewLocalDateTime(e.now()).Minute()
}

// OpenForUpdate loads r into the form. When r pays by card the instrument
// choices are fetched so the current instrument can be shown.
func (e *Editor) OpenForUpdate(ctx context.Context, r models.Record) {
	e.reset()
	e.mode = ModeUpdate
	e.origin = r.Clone()
	amount := r.Amount
	e.draft = Draft{
		Type:     r.Type,
		Category: r.Category,
		Method:   r.Method(),
		Content:  r.Content,
		Detail:   r.Detail,
		Amount:   &amount,
		Date:     r.Date.Minute(),
	}
	if models.RequiresInstrument(r.PaymentType) {
		e.loadChoices(ctx)
	}
}

func (e *Editor) SetType(t models.RecordType) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if !e.catalog.HasRecordType(t) {
		return fmt.Errorf("%w: record type %q", ErrUnknownCode, t)
	}
	e.draft.Type = t
	return nil
}

func (e *Editor) SetCategory(code string) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if !e.catalog.HasCategory(code) {
		return fmt.Errorf("%w: category %q", ErrUnknownCode, code)
	}
	e.draft.Category = code
	return nil
}

func (e *Editor) SetContent(s string) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	e.draft.Content = s
	return nil
}

func (e *Editor) SetDetail(s string) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	e.draft.Detail = s
	return nil
}

// SetAmount accepts digits only. Anything else is rejected with a warning and
// leaves the amount as it was. An empty string clears the field.
func (e *Editor) SetAmount(text string) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if text == "" {
		e.draft.Amount = nil
		return nil
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			e.notifier.Warn("Amount accepts digits only.")
			return ErrAmountNotDigits
		}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		e.notifier.Warn("Amount is too large.")
		return ErrAmountTooLarge
	}
	e.draft.Amount = &v
	return nil
}

// SetDate needs both date and time.
func (e *Editor) SetDate(text string) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	t, err := timex.ParseLocal(text)
	if err != nil {
		e.notifier.Warn("Enter the date as YYYY-MM-DDTHH:mm.")
		return fmt.Errorf("%w: %q", ErrInvalidDate, strings.TrimSpace(text))
	}
	e.draft.Date = t.Minute()
	return nil
}

// SetPaymentType switches the payment method. Moving to card keeps a
// previously chosen instrument and loads the choices; moving anywhere else
// drops the instrument.
func (e *Editor) SetPaymentType(ctx context.Context, code models.PaymentType) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if !e.catalog.HasPaymentType(code) {
		return fmt.Errorf("%w: payment type %q", ErrUnknownCode, code)
	}

	if !models.RequiresInstrument(code) {
		e.draft.Method = models.MethodOf(code, nil)
		e.choices = nil
		return nil
	}

	if _, ok := e.draft.Method.(models.Card); !ok {
		e.draft.Method = models.Card{}
	}
	e.loadChoices(ctx)
	return nil
}

// SelectInstrument picks one of Choices for a card payment. nil clears it.
func (e *Editor) SelectInstrument(id *int64) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if _, ok := e.draft.Method.(models.Card); !ok {
		return fmt.Errorf("%w: payment type is not %s", ErrUnknownInstrument, models.PaymentTypeCard)
	}
	if id == nil {
		e.draft.Method = models.Card{}
		return nil
	}
	for _, in := range e.choices {
		if in.ID == *id {
			e.draft.Method = models.Card{InstrumentID: models.ID(in.ID)}
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownInstrument, *id)
}

// Record builds what Confirm would submit.
func (e *Editor) Record() models.Record {
	r := models.Record{}
	if e.mode == ModeUpdate {
		r = e.origin.Clone()
	}
	r.Type = e.draft.Type
	r.Category = e.draft.Category
	r.Content = e.draft.Content
	r.Detail = e.draft.Detail
	r.Amount = 0
	if e.draft.Amount != nil {
		r.Amount = *e.draft.Amount
	}

	if e.mode != ModeUpdate || !e.draft.Date.Equal(e.origin.Date.Minute().Time) {
		r.Date = e.draft.Date
	}

	prev := r.InstrumentID
	r = r.WithMethod(e.draft.Method)
	if !sameID(prev, r.InstrumentID) {
		r.InstrumentAlias = e.alias(r.InstrumentID)
	}
	return r
}

// Confirm submits the form. On failure the form stays open with its data.
func (e *Editor) Confirm(ctx context.Context) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	r := e.Record()

	var err error
	if e.mode == ModeCreate {
		err = e.store.Create(ctx, r)
	} else {
		err = e.store.Update(ctx, r)
	}
	if err != nil {
		e.log.Warn(ctx, "save failed", "mode", e.mode.String(), "error", err)
		e.notifier.Error(fmt.Sprintf("Could not save the record: %v", err))
		return err
	}

	e.reset()
	e.notifier.Notice("Record saved.")
	return nil
}

// Delete removes the record being edited after the user confirms.
func (e *Editor) Delete(ctx context.Context) error {
	if err := e.requireOpen(); err != nil {
		return err
	}
	if e.mode != ModeUpdate || !e.origin.HasID() {
		return ErrWrongMode
	}

	ok, err := e.confirmer.Confirm(ctx, DeleteQuestion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeleteDeclined
	}

	if err := e.store.Delete(ctx, e.origin.IDValue()); err != nil {
		e.log.Warn(ctx, "delete failed", "id", e.origin.IDValue(), "error", err)
		e.notifier.Error(fmt.Sprintf("Could not delete the record: %v", err))
		return err
	}

	e.reset()
	e.notifier.Notice("Record deleted.")
	return nil
}

// Cancel closes the form and forgets its contents.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.mode = ModeClosed
	e.origin = models.Record{}
	e.draft = Draft{}
	e.choices = nil
}

func (e *Editor) requireOpen() error {
	if e.mode == ModeClosed {
		return ErrNotOpen
	}
	return nil
}

func (e *Editor) loadChoices(ctx context.Context) {
	list, err := e.instruments.List(ctx)
	if err != nil {
		e.log.Warn(ctx, "instrument list unavailable", "error", err)
		e.notifier.Warn("Instruments are unavailable, the record can be saved without one.")
		e.choices = nil
		return
	}
	e.choices = list
}

func (e *Editor) alias(id *int64) string {
	if id == nil {
		return ""
	}
	for _, in := range e.choices {
		if in.ID == *id {
			return in.DisplayAlias
		}
	}
	return ""
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
