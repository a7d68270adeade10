package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/common"
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
)

var ErrInvalidBoundary = errors.New("invalid filter boundary")

// FilterListener is told about every applied filter together with its generation.
type FilterListener func(f models.Filter, generation uint64)

// FilterController keeps the filter being edited (staged) apart from the one
// records were last requested for (applied). Only Apply and Reset move staged
// values into applied, and each move bumps the generation.
type FilterController struct {
	now func() time.Time

	mu         sync.Mutex
	staged     models.Filter
	applied    models.Filter
	generation uint64
	listeners  map[int]FilterListener
	nextID     int
}

// NewFilterController starts with the calendar month containing now().
// A nil now means time.Now.
func NewFilterController(now func() time.Time) *FilterController {
	if now == nil {
		now = time.Now
	}
	start, end := timex.MonthRange(now())
	month := models.Filter{Start: start, End: end}
	return &FilterController{
		now:       now,
		staged:    month,
		applied:   month,
		listeners: make(map[int]FilterListener),
	}
}

// SetStagedStart accepts YYYY-MM-DDTHH:mm or a bare date meaning 00:00.
func (fc *FilterController) SetStagedStart(text string) error {
	t, err := parseBoundary(text, timex.StartOfDay)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.staged.Start = t
	fc.mu.Unlock()
	return nil
}

// SetStagedEnd accepts YYYY-MM-DDTHH:mm or a bare date meaning 23:59.
func (fc *FilterController) SetStagedEnd(text string) error {
	t, err := parseBoundary(text, timex.EndOfDay)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.staged.End = t
	fc.mu.Unlock()
	return nil
}

func (fc *FilterController) Staged() models.Filter {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.staged
}

// Applied returns the applied filter and the generation it was applied under.
func (fc *FilterController) Applied() (models.Filter, uint64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.applied, fc.generation
}

func (fc *FilterController) Generation() uint64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.generation
}

// Apply promotes the staged filter. An inverted range is rejected and the
// staged values are kept for correction.
func (fc *FilterController) Apply() error {
	fc.mu.Lock()
	if err := fc.staged.Validate(); err != nil {
		fc.mu.Unlock()
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	fc.applied = fc.staged
	fc.commitLocked()
	return nil
}

// Reset puts the current month into both staged and applied.
func (fc *FilterController) Reset() {
	start, end := timex.MonthRange(fc.now())
	fc.mu.Lock()
	fc.staged = models.Filter{Start: start, End: end}
	fc.applied = fc.staged
	fc.commitLocked()
}

// Subscribe registers fn for every future apply. Listeners run synchronously
// on the applying goroutine. The returned func removes the listener.
func (fc *FilterController) Subscribe(fn FilterListener) func() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	id := fc.nextID
	fc.nextID++
	fc.listeners[id] = fn
	return func() {
		fc.mu.Lock()
		delete(fc.listeners, id)
		fc.mu.Unlock()
	}
}

// commitLocked bumps the generation, releases the lock and notifies listeners.
func (fc *FilterController) commitLocked() {
	fc.generation++
	f, gen := fc.applied, fc.generation
	ids := make([]int, 0, len(fc.listeners))
	for id := range fc.listeners {
		ids = append(ids, id)
	}
	listeners := make([]FilterListener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, fc.listeners[id])
	}
	fc.mu.Unlock()

	for _, fn := range listeners {
		fn(f, gen)
	}
}

func parseBoundary(text string, dateOnly func(string) (time.Time, error)) (time.Time, error) {
	text = strings.TrimSpace(text)
	if t, err := timex.ParseLocal(text); err == nil {
		return t.Time, nil
	}
	if t, err := dateOnly(text); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %w: %q", common.ErrorValidation, ErrInvalidBoundary, text)
}
