package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ledgerbook/internal/client/catalog"
	"github.com/dmitrijs2005/ledgerbook/internal/client/editor"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
)

// clearValue empties an optional text field.
const clearValue = "-"

var errValueRequired = errors.New("a value is required")

// runForm walks the user through the open editor and ends with save, delete
// or cancel. A failed save or delete keeps the form and its data.
func (a *App) runForm(ctx context.Context) error {
	if err := a.fillForm(ctx); err != nil {
		a.editor.Cancel()
		fmt.Fprintln(a.out, "Form closed:", err)
		return err
	}

	for {
		mode := a.editor.Mode()
		actions := "save, edit, cancel"
		if mode == editor.ModeUpdate {
			actions = "save, edit, delete, cancel"
		}

		choice, err := GetSimpleText(a.reader, "Action ("+actions+")", a.out)
		if err != nil {
			a.editor.Cancel()
			return err
		}

		switch strings.ToLower(choice) {
		case "save", "s":
			r := a.editor.Record()
			if err := a.editor.Confirm(ctx); err != nil {
				fmt.Fprintln(a.out, "Type 'save' to retry or 'cancel' to discard.")
				continue
			}
			a.refreshHint(ctx, r)
			return a.List(ctx)

		case "delete", "d":
			if mode != editor.ModeUpdate {
				fmt.Fprintln(a.out, "Only saved records can be deleted.")
				continue
			}
			r := a.editor.Record()
			err := a.editor.Delete(ctx)
			if errors.Is(err, editor.ErrDeleteDeclined) {
				fmt.Fprintln(a.out, "Not deleted.")
				continue
			}
			if err != nil {
				continue
			}
			a.refreshHint(ctx, r)
			return a.List(ctx)

		case "edit", "e":
			if err := a.fillForm(ctx); err != nil {
				a.editor.Cancel()
				fmt.Fprintln(a.out, "Form closed:", err)
				return err
			}

		case "cancel", "c":
			a.editor.Cancel()
			fmt.Fprintln(a.out, "Discarded.")
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown action:", choice)
		}
	}
}

func (a *App) fillForm(ctx context.Context) error {
	ed := a.editor

	steps := []func() error{
		func() error {
			return a.ask("Type "+entries(a.catalog.RecordTypes()), string(ed.Draft().Type), true, func(s string) error {
				return ed.SetType(models.RecordType(strings.ToUpper(s)))
			})
		},
		func() error {
			return a.ask("Category "+entries(a.catalog.CategoriesFor(ed.Draft().Type)), ed.Draft().Category, true, func(s string) error {
				return ed.SetCategory(strings.ToUpper(s))
			})
		},
		func() error {
			current := ""
			if m := ed.Draft().Method; m != nil {
				current = string(m.PaymentType())
			}
			return a.ask("Payment "+entries(a.catalog.PaymentTypes()), current, true, func(s string) error {
				return ed.SetPaymentType(ctx, models.PaymentType(strings.ToUpper(s)))
			})
		},
		func() error { return a.askInstrument() },
		func() error {
			return a.ask("Content", ed.Draft().Content, false, ed.SetContent)
		},
		func() error {
			return a.ask("Detail ('-' clears)", ed.Draft().Detail, false, func(s string) error {
				if s == clearValue {
					s = ""
				}
				return ed.SetDetail(s)
			})
		},
		func() error {
			current := ""
			if amt := ed.Draft().Amount; amt != nil {
				current = strconv.FormatInt(*amt, 10)
			}
			return a.ask("Amount", current, false, ed.SetAmount)
		},
		func() error {
			return a.ask("Date (YYYY-MM-DDTHH:mm)", ed.Draft().Date.Display(), true, ed.SetDate)
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// askInstrument offers the instrument choices while the method is card.
func (a *App) askInstrument() error {
	card, ok := a.editor.Draft().Method.(models.Card)
	if !ok {
		return nil
	}
	choices := a.editor.Choices()
	if len(choices) == 0 {
		return nil
	}

	opts := make([]string, 0, len(choices))
	for _, in := range choices {
		opts = append(opts, fmt.Sprintf("%d=%s", in.ID, in.DisplayAlias))
	}
	current := ""
	if card.InstrumentID != nil {
		current = strconv.FormatInt(*card.InstrumentID, 10)
	}

	prompt := fmt.Sprintf("Instrument (%s; '-' for none)", strings.Join(opts, ", "))
	return a.ask(prompt, current, false, func(s string) error {
		if s == clearValue {
			return a.editor.SelectInstrument(nil)
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", editor.ErrUnknownInstrument, s)
		}
		return a.editor.SelectInstrument(&id)
	})
}

// ask prompts until set accepts the answer. Keeping the current value does not
// call set. Validation failures re-prompt; other errors, including end of
// input, end the form.
func (a *App) ask(prompt, current string, required bool, set func(string) error) error {
	for {
		s, err := GetWithDefault(a.reader, prompt, current, a.out)
		if err != nil {
			return err
		}
		if required && s == "" {
			fmt.Fprintln(a.out, "Error:", errValueRequired)
			continue
		}
		if s == current {
			return nil
		}
		err = set(s)
		if err == nil {
			return nil
		}
		if !errors.Is(err, editor.ErrValidation) {
			return err
		}
		if !notified(err) {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
}

// notified reports errors the editor already warned the user about.
func notified(err error) bool {
	return errors.Is(err, editor.ErrAmountNotDigits) ||
		errors.Is(err, editor.ErrAmountTooLarge) ||
		errors.Is(err, editor.ErrInvalidDate)
}

func entries(list []catalog.Entry) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, e.Code+"="+e.Label)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
