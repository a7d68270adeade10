package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/client/services"
	"github.com/dmitrijs2005/ledgerbook/internal/client/view"
)

// reload queries the applied filter. A discarded stale response is not a failure.
func (a *App) reload(ctx context.Context) {
	if err := a.store.Query(ctx); err != nil && !errors.Is(err, services.ErrStaleResponse) {
		a.log.Warn(ctx, "record retrieval failed", "error", err)
	}
}

// List renders the current snapshot with a totals line. After a failed
// retrieval the last good snapshot is kept and a retry hint is shown.
func (a *App) List(ctx context.Context) error {
	st := a.store.Status()
	if st.Err != nil {
		fmt.Fprintf(a.out, "Could not load records: %v. Type 'refresh' to retry.\n", st.Err)
	}
	if !st.Loaded {
		if st.Err == nil {
			fmt.Fprintln(a.out, "Loading records...")
		}
		return st.Err
	}

	records := a.store.Snapshot()
	if err := view.Render(a.out, view.Project(records, a.catalog), a.width()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, view.Total(records))
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	a.reload(ctx)
	return a.List(ctx)
}

func (a *App) ShowFilter(ctx context.Context) error {
	staged := a.filters.Staged()
	applied, gen := a.filters.Applied()
	fmt.Fprintf(a.out, "Staged:  %s .. %s\n", staged.Start.Format(view.DateLayout), staged.End.Format(view.DateLayout))
	fmt.Fprintf(a.out, "Applied: %s .. %s (#%d)\n", applied.Start.Format(view.DateLayout), applied.End.Format(view.DateLayout), gen)
	if !staged.Equal(applied) {
		fmt.Fprintln(a.out, "Type 'apply' to use the staged filter.")
	}
	return nil
}

func (a *App) From(ctx context.Context, value string) error {
	if err := a.filters.SetStagedStart(value); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	return a.ShowFilter(ctx)
}

func (a *App) To(ctx context.Context, value string) error {
	if err := a.filters.SetStagedEnd(value); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	return a.ShowFilter(ctx)
}

// Apply promotes the staged filter; the store reloads through its listener.
func (a *App) Apply(ctx context.Context) error {
	if err := a.filters.Apply(); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Month(ctx context.Context) error {
	a.filters.Reset()
	return a.List(ctx)
}

func (a *App) Add(ctx context.Context) error {
	a.editor.OpenForCreate()
	return a.runForm(ctx)
}

// Edit opens row n of the list as currently shown.
func (a *App) Edit(ctx context.Context, row string) error {
	n, err := strconv.Atoi(row)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %q is not a row number\n", row)
		return err
	}
	r, err := view.Select(view.Project(a.store.Snapshot(), a.catalog), n)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.editor.OpenForUpdate(ctx, r)
	return a.runForm(ctx)
}

func (a *App) refreshHint(ctx context.Context, r models.Record) {
	if st := a.store.Status(); st.Err != nil {
		a.log.Debug(ctx, "saved record not yet visible", "content", r.Content, "error", st.Err)
		fmt.Fprintln(a.out, "The list could not be refreshed. Type 'refresh' to retry.")
	}
}
