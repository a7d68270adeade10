package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ledgerbook/internal/client/view"
)

func (a *App) getStatus() string {
	f, _ := a.filters.Applied()
	s := f.Start.Format(view.DateLayout) + " .. " + f.End.Format(view.DateLayout)
	if m := a.mode(); m != "" {
		s = s + " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

// Root loads the applied filter once and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ledgerbook (type 'help' for commands)")
	fmt.Fprintln(a.out, "Loading records...")

	a.reload(ctx)
	_ = a.List(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
