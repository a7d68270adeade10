package cli

import (
	"context"
	"fmt"
)

// App is the editor's Notifier and Confirmer: messages go to the terminal.

func (a *App) Warn(msg string) {
	fmt.Fprintln(a.out, "Warning:", msg)
}

func (a *App) Notice(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) Error(msg string) {
	fmt.Fprintln(a.out, "Error:", msg)
}

func (a *App) Confirm(ctx context.Context, question string) (bool, error) {
	return AskYesNo(a.reader, question, a.out)
}
