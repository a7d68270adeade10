package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	ShowFilter(ctx context.Context) error
	From(ctx context.Context, value string) error
	To(ctx context.Context, value string) error
	Apply(ctx context.Context) error
	Month(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, row string) error
}

const helpText = "Available commands: (l)ist, refresh, filter, from <date>, to <date>, apply, month, add, edit <n>, exit"

// runREPL starts a simple read–eval–print loop for the ledgerbook CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Unknown commands and missing arguments are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lb %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "filter":
			_ = a.ShowFilter(ctx)

		case "from", "to", "edit":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, usageArg(cmd)))
				continue
			}
			switch cmd {
			case "from":
				_ = a.From(ctx, strings.Join(args, " "))
			case "to":
				_ = a.To(ctx, strings.Join(args, " "))
			case "edit":
				_ = a.Edit(ctx, args[0])
			}

		case "apply":
			_ = a.Apply(ctx)

		case "month":
			_ = a.Month(ctx)

		case "add":
			_ = a.Add(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func usageArg(cmd string) string {
	if cmd == "edit" {
		return "row number"
	}
	return "YYYY-MM-DD[THH:mm]"
}
