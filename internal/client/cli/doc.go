// Package cli provides the interactive ledgerbook command-line client.
//
// It wires configuration, the lookup catalog, the HTTP API client, the
// record services and the record form into a small REPL. Records are always
// shown for the applied date filter; editing the filter (from, to) only
// stages values until "apply" is entered.
//
// Commands:
//   - list | l         show records for the applied filter
//   - refresh          retry the last retrieval
//   - filter           show staged and applied filters
//   - from, to <date>  stage a boundary (YYYY-MM-DD or YYYY-MM-DDTHH:mm)
//   - apply            apply the staged filter and reload
//   - month            go back to the current month
//   - add              open the form for a new record
//   - edit <n>         open the form for row n of the last list
//   - exit | quit      leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
