// Package client talks to the ledger backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer.
// HTTPClient implements it with JSON over HTTP:
//
//	POST /records/list        RecordQuery  -> []Record
//	POST /records             Record       -> 2xx
//	POST /records/update      Record       -> 2xx
//	POST /records/{id}/delete              -> 2xx
//	GET  /instruments                      -> []Instrument
//	GET  /healthz                          -> 2xx
//
// All paths are resolved against a configured base URL. No authentication is
// sent.
//
// # Error Handling
//
// Network failures are reported as ErrUnavailable, non-2xx answers as
// *RejectionError (which matches ErrRejected with errors.Is). Context
// cancellation is passed through unchanged. Reads are retried with
// exponential backoff on ErrUnavailable and 5xx; mutations never are.
package client
