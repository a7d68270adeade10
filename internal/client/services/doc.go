// Package services holds the client-side state behind the record screen: the
// cached instrument directory, the staged/applied date filter and the record
// store that mirrors the backend for the applied filter.
package services
