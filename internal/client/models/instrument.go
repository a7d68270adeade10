package models

// Instrument is a payment card or similar, read-only on the client.
type Instrument struct {
	ID           int64  `json:"id"`
	DisplayAlias string `json:"displayAlias"`
}
