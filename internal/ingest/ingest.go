package ingest

import (
	"errors"

	"obrasapi/internal/obra"
)

// ErrMalformed is returned when the uploaded file cannot be processed at
// all: unreadable CSV or required header columns missing. Nothing is stored.
var ErrMalformed = errors.New("malformed csv")

// RowError records why a single row was rejected.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report summarizes one bulk upload. Rejected rows do not block the rest of
// the file: every valid row is persisted and listed under Obras.
type Report struct {
	RowsRead int         `json:"rows_read"`
	Created  int         `json:"created"`
	Failed   int         `json:"failed"`
	Errors   []RowError  `json:"errors,omitempty"`
	Obras    []obra.Obra `json:"obras"`
}
