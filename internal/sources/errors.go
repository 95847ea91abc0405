// file: internal/sources/errors.go
// version: 1.0.0
// guid: 6f3a1d8e-2c5b-4790-b1e4-9d0c7a8f3b62

package sources

import "errors"

// Sentinel errors returned by adapters. Adapters wrap them with %w and
// add context, so callers classify failures with errors.Is.
var (
	// ErrNotFound means the source answered authoritatively and has no
	// matching record. It is an ordinary outcome, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrSourceUnavailable covers transient failures: network errors,
	// 5xx answers, rate limiting and deadline expiry.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformed means the source answered with a payload that could
	// not be decoded into a record.
	ErrMalformed = errors.New("malformed response")
)
