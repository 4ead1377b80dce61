package talk

import "errors"

// Conversion errors. All of them abort the run.
var (
	// ErrInputUnavailable indicates the transcript could not be read.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrMalformedHeader indicates a missing title or saved-at line.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMalformedTimestamp indicates a date or time that fails strict parsing.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedLine indicates a line whose tab-separated fields cannot
	// be interpreted.
	ErrMalformedLine = errors.New("malformed line")
)
