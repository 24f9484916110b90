package matfile

import "errors"

var (
	// ErrMalformed reports truncated or inconsistent container bytes.
	ErrMalformed = errors.New("matfile: malformed data")
	// ErrUnsupported reports a well-formed container this package does not read
	// or a variable it cannot write.
	ErrUnsupported = errors.New("matfile: unsupported")
)
