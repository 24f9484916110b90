package metrics

import "errors"

// ErrUnknownOutcome is returned by Outcome validation for labels outside
// the fixed outcome set.
var ErrUnknownOutcome = errors.New("metrics: unknown run outcome")
