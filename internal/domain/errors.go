package domain

import "errors"

// ErrNotFound is the generic miss for read operations across stores and the
// session catalog. Callers that need to distinguish "no attendee" from other
// misses use the operation-specific sentinels instead.
var ErrNotFound = errors.New("not found")
