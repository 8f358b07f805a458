// Package errors defines the typed error kinds shared across the pipeline.
package errors

import (
	"errors"
	"fmt"
)

// LookupNotFoundError means the catalog has no record for an ISBN.
// It is distinct from transport failures: the caller queues the file
// for manual handling instead of retrying.
type LookupNotFoundError struct {
	ISBN string
}

func (e *LookupNotFoundError) Error() string {
	return fmt.Sprintf("no catalog record found for ISBN %s", e.ISBN)
}

// NewLookupNotFoundError creates a LookupNotFoundError for the given ISBN.
func NewLookupNotFoundError(isbn string) *LookupNotFoundError {
	return &LookupNotFoundError{ISBN: isbn}
}

// IsLookupNotFound reports whether err is a LookupNotFoundError (even when wrapped).
func IsLookupNotFound(err error) bool {
	var notFound *LookupNotFoundError
	return errors.As(err, &notFound)
}
