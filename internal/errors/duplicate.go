package errors

import (
	"errors"
	"fmt"
)

// DuplicateRecordError means the record store already holds a row for the ISBN.
// Per-file and non-fatal: the file is skipped for storage and renaming.
type DuplicateRecordError struct {
	ISBN string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("record for ISBN %s already exists", e.ISBN)
}

// NewDuplicateRecordError creates a DuplicateRecordError for the given ISBN.
func NewDuplicateRecordError(isbn string) *DuplicateRecordError {
	return &DuplicateRecordError{ISBN: isbn}
}

// IsDuplicateRecord reports whether err is a DuplicateRecordError (even when wrapped).
func IsDuplicateRecord(err error) bool {
	var dup *DuplicateRecordError
	return errors.As(err, &dup)
}
