package history

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports an operation on an identifier the store does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DecodeError describes a persisted blob that could not be read. Load
// recovers from it by starting empty; it is only ever logged.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
