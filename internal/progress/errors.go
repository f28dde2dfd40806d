package progress

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord marks a score record that was rejected before reaching the store.
var ErrInvalidRecord = errors.New("progress: invalid score record")

// StoreError is a transient storage failure. Callers degrade rather than abort
// when they see one.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("progress store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
