package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrExternalService = errors.New("external service failure")
)

// PartialFailure reports a two-step mutation where the first step committed
// and the second failed, leaving the system inconsistent. It must be logged
// distinctly from a clean failure.
type PartialFailure struct {
	Completed string
	Failed    string
	Err       error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("partial failure: %s succeeded but %s failed: %v", e.Completed, e.Failed, e.Err)
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}
