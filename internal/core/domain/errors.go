package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory   = errors.New("unknown satisfaction category")
	ErrUnknownWeekday    = errors.New("unknown weekday")
	ErrInvalidDate       = errors.New("invalid date")
	ErrBothDatesRequired = errors.New("both start and end dates are required")
	ErrStartAfterEnd     = errors.New("start date is after end date")
	ErrBothDaysRequired  = errors.New("both days are required for comparison")
	ErrSameDay           = errors.New("comparison days must differ")
	ErrRequestRejected   = errors.New("request rejected by server")
	ErrConnection        = errors.New("connection error")
)

// StatusError is a non-2xx answer from the backend. It matches
// ErrRequestRejected with errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRequestRejected
}
