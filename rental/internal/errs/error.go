package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid rental state")
	ErrValidation        = errors.New("validation failed")
	ErrAlreadyCheckedOut = errors.New("reservation already checked out")
	ErrConcurrentUpdate  = errors.New("rental was modified concurrently")
	ErrInspectionExists  = errors.New("inspection already recorded for checkpoint")
)

// IsClient reports whether err is caused by the request rather than by the service.
func IsClient(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidState, ErrValidation, ErrAlreadyCheckedOut, ErrConcurrentUpdate, ErrInspectionExists} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type ErrorResponse struct {
	Message string `json:"message"`
}
