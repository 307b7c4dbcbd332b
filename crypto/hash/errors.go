package hash

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is returned when an algorithm identifier is NONE or
	// outside of the SHA-3 family.
	ErrUnknownAlgorithm = NewInvalidInputErrorf("unknown hashing algorithm")

	// ErrNotStarted is returned by Update and Finish on a context that has no
	// active computation, either because Starts was never called or because
	// the computation was already finished or freed.
	ErrNotStarted = NewInvalidInputErrorf("no hash computation in progress")

	// ErrOutputLength is returned when the requested output length differs
	// from the fixed output length of a SHA3 function.
	ErrOutputLength = NewInvalidInputErrorf("invalid output length")

	// ErrCustomization is returned when function-name or customization
	// strings are given to a function other than cSHAKE.
	ErrCustomization = NewInvalidInputErrorf("customization strings require cSHAKE")
)

// InvalidInputError indicates that a hash operation was called with
// parameters or in a state it does not accept. The output buffer of a failed
// call must not be used.
type InvalidInputError struct {
	Err error
}

// NewInvalidInputErrorf returns an InvalidInputError with a formatted message.
func NewInvalidInputErrorf(msg string, args ...any) InvalidInputError {
	return InvalidInputError{
		Err: fmt.Errorf(msg, args...),
	}
}

// IsInvalidInputError returns true if err is or wraps an InvalidInputError.
func IsInvalidInputError(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}

func (err InvalidInputError) Error() string {
	return err.Err.Error()
}

func (err InvalidInputError) Unwrap() error {
	return err.Err
}
