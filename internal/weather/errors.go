package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a temperature or humidity that is not a finite number.
	ErrInvalidInput = errors.New("invalid numeric input")
	// ErrMissingInput is the ErrInvalidInput case where a field was left empty.
	ErrMissingInput = fmt.Errorf("%w: temperature and humidity are required", ErrInvalidInput)
	// ErrInferenceFailure matches any *InferenceError.
	ErrInferenceFailure = errors.New("inference failed")
)

// InferenceError carries the engine error unchanged.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool {
	return target == ErrInferenceFailure
}
