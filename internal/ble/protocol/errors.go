package protocol

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error returned for an out-of-range
// intent parameter. No frame is produced when it is returned.
var ErrValidation = errors.New("invalid parameter")

// ErrUnknownModeName is returned when a symbolic mode name is not in the table.
var ErrUnknownModeName = fmt.Errorf("unknown mode name: %w", ErrValidation)

// ErrUnknownModeCode is returned when a numeric mode code is not in the table.
var ErrUnknownModeCode = fmt.Errorf("unknown mode code: %w", ErrValidation)

// IsValidation reports whether err is or wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// checkRange returns a validation error if v is outside [lo, hi].
func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("protocol: %s must be %d-%d, got %d: %w", field, lo, hi, v, ErrValidation)
	}
	return nil
}
