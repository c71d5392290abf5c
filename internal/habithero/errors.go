package habithero

import "errors"

// Missing-precondition errors. These fail fast with a specific message
// instead of attempting a default or a silent retry.
var (
	// ErrNotConnected is returned when a flow runs without a connected
	// wallet session.
	ErrNotConnected = errors.New("no wallet connected")
	// ErrNoContract is returned when the habit flows run before a
	// companion contract address has been cached.
	ErrNoContract = errors.New("contract address not set")
)

// ValidationError is a user-input error caught before any external
// call. Fully recoverable by re-input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError builds a user-input validation error.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func validationErr(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is a user-input validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPrecondition reports whether err is a missing-precondition error.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNotConnected) || errors.Is(err, ErrNoContract)
}
