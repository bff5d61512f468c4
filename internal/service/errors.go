package service

import "errors"

// Domain errors for the auth workflows. Handlers map these to HTTP statuses;
// anything else is treated as an infrastructure failure.
var (
	// ErrUserExists covers both the duplicate pre-check and a constraint
	// violation from a racing signup. Deliberately a single combined error for
	// email and username collisions.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStore marks a credential-store read failure.
	ErrStore = errors.New("database error")

	// ErrCreateUser marks a store failure while inserting the new user row.
	ErrCreateUser = errors.New("error creating user")
)

// ValidationError reports missing or empty input fields.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
