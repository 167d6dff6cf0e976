package shared

import "errors"

var (
	// ErrEmptyFields indicates a login submission with a blank identifier or secret.
	ErrEmptyFields = errors.New("identifier and secret are required")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
