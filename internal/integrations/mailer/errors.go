package mailer

import "errors"

var (
	// ErrInternal is returned when the request cannot be built or sent.
	ErrInternal = errors.New("mailer client: internal error")

	// ErrRejected is returned when the email function refuses the payload.
	ErrRejected = errors.New("mailer client: request rejected")

	// ErrUnauthorized means the function key is wrong or missing.
	ErrUnauthorized = errors.New("mailer client: unauthorized")

	// ErrInvalidResponse covers every other unexpected status.
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
