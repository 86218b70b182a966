package bookings

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: bookings: booking not found", domain.ErrNotFound)

	// ErrBalanceNotFound is returned for users without a balance row
	ErrBalanceNotFound = fmt.Errorf("%w: bookings: no balance for user", domain.ErrNotFound)

	// ErrAccessDenied is returned when the requester is neither owner nor admin
	ErrAccessDenied = fmt.Errorf("%w: bookings: access denied", domain.ErrForbidden)

	// ErrInvalidInput is returned for bad filters
	ErrInvalidInput = fmt.Errorf("%w: bookings: invalid input data", domain.ErrValidation)

	// ErrInternal is returned when the store fails
	ErrInternal = fmt.Errorf("%w: bookings: internal error", domain.ErrTransient)
)
