package cancel_booking

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: cancel_booking: invalid input data", domain.ErrValidation)

	ErrBookingNotFound = fmt.Errorf("%w: cancel_booking: booking not found", domain.ErrNotFound)

	// ErrNotOwner is returned when the requester does not own the booking
	ErrNotOwner = fmt.Errorf("%w: cancel_booking: booking belongs to another user", domain.ErrForbidden)

	// ErrAlreadyCancelled is returned for cancelled or rescheduled bookings
	ErrAlreadyCancelled = fmt.Errorf("%w: cancel_booking: booking is already cancelled", domain.ErrConflict)

	// ErrBookingFinished is returned once the booking's end has passed
	ErrBookingFinished = fmt.Errorf("%w: cancel_booking: booking has already ended", domain.ErrValidation)

	ErrCancelInProgress = fmt.Errorf("%w: cancel_booking: cancellation already in progress", domain.ErrConflict)

	ErrInternal = fmt.Errorf("%w: cancel_booking: internal error", domain.ErrTransient)
)
