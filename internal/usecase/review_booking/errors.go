package review_booking

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: review_booking: invalid input data", domain.ErrValidation)

	ErrBookingNotFound = fmt.Errorf("%w: review_booking: booking not found", domain.ErrNotFound)

	// ErrInvalidTransition is returned when the booking's status does not allow the action
	ErrInvalidTransition = fmt.Errorf("%w: review_booking: booking cannot take this action in its current status", domain.ErrConflict)

	ErrInternal = fmt.Errorf("%w: review_booking: internal error", domain.ErrTransient)
)
