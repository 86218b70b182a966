package reschedule_booking

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: reschedule_booking: invalid input data", domain.ErrValidation)

	ErrBookingNotFound = fmt.Errorf("%w: reschedule_booking: booking not found", domain.ErrNotFound)

	ErrNotOwner = fmt.Errorf("%w: reschedule_booking: booking belongs to another user", domain.ErrForbidden)

	// ErrNotReschedulable is returned for cancelled, rescheduled or finished bookings
	ErrNotReschedulable = fmt.Errorf("%w: reschedule_booking: booking can no longer be rescheduled", domain.ErrConflict)

	ErrSlotConflict = fmt.Errorf("%w: reschedule_booking: slot already booked", domain.ErrConflict)

	ErrInProgress = fmt.Errorf("%w: reschedule_booking: reschedule already in progress", domain.ErrConflict)

	ErrInsufficientBalance = fmt.Errorf("%w: reschedule_booking: balance cannot cover the new interval", domain.ErrInsufficientBalance)

	ErrInternal = fmt.Errorf("%w: reschedule_booking: internal error", domain.ErrTransient)
)
