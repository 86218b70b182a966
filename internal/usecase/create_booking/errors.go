package create_booking

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrRoomNotFound is returned for unknown or hidden rooms
	ErrRoomNotFound = fmt.Errorf("%w: create_booking: room not found", domain.ErrNotFound)

	// ErrPaymentMethodNotAccepted is returned when the room does not take the requested payment method
	ErrPaymentMethodNotAccepted = fmt.Errorf("%w: create_booking: payment method not accepted for this room", domain.ErrValidation)

	// ErrSlotConflict is returned when the interval overlaps an existing booking
	ErrSlotConflict = fmt.Errorf("%w: create_booking: slot already booked", domain.ErrConflict)

	// ErrDuplicateSubmit is returned while an identical request is still in flight
	ErrDuplicateSubmit = fmt.Errorf("%w: create_booking: duplicate submission in progress", domain.ErrConflict)

	// ErrInsufficientBalance is returned when the balance source cannot cover the cost
	ErrInsufficientBalance = fmt.Errorf("%w: create_booking: balance cannot cover this booking", domain.ErrInsufficientBalance)

	// ErrInternal is returned when a store call fails
	ErrInternal = fmt.Errorf("%w: create_booking: internal error", domain.ErrTransient)
)
