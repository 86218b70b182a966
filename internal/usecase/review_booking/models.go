package review_booking

import (
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// Action is an admin decision on a booking
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

type Request struct {
	BookingID uuid.UUID
	AdminID   uuid.UUID
	Action    Action
	Reason    *string
}

type Response struct {
	Booking  *domain.Booking
	Refunded int
}
