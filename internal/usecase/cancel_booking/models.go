package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Request struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Reason    *string
}

// Response reports the cancelled booking and what happened to the user's balance.
//
// TokenDeducted is set when the policy charged a unit and it was taken. When the
// policy charged but the fee source could not cover it, InsufficientTokens is set
// and the booking's fee outcome is unpaid.
type Response struct {
	Booking            *domain.Booking
	Refunded           int
	TokenDeducted      bool
	InsufficientTokens bool
	Reason             domain.PolicyReason
	Stats              domain.CancellationStats
}
