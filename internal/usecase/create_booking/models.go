package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// Request is a booking submission
type Request struct {
	UserID        uuid.UUID
	RoomID        int64
	StartTime     time.Time
	EndTime       time.Time
	PaymentMethod domain.PaymentMethod
	BalanceSource domain.BalanceField // token payments only, defaults to tokens
	Equipment     bool
	Notes         *string
}

// Response carries the created booking and, for token payments, the balance after the debit
type Response struct {
	Booking *domain.Booking
	Balance *domain.UserBalance
}
